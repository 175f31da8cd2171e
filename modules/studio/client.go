package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const defaultFailureMessage = "Failed to generate video"

// Generator turns a prompt into a playable video reference.
type Generator interface {
	Generate(ctx context.Context, prompt, apiKey string) (string, error)
}

// Client calls the bridge's POST /api/generate endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient - bridge 서버 주소로 클라이언트 생성. hc 가 nil 이면 timeout 없는 기본 클라이언트
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	APIKey string `json:"apiKey"`
}

type generateResponse struct {
	VideoURL string `json:"videoUrl"`
	Message  string `json:"message"`
	Error    string `json:"error"`
}

func (c *Client) Generate(ctx context.Context, prompt, apiKey string) (string, error) {
	payload, err := json.Marshal(generateRequest{Prompt: prompt, APIKey: apiKey})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body generateResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && body.Error != "" {
			return "", errors.New(body.Error)
		}
		return "", errors.New(defaultFailureMessage)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if body.VideoURL == "" {
		return "", errors.New(defaultFailureMessage)
	}
	return body.VideoURL, nil
}
