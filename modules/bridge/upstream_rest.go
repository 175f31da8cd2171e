package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"veo-studio/modules/common/config"
)

// RESTUpstream posts directly to {baseURL}/v1beta/models/{model}:generateContent
// and decodes the body loosely, so fields the SDK does not model (videoUrl) survive.
type RESTUpstream struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewRESTUpstream(baseURL string, client *http.Client, logger *zap.Logger) *RESTUpstream {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RESTUpstream{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger.With(zap.String("transport", config.TransportREST)),
	}
}

type restRequest struct {
	Contents []restContent `json:"contents"`
}

type restContent struct {
	Role  string     `json:"role"`
	Parts []restPart `json:"parts"`
}

type restPart struct {
	Text string `json:"text"`
}

type restErrorResp struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (u *RESTUpstream) GenerateContent(ctx context.Context, credential Credential, model, instruction string) (*Response, error) {
	payload, err := json.Marshal(restRequest{
		Contents: []restContent{{Role: "user", Parts: []restPart{{Text: instruction}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", u.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", credential.Reveal())

	u.logger.Debug("🎬 [Bridge] POST generateContent", zap.String("endpoint", endpoint))

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s", readRESTError(resp.StatusCode, resp.Body))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// readRESTError keeps the upstream message verbatim so "API key" / "quota"
// classification sees the same text the API sent.
func readRESTError(status int, body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, 64<<10))
	var errResp restErrorResp
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
		return fmt.Sprintf("%s (status: %s)", errResp.Error.Message, errResp.Error.Status)
	}
	if msg := strings.TrimSpace(string(data)); msg != "" {
		return msg
	}
	return fmt.Sprintf("upstream returned HTTP %d", status)
}
