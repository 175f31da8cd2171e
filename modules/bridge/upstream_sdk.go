package bridge

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"veo-studio/modules/common/config"
)

// SDKUpstream calls the model through google.golang.org/genai. A fresh client
// is built per call from the caller's credential and dropped afterwards.
type SDKUpstream struct {
	baseURL string
	logger  *zap.Logger
}

func NewSDKUpstream(baseURL string, logger *zap.Logger) *SDKUpstream {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SDKUpstream{baseURL: baseURL, logger: logger.With(zap.String("transport", config.TransportSDK))}
}

func (u *SDKUpstream) GenerateContent(ctx context.Context, credential Credential, model, instruction string) (*Response, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  credential.Reveal(),
		Backend: genai.BackendGeminiAPI,
	}
	if u.baseURL != "" && u.baseURL != config.DefaultAPIBaseURL {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: u.baseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	u.logger.Debug("🎬 [Bridge] Calling genai GenerateContent", zap.String("model", model))

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(instruction), nil)
	if err != nil {
		return nil, err
	}
	return fromGenai(result), nil
}

// fromGenai - genai 응답을 느슨한 Response 형태로 변환 (bytes -> base64)
func fromGenai(result *genai.GenerateContentResponse) *Response {
	if result == nil {
		return nil
	}

	resp := &Response{}
	for _, candidate := range result.Candidates {
		if candidate == nil {
			resp.Candidates = append(resp.Candidates, nil)
			continue
		}
		out := &Candidate{FinishReason: string(candidate.FinishReason)}
		if candidate.Content != nil {
			out.Content = &Content{Role: candidate.Content.Role}
			for _, part := range candidate.Content.Parts {
				out.Content.Parts = append(out.Content.Parts, fromGenaiPart(part))
			}
		}
		resp.Candidates = append(resp.Candidates, out)
	}
	return resp
}

func fromGenaiPart(part *genai.Part) *Part {
	if part == nil {
		return nil
	}

	out := &Part{}
	if part.Text != "" {
		text := part.Text
		out.Text = &text
	}
	if part.FileData != nil {
		out.FileData = &FileData{
			FileURI:  part.FileData.FileURI,
			MimeType: part.FileData.MIMEType,
		}
	}
	if part.InlineData != nil {
		out.InlineData = &InlineData{
			MimeType: part.InlineData.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(part.InlineData.Data),
		}
	}
	return out
}
