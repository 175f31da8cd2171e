package bridge

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"veo-studio/modules/common/config"
)

// Upstream issues one generateContent call to the video model, authenticated
// with the caller's credential. Implementations must not retain the credential.
type Upstream interface {
	GenerateContent(ctx context.Context, credential Credential, model, instruction string) (*Response, error)
}

// UpstreamFunc adapts a function to Upstream.
type UpstreamFunc func(ctx context.Context, credential Credential, model, instruction string) (*Response, error)

func (f UpstreamFunc) GenerateContent(ctx context.Context, credential Credential, model, instruction string) (*Response, error) {
	return f(ctx, credential, model, instruction)
}

// NewUpstream - VEO_TRANSPORT 설정에 맞는 upstream 생성
func NewUpstream(cfg *config.Config, logger *zap.Logger) (Upstream, error) {
	switch cfg.Transport {
	case config.TransportSDK:
		return NewSDKUpstream(cfg.APIBaseURL, logger), nil
	case config.TransportREST:
		return NewRESTUpstream(cfg.APIBaseURL, &http.Client{Timeout: cfg.MaxDuration}, logger), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}
