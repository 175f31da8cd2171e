package bridge

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"veo-studio/modules/common/config"
	"veo-studio/modules/common/logger"
	"veo-studio/modules/common/metrics"
)

type Service struct {
	cfg      *config.Config
	upstream Upstream
	metrics  *metrics.Collector
	logger   *zap.Logger
}

func NewService(cfg *config.Config, upstream Upstream, collector *metrics.Collector, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		cfg:      cfg,
		upstream: upstream,
		metrics:  collector,
		logger:   log.With(zap.String("module", "bridge")),
	}
}

// Generate validates the input, issues exactly one upstream call bounded by
// the configured max duration, and normalizes the result. Every failure is an *Error.
func (s *Service) Generate(ctx context.Context, prompt string, credential Credential) (Result, error) {
	if strings.TrimSpace(prompt) == "" || credential.Blank() {
		s.metrics.Rejected(s.cfg.Model, string(KindInvalidRequest))
		return Result{}, ErrInvalidRequest
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.MaxDuration)
	defer cancel()

	log := s.logger.With(zap.String("model", s.cfg.Model))
	log.Info("🎬 [Bridge] Generating video", zap.String("prompt", logger.Truncate(prompt, 50)))

	done := s.metrics.Begin(s.cfg.Model)

	resp, err := s.upstream.GenerateContent(ctx, credential, s.cfg.Model, s.cfg.Instruction(prompt))
	if err != nil {
		be := Classify(errors.WithStack(err))
		done(string(be.Kind))
		log.Error("❌ [Bridge] Upstream call failed",
			zap.String("kind", string(be.Kind)),
			zap.Int("status", be.Status),
			zap.Error(err),
		)
		return Result{}, be
	}

	result, err := Normalize(resp)
	if err != nil {
		be := Classify(err)
		done(string(be.Kind))
		log.Warn("⚠️  [Bridge] Unusable upstream response", zap.String("kind", string(be.Kind)))
		return Result{}, be
	}

	done("success")
	log.Info("✅ [Bridge] Video generated", zap.Stringer("source", result.Source))
	return result, nil
}
