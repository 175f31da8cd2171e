// Package studio is the client side of the bridge: it tracks one record per
// submission and resolves each record independently when its response arrives.
package studio

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"veo-studio/modules/common/logger"
)

// ErrBlankInput is returned without any network call when prompt or key is blank.
var ErrBlankInput = errors.New("please enter both a prompt and API key")

type Studio struct {
	book   *RecordBook
	gen    Generator
	logger *zap.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

func New(gen Generator, log *zap.Logger) *Studio {
	if log == nil {
		log = zap.NewNop()
	}
	return &Studio{
		book:   NewRecordBook(),
		gen:    gen,
		logger: log.With(zap.String("module", "studio")),
		now:    time.Now,
	}
}

// Book exposes the record book for rendering.
func (s *Studio) Book() *RecordBook {
	return s.book
}

// Submit records a pending generation and fires one bridge call in the
// background. The returned channel yields the settled record once.
// There is no cancel: the call runs until the bridge answers or ctx ends.
func (s *Studio) Submit(ctx context.Context, prompt, apiKey string) (string, <-chan Record, error) {
	if strings.TrimSpace(prompt) == "" || strings.TrimSpace(apiKey) == "" {
		return "", nil, ErrBlankInput
	}

	rec := s.book.Add(prompt, s.now())
	done := make(chan Record, 1)

	s.logger.Info("🎬 [Studio] Submitted", zap.String("id", rec.ID), zap.String("prompt", logger.Truncate(prompt, 40)))

	s.wg.Add(1)
	go func(id string) {
		defer s.wg.Done()
		defer close(done)

		videoURL, err := s.gen.Generate(ctx, prompt, apiKey)

		var settled Record
		var settleErr error
		if err != nil {
			settled, settleErr = s.book.Fail(id, err.Error())
			s.logger.Warn("❌ [Studio] Generation failed", zap.String("id", id), zap.Error(err))
		} else {
			settled, settleErr = s.book.Complete(id, videoURL)
			s.logger.Info("✅ [Studio] Generation completed", zap.String("id", id))
		}
		if settleErr != nil {
			s.logger.Error("⚠️  [Studio] Could not settle record", zap.String("id", id), zap.Error(settleErr))
		}
		done <- settled
	}(rec.ID)

	return rec.ID, done, nil
}

// SubmitAll submits every prompt concurrently and waits for all of them.
// Results keep the prompts' order.
func (s *Studio) SubmitAll(ctx context.Context, prompts []string, apiKey string) ([]Record, error) {
	results := make([]Record, len(prompts))

	var g errgroup.Group
	for i, prompt := range prompts {
		g.Go(func() error {
			_, done, err := s.Submit(ctx, prompt, apiKey)
			if err != nil {
				return err
			}
			results[i] = <-done
			return nil
		})
	}
	err := g.Wait()
	return results, err
}

// Wait blocks until every submitted call has settled.
func (s *Studio) Wait() {
	s.wg.Wait()
}

// Records returns a newest-first snapshot.
func (s *Studio) Records() []Record {
	return s.book.Snapshot()
}
