// Package ratelimit wraps an embedding service with a token bucket so
// bulk ingestion cannot exhaust provider quotas.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/passage/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.EmbeddingService = (*Service)(nil)

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultConfig is a conservative default well below typical provider
// quotas.
var DefaultConfig = Config{RequestsPerSecond: 5.0, BurstSize: 10}

// Service rate-limits calls to an inner embedding service.
// A batch call consumes one token regardless of batch size, matching
// how providers meter requests rather than inputs.
type Service struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter
}

// Wrap wraps an embedding service with the given rate limit.
func Wrap(inner driven.EmbeddingService, cfg Config) *Service {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultConfig
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	return &Service{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Embed waits for a token, then delegates.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.Embed(ctx, text)
}

// EmbedBatch waits for a token, then delegates.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.EmbedBatch(ctx, texts)
}

// Dimensions returns the inner service's vector size.
func (s *Service) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the inner service's model name.
func (s *Service) ModelName() string {
	return s.inner.ModelName()
}

// Close closes the inner service.
func (s *Service) Close() error {
	return s.inner.Close()
}
