package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TheShai81/music-dashboard/internal/domain/track"
	"github.com/TheShai81/music-dashboard/internal/metrics"
)

// InstrumentedSampler wraps a Sampler with latency metrics and logging.
type InstrumentedSampler struct {
	inner  Sampler
	name   string
	logger *zap.Logger
}

// NewInstrumentedSampler labels every observation with name ("sql" or "redis").
func NewInstrumentedSampler(inner Sampler, name string, logger *zap.Logger) *InstrumentedSampler {
	return &InstrumentedSampler{inner: inner, name: name, logger: logger}
}

// SampleRandom delegates to the inner sampler and records its latency.
func (p *InstrumentedSampler) SampleRandom(ctx context.Context, n int) ([]track.Track, error) {
	start := time.Now()
	out, err := p.inner.SampleRandom(ctx, n)
	duration := time.Since(start)

	metrics.CatalogSampleDuration.WithLabelValues(p.name).Observe(duration.Seconds())
	if err != nil {
		metrics.CatalogSampleErrorsTotal.WithLabelValues(p.name).Inc()
		p.logger.Error("Catalog sample failed",
			zap.String("sampler", p.name),
			zap.Int("requested", n),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s sampler: %w", p.name, err)
	}

	p.logger.Debug("Catalog sample completed",
		zap.String("sampler", p.name),
		zap.Int("requested", n),
		zap.Int("returned", len(out)),
		zap.Duration("duration", duration),
	)
	return out, nil
}
