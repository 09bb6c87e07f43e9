package proctop

import (
	"context"
	"fmt"
	"time"
)

// Sampler produces the ranked top-N view of a Source. It holds no samples
// between calls; every call starts from a fresh enumeration.
type Sampler struct {
	Source
	metrics *Metrics
}

func NewSampler(source Source, metrics *Metrics) *Sampler {
	return &Sampler{
		Source:  source,
		metrics: metrics,
	}
}

// TopProcesses returns at most limit processes ordered by CPU usage, busiest first
func (s *Sampler) TopProcesses(ctx context.Context, limit int) ([]ProcessSample, error) {
	start := time.Now()
	samples, skipped, err := s.Processes(ctx)
	if err != nil {
		return nil, fmt.Errorf("sampling processes: %w", err)
	}

	top := Rank(samples, limit)
	if s.metrics != nil {
		s.metrics.ObserveSample(time.Since(start), len(samples), skipped, top)
	}
	return top, nil
}
