package proctop

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

type staticSource struct {
	samples []ProcessSample
	skipped int
	err     error
	calls   int
}

func (s *staticSource) Processes(context.Context) ([]ProcessSample, int, error) {
	s.calls++
	return s.samples, s.skipped, s.err
}

func TestTopProcessesFewerThanLimit(t *testing.T) {
	src := &staticSource{samples: []ProcessSample{
		{PID: 1, Name: "a", CPUPercent: 50, MemPercent: 10},
		{PID: 2, Name: "b", CPUPercent: 30, MemPercent: 5},
	}}
	top, err := NewSampler(src, nil).TopProcesses(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(top))
	}
	if top[0].Name != "a" || top[1].Name != "b" {
		t.Fatalf("unexpected order: %+v", top)
	}
}

func TestTopProcessesIsStateless(t *testing.T) {
	src := &staticSource{samples: []ProcessSample{
		{PID: 7, CPUPercent: 3},
		{PID: 8, CPUPercent: 9},
		{PID: 9, CPUPercent: 1},
	}}
	s := NewSampler(src, nil)
	first, _ := s.TopProcesses(context.Background(), 2)
	second, _ := s.TopProcesses(context.Background(), 2)
	if src.calls != 2 {
		t.Fatalf("expected a fresh enumeration per call, got %d calls", src.calls)
	}
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("rank %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestTopProcessesWrapsSourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewSampler(&staticSource{err: boom}, nil).TopProcesses(context.Background(), 5)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestTopProcessesRecordsMetrics(t *testing.T) {
	m := NewMetrics()
	src := &staticSource{
		samples: []ProcessSample{
			{PID: 1, CPUPercent: 20},
			{PID: 2, CPUPercent: 70},
			{PID: 3, CPUPercent: 5},
		},
		skipped: 4,
	}
	s := NewSampler(src, m)

	if _, err := s.TopProcesses(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(m.sampled); got != 3 {
		t.Fatalf("expected 3 sampled, got %v", got)
	}
	if got := testutil.ToFloat64(m.skipped); got != 4 {
		t.Fatalf("expected 4 skipped, got %v", got)
	}
	if got := testutil.ToFloat64(m.topCPU.WithLabelValues("1")); got != 70 {
		t.Fatalf("expected rank 1 at 70, got %v", got)
	}

	// a shorter sample must not leave rank 2 behind
	src.samples = src.samples[:1]
	if _, err := s.TopProcesses(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	families, err := m.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == "proctop_top_cpu_percent" && len(mf.GetMetric()) != 1 {
			t.Fatalf("expected one rank series, got %d", len(mf.GetMetric()))
		}
		if mf.GetName() == "proctop_sample_duration_seconds" {
			if n := mf.GetMetric()[0].GetHistogram().GetSampleCount(); n != 2 {
				t.Fatalf("expected 2 observations, got %d", n)
			}
		}
	}
	if got := testutil.ToFloat64(m.skipped); got != 8 {
		t.Fatalf("expected skipped to accumulate to 8, got %v", got)
	}
}
