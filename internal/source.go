package proctop

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Source enumerates the processes currently visible to this user
type Source interface {
	Processes(ctx context.Context) (samples []ProcessSample, skipped int, err error)
}

// processHandle is the part of *process.Process the sampler reads
type processHandle interface {
	PID() int32
	NameWithContext(ctx context.Context) (string, error)
	PercentWithContext(ctx context.Context, interval time.Duration) (float64, error)
	MemoryPercentWithContext(ctx context.Context) (float32, error)
	IsRunningWithContext(ctx context.Context) (bool, error)
}

type gopsutilProcess struct {
	*process.Process
}

func (p gopsutilProcess) PID() int32 {
	return p.Pid
}

// listPids and openProcess are swapped out in tests
var (
	listPids    = process.PidsWithContext
	openProcess = func(ctx context.Context, pid int32) (processHandle, error) {
		p, err := process.NewProcessWithContext(ctx, pid)
		if err != nil {
			return nil, err
		}
		return gopsutilProcess{p}, nil
	}
)

// PsutilSource reads the local process table through gopsutil. It keeps one
// handle per PID between calls, so CPU usage is measured over the time since
// the previous call rather than over the life of the process. A process seen
// for the first time reads 0%. Not safe for concurrent use.
type PsutilSource struct {
	handles map[int32]processHandle
}

func NewPsutilSource() *PsutilSource {
	return &PsutilSource{handles: make(map[int32]processHandle)}
}

// Processes returns a sample for every process that could be read.
// Processes that exit between enumeration and the attribute reads are
// skipped and counted rather than failing the whole call.
func (s *PsutilSource) Processes(ctx context.Context) ([]ProcessSample, int, error) {
	pids, err := listPids(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list processes: %w", err)
	}

	live := make(map[int32]processHandle, len(pids))
	samples := make([]ProcessSample, 0, len(pids))
	skipped := 0
	for _, pid := range pids {
		h, err := s.handle(ctx, pid)
		if err != nil {
			skipped++
			continue
		}
		sample, err := readSample(ctx, h)
		if err != nil {
			skipped++
			continue
		}
		live[pid] = h
		samples = append(samples, sample)
	}
	// forget processes that have gone away
	s.handles = live
	return samples, skipped, nil
}

// handle returns the cached handle for pid, or a new one when the PID is new
// or now belongs to a different process
func (s *PsutilSource) handle(ctx context.Context, pid int32) (processHandle, error) {
	if h, ok := s.handles[pid]; ok {
		if running, err := h.IsRunningWithContext(ctx); err == nil && running {
			return h, nil
		}
	}
	return openProcess(ctx, pid)
}

func readSample(ctx context.Context, h processHandle) (ProcessSample, error) {
	name, err := h.NameWithContext(ctx)
	if err != nil {
		return ProcessSample{}, err
	}
	cpu, err := h.PercentWithContext(ctx, 0)
	if err != nil {
		return ProcessSample{}, err
	}
	mem, err := h.MemoryPercentWithContext(ctx)
	if err != nil {
		return ProcessSample{}, err
	}
	return ProcessSample{
		PID:        h.PID(),
		Name:       name,
		CPUPercent: cpu,
		MemPercent: float64(mem),
	}, nil
}
