package proctop

import (
	"context"
	"fmt"
	"log"
	"time"

	ui "github.com/gizak/termui/v3"
)

// Monitor ties one sampler to one renderer. A tick samples once and hands
// that single snapshot to every view.
type Monitor struct {
	Sampler  *Sampler
	Renderer *Renderer
	Metrics  *Metrics
	Limit    int
}

func NewMonitor(sampler *Sampler, renderer *Renderer, metrics *Metrics, limit int) *Monitor {
	return &Monitor{
		Sampler:  sampler,
		Renderer: renderer,
		Metrics:  metrics,
		Limit:    limit,
	}
}

// Tick runs one sample and render-update cycle. On error the renderer keeps
// the previous frame.
func (m *Monitor) Tick(ctx context.Context) ([]ProcessSample, error) {
	samples, err := m.Sampler.TopProcesses(ctx, m.Limit)
	if err != nil {
		return nil, err
	}
	m.Renderer.Update(samples)
	if m.Metrics != nil {
		m.Metrics.Tick()
	}
	return samples, nil
}

// Dashboard takes over the terminal and refreshes every interval until the
// user quits or ctx is cancelled.
func Dashboard(ctx context.Context, interval time.Duration, m *Monitor) error {
	if interval <= 0 {
		interval = UpdateDuration()
	}

	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %w", err)
	}
	defer ui.Close()

	termWidth, termHeight := ui.TerminalDimensions()
	m.Renderer.Resize(termWidth, termHeight)

	tick := func() {
		if _, err := m.Tick(ctx); err != nil {
			log.Printf("tick failed: %v", err)
		}
		m.Renderer.Render()
	}
	tick()

	uiEvents := ui.PollEvents()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-uiEvents:
			switch e.ID {
			case "q", "<C-c>":
				return nil
			case "<Resize>":
				payload := e.Payload.(ui.Resize)
				m.Renderer.Resize(payload.Width, payload.Height)
				ui.Clear()
				m.Renderer.Render()
			}
		case <-ticker.C:
			tick()
		}
	}
}
