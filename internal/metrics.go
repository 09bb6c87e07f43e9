package proctop

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Metrics instruments the sampling loop. The registry is private to the
// process; it is only ever gathered locally, never served.
type Metrics struct {
	registry       *prometheus.Registry
	ticks          prometheus.Counter
	sampleDuration prometheus.Histogram
	sampled        prometheus.Gauge
	skipped        prometheus.Counter
	topCPU         *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proctop_ticks_total",
			Help: "Number of completed sample and render cycles.",
		}),
		sampleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "proctop_sample_duration_seconds",
			Help:    "Time taken to enumerate and rank the process table.",
			Buckets: prometheus.DefBuckets,
		}),
		sampled: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "proctop_processes_sampled",
			Help: "Processes read during the last sample.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "proctop_processes_skipped_total",
			Help: "Processes that exited or could not be read mid-enumeration.",
		}),
		topCPU: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "proctop_top_cpu_percent",
			Help: "CPU percent of the process holding each rank in the last sample.",
		}, []string{"rank"}),
	}
	m.registry.MustRegister(m.ticks, m.sampleDuration, m.sampled, m.skipped, m.topCPU)
	return m
}

// ObserveSample records the outcome of one sampler call
func (m *Metrics) ObserveSample(took time.Duration, sampled, skipped int, top []ProcessSample) {
	m.sampleDuration.Observe(took.Seconds())
	m.sampled.Set(float64(sampled))
	m.skipped.Add(float64(skipped))

	// ranks are positional, so stale ones from a longer previous sample must go
	m.topCPU.Reset()
	for i, s := range top {
		m.topCPU.WithLabelValues(strconv.Itoa(i + 1)).Set(s.CPUPercent)
	}
}

// Tick counts a completed update cycle
func (m *Metrics) Tick() {
	m.ticks.Inc()
}

// Gather returns the current metric families
func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}

// WriteText writes every metric family in the Prometheus text format
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
