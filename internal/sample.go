package proctop

import (
	"cmp"
	"math"
	"slices"
)

// ProcessSample is one process as seen during a single tick.
// PIDs are only unique within the tick that produced them.
type ProcessSample struct {
	PID        int32
	Name       string
	CPUPercent float64
	MemPercent float64
}

// clampPercent maps negative and NaN readings to 0 so they can't invert the chart scaling
func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// Rank clamps the samples, sorts them by CPU descending (PID ascending on ties)
// and keeps at most limit of them. The input slice is not modified.
func Rank(samples []ProcessSample, limit int) []ProcessSample {
	if limit <= 0 {
		limit = TOP_N
	}

	ranked := make([]ProcessSample, len(samples))
	for i, s := range samples {
		s.CPUPercent = clampPercent(s.CPUPercent)
		s.MemPercent = clampPercent(s.MemPercent)
		ranked[i] = s
	}

	slices.SortFunc(ranked, func(a, b ProcessSample) int {
		if c := cmp.Compare(b.CPUPercent, a.CPUPercent); c != 0 {
			return c
		}
		return cmp.Compare(a.PID, b.PID)
	})

	if len(ranked) > limit {
		// drop the tail so it can be collected
		clear(ranked[limit:])
		ranked = ranked[:limit]
	}
	return ranked
}

// truncateName shortens a name to at most n runes
func truncateName(name string, n int) string {
	r := []rune(name)
	if len(r) <= n {
		return name
	}
	return string(r[:n])
}
