package proctop

import (
	"math"
	"time"

	ui "github.com/gizak/termui/v3"
)

const (
	// UPDATE_INTERVAL is the time between samples in milliseconds
	UPDATE_INTERVAL = 1000

	// TOP_N is the number of processes shown when no limit is configured
	TOP_N = 5

	// BAR_HEADROOM is added to the busiest process to get the bar chart ceiling
	BAR_HEADROOM = 10.0

	// PIE_MIN_SLICE is the smallest value a donut slice is sized with
	PIE_MIN_SLICE = 0.1

	// PIE_START_ANGLE is where the first slice starts, in degrees counterclockwise from east
	PIE_START_ANGLE = 90.0

	// DONUT_HOLE is the inner blank circle radius as a fraction of the outer radius
	DONUT_HOLE = 0.65

	// NAME_WIDTH is how many characters of a process name the table shows
	NAME_WIDTH = 10
)

// RankColor is the colour given to a rank position in both the terminal
// widgets (256 colour palette) and the lipgloss snapshot output (hex).
type RankColor struct {
	Term ui.Color
	Hex  string
}

// PALETTE is indexed by rank, not by process, so "busiest" always has the same colour.
var PALETTE = []RankColor{
	{Term: ui.Color(203), Hex: "#FF6B6B"},
	{Term: ui.Color(69), Hex: "#4D96FF"},
	{Term: ui.Color(78), Hex: "#6BCB77"},
	{Term: ui.Color(215), Hex: "#FFA36C"},
	{Term: ui.Color(177), Hex: "#C47AFF"},
}

// UpdateDuration returns the default update interval as a time.Duration
func UpdateDuration() time.Duration {
	return time.Duration(UPDATE_INTERVAL) * time.Millisecond
}

// RankTermColor returns the terminal colour for the given rank, cycling the palette
func RankTermColor(rank int) ui.Color {
	return PALETTE[rank%len(PALETTE)].Term
}

// RankHexColor returns the hex colour for the given rank, cycling the palette
func RankHexColor(rank int) string {
	return PALETTE[rank%len(PALETTE)].Hex
}

// pieStartOffset converts PIE_START_ANGLE into termui's angle convention,
// where y grows downwards and 0 points east.
func pieStartOffset() float64 {
	return -PIE_START_ANGLE * math.Pi / 180
}
