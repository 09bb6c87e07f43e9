package proctop

import (
	"fmt"
	"image"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	rw "github.com/mattn/go-runewidth"
)

// barFrame is everything the bar chart shows for one sample
type barFrame struct {
	Labels []string
	Data   []float64
	Colors []ui.Color
	MaxVal float64
}

func newBarFrame(samples []ProcessSample) barFrame {
	f := barFrame{
		Labels: make([]string, len(samples)),
		Data:   make([]float64, len(samples)),
		Colors: make([]ui.Color, len(samples)),
	}
	busiest := 0.0
	for i, s := range samples {
		f.Labels[i] = fmt.Sprintf("%s (PID %d)", s.Name, s.PID)
		f.Data[i] = clampPercent(s.CPUPercent)
		f.Colors[i] = RankTermColor(i)
		busiest = max(busiest, f.Data[i])
	}
	f.MaxVal = busiest + BAR_HEADROOM
	return f
}

func formatBarValue(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Bars is a termui bar chart that prints each value on the row above its
// bar instead of on the bottom row, and trims labels to the bar width.
type Bars struct {
	*widgets.BarChart
}

func NewBars() *Bars {
	bc := widgets.NewBarChart()
	bc.NumFormatter = formatBarValue
	return &Bars{BarChart: bc}
}

// barHeight is termui's bar height: the bottom row of Inner is kept for labels
func barHeight(v, maxVal float64, innerHeight int) int {
	if maxVal <= 0 {
		return 0
	}
	return int(v / maxVal * float64(innerHeight-1))
}

// centred returns the x at which s is centred over a bar starting at x
func centred(x, width int, s string) int {
	return x + width/2 - rw.StringWidth(s)/2
}

func (b *Bars) Draw(buf *ui.Buffer) {
	b.Block.Draw(buf)

	maxVal := b.MaxVal
	if maxVal == 0 {
		maxVal, _ = ui.GetMaxFloat64FromSlice(b.Data)
	}

	base := b.Inner.Max.Y - 2
	x := b.Inner.Min.X
	for i, v := range b.Data {
		height := barHeight(v, maxVal, b.Inner.Dy())
		fill := ui.NewCell(' ', ui.NewStyle(ui.ColorClear, ui.SelectColor(b.BarColors, i)))
		for bx := x; bx < min(x+b.BarWidth, b.Inner.Max.X); bx++ {
			for y := base; y > base-height; y-- {
				buf.SetCell(fill, image.Pt(bx, y))
			}
		}

		if i < len(b.Labels) {
			label := ui.TrimString(b.Labels[i], b.BarWidth)
			buf.SetString(label, ui.SelectStyle(b.LabelStyles, i), image.Pt(centred(x, b.BarWidth, label), b.Inner.Max.Y-1))
		}

		num := b.NumFormatter(v)
		numStyle := ui.NewStyle(ui.SelectColor(b.BarColors, i), ui.ColorClear, ui.ModifierBold)
		buf.SetString(num, numStyle, image.Pt(centred(x, b.BarWidth, num), max(base-height, b.Inner.Min.Y)))

		x += b.BarWidth + b.BarGap
	}
}
