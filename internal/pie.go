package proctop

import (
	"fmt"
	"image"
	"math"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
)

var legendHeader = []string{"Process", "CPU %"}

// pieFrame is everything the donut and its legend show for one sample.
// Slices are floored to PIE_MIN_SLICE so idle processes stay visible,
// the legend keeps the real value.
type pieFrame struct {
	Slices []float64
	Colors []ui.Color
	Legend [][]string
}

func newPieFrame(samples []ProcessSample) pieFrame {
	f := pieFrame{
		Slices: make([]float64, len(samples)),
		Colors: make([]ui.Color, len(samples)),
		Legend: make([][]string, 0, len(samples)+1),
	}
	f.Legend = append(f.Legend, legendHeader)
	for i, s := range samples {
		cpu := clampPercent(s.CPUPercent)
		f.Slices[i] = max(cpu, PIE_MIN_SLICE)
		f.Colors[i] = RankTermColor(i)
		f.Legend = append(f.Legend, []string{s.Name, fmt.Sprintf("%.1f%%", cpu)})
	}
	return f
}

// Donut is a termui pie chart with a blank hole in the middle. termui sweeps
// clockwise on screen, so SetSlices stores them reversed: the first slice
// then runs counterclockwise from the start angle.
type Donut struct {
	*widgets.PieChart
	Hole float64 // fraction of the radius left blank
}

func NewDonut() *Donut {
	pc := widgets.NewPieChart()
	pc.AngleOffset = pieStartOffset()
	pc.Colors = []ui.Color{RankTermColor(0)}
	return &Donut{
		PieChart: pc,
		Hole:     DONUT_HOLE,
	}
}

// SetSlices replaces the slices, given in rank order
func (d *Donut) SetSlices(data []float64, colors []ui.Color) {
	d.Data = make([]float64, len(data))
	d.Colors = make([]ui.Color, len(colors))
	for i, v := range data {
		d.Data[len(data)-1-i] = v
	}
	for i, c := range colors {
		d.Colors[len(colors)-1-i] = c
	}
	if len(d.Colors) == 0 {
		d.Colors = []ui.Color{RankTermColor(0)}
	}
}

func (d *Donut) Draw(buf *ui.Buffer) {
	d.PieChart.Draw(buf)
	if len(d.Data) == 0 || d.Hole <= 0 {
		return
	}

	// same geometry as widgets.PieChart: cells are twice as tall as wide
	center := d.Inner.Min.Add(d.Inner.Size().Div(2))
	radius := math.Min(float64(d.Inner.Dx()/2/2), float64(d.Inner.Dy()/2))
	hole := radius * d.Hole
	blank := ui.NewCell(' ', ui.NewStyle(ui.ColorClear))
	for y := d.Inner.Min.Y; y < d.Inner.Max.Y; y++ {
		for x := d.Inner.Min.X; x < d.Inner.Max.X; x++ {
			dx := float64(x-center.X) / 2
			dy := float64(y - center.Y)
			if dx*dx+dy*dy < hole*hole {
				buf.SetCell(blank, image.Pt(x, y))
			}
		}
	}
}
