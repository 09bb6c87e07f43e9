package proctop

import (
	"fmt"
	"image"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
)

const (
	TITLE        = "Real-Time Task Manager Simulation"
	headerHeight = 3
	barGap       = 2
)

// Renderer owns every widget on the screen. Each update replaces the
// previous frame's content entirely; nothing carries over between samples.
type Renderer struct {
	header *widgets.Paragraph
	table  *widgets.Table
	donut  *Donut
	legend *widgets.Table
	bar    *Bars
	grid   *ui.Grid
	limit  int
}

func NewRenderer(limit int) *Renderer {
	if limit <= 0 {
		limit = TOP_N
	}

	header := widgets.NewParagraph()
	header.Text = TITLE
	header.TextStyle = ui.NewStyle(ui.ColorWhite, ui.ColorClear, ui.ModifierBold)
	header.Border = false

	table := widgets.NewTable()
	table.Title = fmt.Sprintf("Top %d Processes", limit)
	table.TitleStyle = ui.NewStyle(ui.ColorWhite, ui.ColorClear, ui.ModifierBold)
	table.TextAlignment = ui.AlignCenter
	table.RowSeparator = false
	table.RowStyles = map[int]ui.Style{
		0: ui.NewStyle(ui.ColorBlack, ui.ColorWhite, ui.ModifierBold),
	}

	donut := NewDonut()
	donut.Title = "CPU Usage Distribution"
	donut.TitleStyle = ui.NewStyle(ui.ColorWhite, ui.ColorClear, ui.ModifierBold)

	legend := widgets.NewTable()
	legend.Title = "Legend"
	legend.RowSeparator = false
	legend.TextAlignment = ui.AlignLeft

	bar := NewBars()
	bar.Title = "CPU Usage (Bar Chart)"
	bar.TitleStyle = ui.NewStyle(ui.ColorWhite, ui.ColorClear, ui.ModifierBold)
	bar.BarGap = barGap

	grid := ui.NewGrid()
	grid.Set(
		ui.NewRow(0.45,
			ui.NewCol(0.45, table),
			ui.NewCol(0.33, donut),
			ui.NewCol(0.22, legend),
		),
		ui.NewRow(0.55,
			ui.NewCol(1.0, bar),
		),
	)

	r := &Renderer{
		header: header,
		table:  table,
		donut:  donut,
		legend: legend,
		bar:    bar,
		grid:   grid,
		limit:  limit,
	}
	r.Update(nil)
	return r
}

// Resize lays the widgets out for a terminal of the given size
func (r *Renderer) Resize(width, height int) {
	r.header.SetRect(0, 0, width, headerHeight)
	r.grid.SetRect(0, headerHeight, width, height)

	// size bars so that limit of them fill the chart
	barWidth := (width-2)/r.limit - barGap
	r.bar.BarWidth = max(barWidth, 3)
}

// Update redraws all three views from the same sample
func (r *Renderer) Update(samples []ProcessSample) {
	r.DisplayTable(samples)
	r.PlotBarChart(samples)
	r.PlotPieChart(samples)
}

func (r *Renderer) DisplayTable(samples []ProcessSample) {
	r.table.Lock()
	defer r.table.Unlock()
	r.table.Rows = tableRows(samples)
}

func (r *Renderer) PlotBarChart(samples []ProcessSample) {
	f := newBarFrame(samples)
	r.bar.Lock()
	defer r.bar.Unlock()
	r.bar.Labels = f.Labels
	r.bar.Data = f.Data
	r.bar.MaxVal = f.MaxVal
	r.bar.BarColors = f.Colors
}

func (r *Renderer) PlotPieChart(samples []ProcessSample) {
	f := newPieFrame(samples)

	r.donut.Lock()
	r.donut.SetSlices(f.Slices, f.Colors)
	r.donut.Unlock()

	r.legend.Lock()
	defer r.legend.Unlock()
	r.legend.Rows = f.Legend
	r.legend.RowStyles = make(map[int]ui.Style, len(f.Legend))
	r.legend.RowStyles[0] = ui.NewStyle(ui.ColorBlack, ui.ColorWhite, ui.ModifierBold)
	for i := 1; i < len(f.Legend); i++ {
		r.legend.RowStyles[i] = ui.NewStyle(f.Colors[i-1])
	}
}

// Drawables returns the widgets in paint order for ui.Render
func (r *Renderer) Drawables() []ui.Drawable {
	return []ui.Drawable{r.header, r.grid}
}

// Render paints the current frame to the terminal
func (r *Renderer) Render() {
	ui.Render(r.Drawables()...)
}

// DrawTo paints the current frame into buf without touching the terminal
func (r *Renderer) DrawTo(buf *ui.Buffer) {
	for _, d := range r.Drawables() {
		d.Lock()
		d.Draw(buf)
		d.Unlock()
	}
}

// Frame renders the current state offscreen at the given size
func (r *Renderer) Frame(width, height int) *ui.Buffer {
	buf := ui.NewBuffer(image.Rect(0, 0, width, height))
	r.DrawTo(buf)
	return buf
}
