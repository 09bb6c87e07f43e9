package proctop

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Snapshot prints a single ranked sample as text. It is used when stdout
// isn't a terminal or a one-off reading was asked for.
type Snapshot struct {
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
	borderStyle lipgloss.Style
	barWidth    int
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		headerStyle: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		cellStyle:   lipgloss.NewStyle().Padding(0, 1),
		borderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		barWidth:    20,
	}
}

// Render formats the samples as the process table plus a CPU share column.
// Rank colours match the dashboard.
func (s *Snapshot) Render(samples []ProcessSample) string {
	rows := tableRows(samples)
	bars := newBarFrame(samples)
	legend := newPieFrame(samples)

	headers := append(append([]string{}, rows[0]...), "Load")
	body := make([][]string, 0, len(samples))
	for i, row := range rows[1:] {
		rank := lipgloss.NewStyle().Foreground(lipgloss.Color(RankHexColor(i)))
		cells := append(append([]string{}, row...), s.bar(bars.Data[i], bars.MaxVal))
		for col := 2; col < len(cells); col++ {
			cells[col] = rank.Render(cells[col])
		}
		body = append(body, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.borderStyle).
		Headers(headers...).
		Rows(body...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.headerStyle
			}
			return s.cellStyle
		})

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(TITLE))
	b.WriteString("\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	for i, row := range legend.Legend[1:] {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(RankHexColor(i))).Render("●")
		fmt.Fprintf(&b, "%s %s %s\n", swatch, row[0], row[1])
	}
	return b.String()
}

// Write renders the samples to w
func (s *Snapshot) Write(w io.Writer, samples []ProcessSample) error {
	_, err := io.WriteString(w, s.Render(samples))
	return err
}

// bar draws value as a horizontal bar scaled to ceiling
func (s *Snapshot) bar(value, ceiling float64) string {
	if ceiling <= 0 {
		return ""
	}
	n := int(value / ceiling * float64(s.barWidth))
	n = min(max(n, 0), s.barWidth)
	return strings.Repeat("█", n) + strings.Repeat("░", s.barWidth-n)
}
