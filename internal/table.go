package proctop

import (
	"fmt"
	"strconv"
)

var tableHeader = []string{"PID", "Name", "CPU %", "Mem %"}

// tableRows builds the process table, header first. An empty sample still
// yields the header so the table widget always has a column count.
func tableRows(samples []ProcessSample) [][]string {
	rows := make([][]string, 0, len(samples)+1)
	rows = append(rows, tableHeader)
	for _, s := range samples {
		rows = append(rows, []string{
			strconv.Itoa(int(s.PID)),
			truncateName(s.Name, NAME_WIDTH),
			fmt.Sprintf("%.2f", s.CPUPercent),
			fmt.Sprintf("%.2f", s.MemPercent),
		})
	}
	return rows
}
