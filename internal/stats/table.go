// Package stats aggregates imaging sessions and builds reports from them.
package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/astrotally/internal/model"
)

// RenderFilterTable prints an aligned per-filter table with a total row.
// Lights show time and count, flats show count only.
func RenderFilterTable(w io.Writer, kind model.FrameType, totals model.FrameTotals) error {
	title := "FLATS"
	headers := []string{"Filter", "Count"}
	rightAlign := map[int]bool{1: true}
	if kind == model.FrameLight {
		title = "LIGHTS"
		headers = []string{"Filter", "Time", "Count"}
		rightAlign = map[int]bool{1: true, 2: true}
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if len(totals.Filters) == 0 {
		_, err := fmt.Fprint(w, "No frames found.\n\n")
		return err
	}

	rows := make([][]string, 0, len(totals.Filters)+1)
	for _, f := range totals.Filters {
		rows = append(rows, filterCells(kind, f.Filter, f.TimeSeconds, f.Count))
	}
	rows = append(rows, filterCells(kind, "Total", totals.TimeSeconds, totals.Count))
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func filterCells(kind model.FrameType, name string, seconds float64, count int) []string {
	if kind == model.FrameLight {
		return []string{name, FormatTime(seconds), fmt.Sprintf("%d", count)}
	}
	return []string{name, fmt.Sprintf("%d", count)}
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount && i < len(row); i++ {
			if w := displayWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	if rightAlign {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
