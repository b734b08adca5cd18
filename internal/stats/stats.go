// Package stats aggregates imaging sessions and builds reports from them.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/astrotally/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// SessionHours returns the light imaging hours of each session in order.
func SessionHours(sessions []model.SessionResult) []float64 {
	out := make([]float64, len(sessions))
	for i, s := range sessions {
		out[i] = s.Lights.TimeSeconds / 3600
	}
	return out
}

// RenderSessions prints one row per session and a sparkline of light hours.
func RenderSessions(w io.Writer, sessions []model.SessionResult) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "SESSIONS"); err != nil {
		return err
	}
	headers := []string{"Session", "Date", "Light Time", "Lights", "Flats"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.Name,
			s.Date,
			FormatTime(s.Lights.TimeSeconds),
			fmt.Sprintf("%d", s.Lights.Count),
			fmt.Sprintf("%d", s.Flats.Count),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(sessions) > 1 {
		if _, err := fmt.Fprintf(w, "Light hours per session: [%s]\n", Sparkline(SessionHours(sessions))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
