package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/astrotally/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Filter", "Count"}
	rows := [][]string{
		{"Ha", "12"},
		{"L-Pro", "3"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Filter  Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Ha         12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "L-Pro       3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestRenderFilterTableLights(t *testing.T) {
	var buf bytes.Buffer
	totals := model.FrameTotals{
		TimeSeconds: 7260,
		Count:       3,
		Filters: model.FilterStats{
			{Filter: "Ha", TimeSeconds: 3600, Count: 2},
			{Filter: "OIII", TimeSeconds: 3660, Count: 1},
		},
	}
	if err := RenderFilterTable(&buf, model.FrameLight, totals); err != nil {
		t.Fatalf("RenderFilterTable failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"LIGHTS", "Filter", "Time", "OIII", "01 Hours and 01 Minutes", "Total", "02 Hours and 01 Minutes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderFilterTableEmptyFlats(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderFilterTable(&buf, model.FrameFlat, model.FrameTotals{}); err != nil {
		t.Fatalf("RenderFilterTable failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No frames found.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}

func TestRenderSessionsSparkline(t *testing.T) {
	var buf bytes.Buffer
	sessions := []model.SessionResult{
		{SessionLabel: model.SessionLabel{Name: "M42", Date: "2024-01-15"}, Lights: model.FrameTotals{TimeSeconds: 3600, Count: 12}},
		{SessionLabel: model.SessionLabel{Name: "M42", Date: "2024-01-16"}, Lights: model.FrameTotals{TimeSeconds: 7200, Count: 24}},
	}
	if err := RenderSessions(&buf, sessions); err != nil {
		t.Fatalf("RenderSessions failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "2024-01-16") || !strings.Contains(out, "[ @]") {
		t.Fatalf("unexpected sessions output:\n%s", out)
	}
}
