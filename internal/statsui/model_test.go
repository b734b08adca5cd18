package statsui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/astrotally/internal/model"
)

func sampleResult() model.CampaignResult {
	m42 := model.SessionResult{
		SessionLabel: model.SessionLabel{Name: "M42", Date: "2024-01-15"},
		Lights: model.FrameTotals{
			TimeSeconds: 3600,
			Count:       12,
			Filters:     model.FilterStats{{Filter: "Ha", TimeSeconds: 3600, Count: 12}},
		},
		Flats: model.FrameTotals{
			Count:   20,
			Filters: model.FilterStats{{Filter: "Ha", Count: 20}},
		},
	}
	return model.CampaignResult{
		Root:     "/astro",
		Lights:   m42.Lights,
		Flats:    m42.Flats,
		Sessions: []model.SessionResult{m42},
		Current:  m42.SessionLabel,
		Segments: []model.Segment{
			{Text: "Session M42 on 2024-01-15:", Emphasis: model.EmphasisHeading},
			{Text: "- Ha: 01 Hours and 00 Minutes (12 images)", Emphasis: model.EmphasisDetail},
		},
		CSVRows: []string{"Session M42 on 2024-01-15:", "Filter,Time,Count", "Ha,01 Hours and 00 Minutes,12"},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(m *Model) *Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(*Model)
}

func TestViewShowsReportAndProgress(t *testing.T) {
	m := sized(NewModel(Options{
		Analyze:       func() (model.CampaignResult, error) { return sampleResult(), nil },
		Export:        func([]string) error { return nil },
		TargetSeconds: 72000,
	}))
	out := m.View()
	if !containsAll(out, []string{"Report", "Session M42 on 2024-01-15:", "M42: 5.00% of target complete", "Sessions: 1"}) {
		t.Fatalf("view missing expected content:\n%s", out)
	}
}

func TestViewEmptyBeforeResize(t *testing.T) {
	m := NewModel(Options{
		Analyze: func() (model.CampaignResult, error) { return sampleResult(), nil },
		Export:  func([]string) error { return nil },
	})
	if m.View() != "" {
		t.Fatalf("expected empty view before the first resize")
	}
}

func TestTabsWrapAround(t *testing.T) {
	m := sized(NewModel(Options{
		Analyze: func() (model.CampaignResult, error) { return sampleResult(), nil },
		Export:  func([]string) error { return nil },
	}))
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabSessions {
		t.Fatalf("expected sessions tab, got %d", m.activeTab)
	}
	m.Update(keyRunes("l"))
	if m.activeTab != tabReport {
		t.Fatalf("expected report tab, got %d", m.activeTab)
	}
	m.Update(keyRunes("l"))
	if m.activeTab != tabFilters {
		t.Fatalf("expected filters tab, got %d", m.activeTab)
	}
	if !strings.Contains(m.View(), "Ha") {
		t.Fatalf("expected filter table to list Ha:\n%s", m.View())
	}
}

func TestExportSuccess(t *testing.T) {
	var exported []string
	m := sized(NewModel(Options{
		Analyze: func() (model.CampaignResult, error) { return sampleResult(), nil },
		Export: func(rows []string) error {
			exported = rows
			return nil
		},
		CSVPath: "/tmp/campaign.csv",
	}))
	m.Update(keyRunes("e"))
	if len(exported) != 3 || exported[1] != "Filter,Time,Count" {
		t.Fatalf("unexpected exported rows: %v", exported)
	}
	if !strings.Contains(m.View(), "CSV file saved successfully") {
		t.Fatalf("expected success message:\n%s", m.View())
	}
}

func TestExportFailureIsReported(t *testing.T) {
	m := sized(NewModel(Options{
		Analyze: func() (model.CampaignResult, error) { return sampleResult(), nil },
		Export:  func([]string) error { return errors.New("failed to export CSV to /ro/x.csv: permission denied") },
	}))
	m.Update(keyRunes("e"))
	out := m.View()
	if strings.Contains(out, "saved successfully") {
		t.Fatalf("failure must not report success:\n%s", out)
	}
	if !strings.Contains(out, "failed to export CSV") {
		t.Fatalf("expected export error:\n%s", out)
	}
}

func TestExportWithoutRows(t *testing.T) {
	called := false
	m := sized(NewModel(Options{
		Analyze: func() (model.CampaignResult, error) { return model.CampaignResult{}, nil },
		Export: func([]string) error {
			called = true
			return nil
		},
	}))
	m.Update(keyRunes("e"))
	if called {
		t.Fatalf("export should not run without rows")
	}
	if !strings.Contains(m.View(), "Nothing to export") {
		t.Fatalf("expected nothing-to-export status:\n%s", m.View())
	}
}

func TestRescanReplacesResult(t *testing.T) {
	calls := 0
	m := sized(NewModel(Options{
		Analyze: func() (model.CampaignResult, error) {
			calls++
			if calls == 1 {
				return sampleResult(), nil
			}
			return model.CampaignResult{}, errors.New("directory not found: /astro")
		},
		Export: func([]string) error { return nil },
	}))
	m.Update(keyRunes("r"))
	if calls != 2 {
		t.Fatalf("expected two analysis runs, got %d", calls)
	}
	if len(m.result.Sessions) != 0 || m.result.Lights.Count != 0 {
		t.Fatalf("expected aggregates to be replaced, got %+v", m.result)
	}
	if !strings.Contains(m.View(), "Please select a valid directory") {
		t.Fatalf("expected directory error:\n%s", m.View())
	}
}

func TestQuitKeys(t *testing.T) {
	m := sized(NewModel(Options{
		Analyze: func() (model.CampaignResult, error) { return sampleResult(), nil },
		Export:  func([]string) error { return nil },
	}))
	if _, cmd := m.Update(keyRunes("q")); cmd == nil {
		t.Fatalf("expected quit command for q")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatalf("expected quit command for ctrl+c")
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdefgh", 5); got != "ab..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateLine("abc", 5); got != "abc" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
