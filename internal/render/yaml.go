package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/astrotally/internal/model"
)

// Summary is the machine-readable form of a campaign.
type Summary struct {
	Root     string           `yaml:"root"`
	Lights   TotalsSummary    `yaml:"lights"`
	Flats    TotalsSummary    `yaml:"flats"`
	Sessions []SessionSummary `yaml:"sessions"`
	Progress ProgressSummary  `yaml:"progress"`
}

// TotalsSummary describes one frame kind.
type TotalsSummary struct {
	TimeSeconds float64         `yaml:"time_seconds,omitempty"`
	Count       int             `yaml:"count"`
	Filters     []FilterSummary `yaml:"filters"`
}

// FilterSummary describes one filter.
type FilterSummary struct {
	Filter      string  `yaml:"filter"`
	TimeSeconds float64 `yaml:"time_seconds,omitempty"`
	Count       int     `yaml:"count"`
}

// SessionSummary describes one session.
type SessionSummary struct {
	Name   string        `yaml:"name"`
	Date   string        `yaml:"date"`
	Lights TotalsSummary `yaml:"lights"`
	Flats  TotalsSummary `yaml:"flats"`
}

// ProgressSummary describes progress toward the target.
type ProgressSummary struct {
	Session       string  `yaml:"session"`
	TargetSeconds float64 `yaml:"target_seconds"`
	Percent       float64 `yaml:"percent"`
	Clamped       int     `yaml:"clamped"`
}

// NewSummary builds a Summary from an analysis result.
func NewSummary(result model.CampaignResult, p model.Progress, targetSeconds float64) Summary {
	sessions := make([]SessionSummary, 0, len(result.Sessions))
	for _, s := range result.Sessions {
		sessions = append(sessions, SessionSummary{
			Name:   s.Name,
			Date:   s.Date,
			Lights: totalsSummary(s.Lights),
			Flats:  totalsSummary(s.Flats),
		})
	}
	return Summary{
		Root:     result.Root,
		Lights:   totalsSummary(result.Lights),
		Flats:    totalsSummary(result.Flats),
		Sessions: sessions,
		Progress: ProgressSummary{
			Session:       p.Label,
			TargetSeconds: targetSeconds,
			Percent:       p.Percent,
			Clamped:       p.Clamped,
		},
	}
}

func totalsSummary(t model.FrameTotals) TotalsSummary {
	filters := make([]FilterSummary, 0, len(t.Filters))
	for _, f := range t.Filters {
		filters = append(filters, FilterSummary{Filter: f.Filter, TimeSeconds: f.TimeSeconds, Count: f.Count})
	}
	return TotalsSummary{TimeSeconds: t.TimeSeconds, Count: t.Count, Filters: filters}
}

// YAML writes the summary as a YAML document.
func YAML(w io.Writer, summary Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return enc.Close()
}
