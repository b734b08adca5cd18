// Package stats aggregates imaging sessions and builds reports from them.
package stats

import (
	"fmt"
	"time"

	"github.com/verte-zerg/astrotally/internal/model"
)

// FormatTime renders seconds as "HH Hours and MM Minutes". Seconds are truncated.
func FormatTime(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%02d Hours and %02d Minutes", hours, minutes)
}

type reportBuilder struct {
	segments []model.Segment
	rows     []string
}

func (b *reportBuilder) line(emphasis model.Emphasis, format string, args ...any) {
	b.segments = append(b.segments, model.Segment{Text: fmt.Sprintf(format, args...), Emphasis: emphasis})
}

func (b *reportBuilder) row(format string, args ...any) {
	b.rows = append(b.rows, fmt.Sprintf(format, args...))
}

// BuildReport renders the session sections followed by the aggregated
// results. Session sections without frames of a kind are left out.
func BuildReport(result model.CampaignResult) ([]model.Segment, []string) {
	b := &reportBuilder{}
	for _, s := range result.Sessions {
		writeSession(b, s, model.FrameLight)
		writeSession(b, s, model.FrameFlat)
	}
	writeAggregate(b, model.FrameLight, result.Lights)
	writeAggregate(b, model.FrameFlat, result.Flats)
	return b.segments, b.rows
}

// SessionReport renders one kind of frames of a session. kind must be
// model.FrameLight or model.FrameFlat.
func SessionReport(s model.SessionResult, kind model.FrameType) ([]model.Segment, []string) {
	b := &reportBuilder{}
	writeSession(b, s, kind)
	return b.segments, b.rows
}

// AggregateReport renders the aggregated results block of one kind.
func AggregateReport(kind model.FrameType, totals model.FrameTotals) ([]model.Segment, []string) {
	b := &reportBuilder{}
	writeAggregate(b, kind, totals)
	return b.segments, b.rows
}

func writeSession(b *reportBuilder, s model.SessionResult, kind model.FrameType) {
	totals := totalsFor(s, kind)
	if totals.Count == 0 {
		return
	}
	label := fmt.Sprintf("Session %s on %s", s.Name, s.Date)
	b.line(model.EmphasisHeading, "%s:", label)
	if kind == model.FrameLight {
		b.line(model.EmphasisBody, "Total Imaging Time: %s", FormatTime(totals.TimeSeconds))
		b.row("%s,Total Imaging Time,%s", label, FormatTime(totals.TimeSeconds))
	} else {
		b.line(model.EmphasisBody, "Total Number of Images: %d", totals.Count)
		b.row("%s,Total Number of Images,%d", label, totals.Count)
	}
	writeFilters(b, kind, totals.Filters)
}

func writeAggregate(b *reportBuilder, kind model.FrameType, totals model.FrameTotals) {
	title := "FLATS Aggregated Results"
	if kind == model.FrameLight {
		title = "LIGHTS Aggregated Results"
	}
	b.line(model.EmphasisHeading, "%s:", title)
	b.row("%s", title)
	if kind == model.FrameLight {
		b.line(model.EmphasisBody, "Total Imaging Time: %s", FormatTime(totals.TimeSeconds))
		b.row("Total Imaging Time,%s", FormatTime(totals.TimeSeconds))
	}
	b.line(model.EmphasisBody, "Total Number of Images: %d", totals.Count)
	b.row("Total Number of Images,%d", totals.Count)
	writeFilters(b, kind, totals.Filters)
}

// writeFilters emits the per-filter lines. Lights carry time and count,
// flats carry count only.
func writeFilters(b *reportBuilder, kind model.FrameType, filters model.FilterStats) {
	b.line(model.EmphasisBody, "Filters:")
	if kind == model.FrameLight {
		b.row("Filter,Time,Count")
	} else {
		b.row("Filter,Count")
	}
	for _, f := range filters {
		if kind == model.FrameLight {
			b.line(model.EmphasisDetail, "- %s: %s (%d images)", f.Filter, FormatTime(f.TimeSeconds), f.Count)
			b.row("%s,%s,%d", f.Filter, FormatTime(f.TimeSeconds), f.Count)
			continue
		}
		b.line(model.EmphasisDetail, "- %s: %d images", f.Filter, f.Count)
		b.row("%s,%d", f.Filter, f.Count)
	}
	b.line(model.EmphasisBody, "")
}

func totalsFor(s model.SessionResult, kind model.FrameType) model.FrameTotals {
	if kind == model.FrameLight {
		return s.Lights
	}
	return s.Flats
}
