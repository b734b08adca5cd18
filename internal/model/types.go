// Package model defines shared data structures.
package model

// FrameType classifies a frame by the text of its path.
type FrameType int

const (
	// FrameOther is neither a light nor a flat frame.
	FrameOther FrameType = iota
	// FrameLight is a science exposure counted toward imaging time.
	FrameLight
	// FrameFlat is a calibration exposure counted by number only.
	FrameFlat
)

func (t FrameType) String() string {
	switch t {
	case FrameLight:
		return "light"
	case FrameFlat:
		return "flat"
	default:
		return "other"
	}
}

// UnknownFilter is used when a file name carries no filter token.
const UnknownFilter = "Unknown"

// UnknownDate is used when a session folder has no date suffix.
const UnknownDate = "Unknown Date"

// FrameRecord is one parsed file.
type FrameRecord struct {
	Path            string
	ExposureSeconds float64
	Filter          string
	Type            FrameType
}

// FilterStat holds totals for one filter. TimeSeconds stays zero for flats.
type FilterStat struct {
	Filter      string
	TimeSeconds float64
	Count       int
}

// FilterStats holds per-filter totals in first-seen order. Filter names are unique.
type FilterStats []FilterStat

// Lookup returns the stat for filter.
func (s FilterStats) Lookup(filter string) (FilterStat, bool) {
	for _, st := range s {
		if st.Filter == filter {
			return st, true
		}
	}
	return FilterStat{}, false
}

// Add returns a copy of s with seconds and count added to filter.
// Unknown filters are appended.
func (s FilterStats) Add(filter string, seconds float64, count int) FilterStats {
	out := make(FilterStats, len(s), len(s)+1)
	copy(out, s)
	for i := range out {
		if out[i].Filter == filter {
			out[i].TimeSeconds += seconds
			out[i].Count += count
			return out
		}
	}
	return append(out, FilterStat{Filter: filter, TimeSeconds: seconds, Count: count})
}

// Merge returns the per-filter sum of s and other. Keys of s keep their
// position; keys only present in other are appended in their order.
func (s FilterStats) Merge(other FilterStats) FilterStats {
	out := make(FilterStats, len(s), len(s)+len(other))
	copy(out, s)
	for _, st := range other {
		out = out.Add(st.Filter, st.TimeSeconds, st.Count)
	}
	return out
}

// TotalTime sums TimeSeconds over all filters.
func (s FilterStats) TotalTime() float64 {
	var total float64
	for _, st := range s {
		total += st.TimeSeconds
	}
	return total
}

// TotalCount sums Count over all filters.
func (s FilterStats) TotalCount() int {
	total := 0
	for _, st := range s {
		total += st.Count
	}
	return total
}

// FrameTotals aggregates one frame type.
type FrameTotals struct {
	TimeSeconds float64
	Count       int
	Filters     FilterStats
}

// Plus returns the sum of t and other.
func (t FrameTotals) Plus(other FrameTotals) FrameTotals {
	return FrameTotals{
		TimeSeconds: t.TimeSeconds + other.TimeSeconds,
		Count:       t.Count + other.Count,
		Filters:     t.Filters.Merge(other.Filters),
	}
}

// SessionLabel identifies a session folder.
type SessionLabel struct {
	Name string
	Date string
}

// SessionResult summarizes one session directory.
type SessionResult struct {
	SessionLabel
	Lights FrameTotals
	Flats  FrameTotals
}

// Emphasis is the style tag of a report segment.
type Emphasis int

const (
	// EmphasisBody is regular report text.
	EmphasisBody Emphasis = iota
	// EmphasisHeading marks session and aggregate headings.
	EmphasisHeading
	// EmphasisDetail marks per-filter lines.
	EmphasisDetail
)

// Segment is one line of the styled report.
type Segment struct {
	Text     string
	Emphasis Emphasis
}

// CampaignResult is the outcome of one analysis run.
type CampaignResult struct {
	Root     string
	Lights   FrameTotals
	Flats    FrameTotals
	Sessions []SessionResult
	// Current is the most recently processed session. Progress is labelled
	// with it even though the percentage covers the whole campaign.
	Current  SessionLabel
	Segments []Segment
	CSVRows  []string
}

// Progress is light imaging time measured against a target.
type Progress struct {
	Percent float64
	Clamped int
	Label   string
}
