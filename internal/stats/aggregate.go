// Package stats aggregates imaging sessions and builds reports from them.
package stats

import (
	"fmt"
	"path/filepath"

	"github.com/verte-zerg/astrotally/internal/model"
	"github.com/verte-zerg/astrotally/internal/naming"
)

// DefaultPattern selects the frame files of a session.
const DefaultPattern = "*.fits"

// DirectoryLister enumerates session directories and their frame files.
type DirectoryLister interface {
	ListSubdirectories(root string) ([]string, error)
	ListFilesRecursive(dir, pattern string) ([]string, error)
}

// Options controls an analysis run.
type Options struct {
	// Pattern is the glob frame files must match. Empty means DefaultPattern.
	Pattern string
	// Logf receives one note per scanned session. Optional.
	Logf func(format string, args ...any)
}

// Analyze scans every immediate subdirectory of root as a session, folds the
// sessions into campaign totals and formats the report.
func Analyze(lister DirectoryLister, root string, opts Options) (model.CampaignResult, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	dirs, err := lister.ListSubdirectories(root)
	if err != nil {
		return model.CampaignResult{}, err
	}

	result := model.CampaignResult{Root: root}
	for _, dir := range dirs {
		base := filepath.Base(dir)
		label := model.SessionLabel{
			Name: naming.TargetName(base),
			Date: naming.SessionDate(base),
		}
		files, err := lister.ListFilesRecursive(dir, pattern)
		if err != nil {
			return model.CampaignResult{}, fmt.Errorf("failed to scan session %s: %w", base, err)
		}
		session := AggregateSession(label, files)
		if opts.Logf != nil {
			opts.Logf("scanned %s: %d files, %d lights, %d flats\n", base, len(files), session.Lights.Count, session.Flats.Count)
		}
		result = Fold(result, session)
	}

	result.Segments, result.CSVRows = BuildReport(result)
	return result, nil
}

// AggregateSession classifies the files of one session and totals them.
// Lights without a positive exposure are dropped. Flats count regardless of
// exposure. Other frames are ignored.
func AggregateSession(label model.SessionLabel, files []string) model.SessionResult {
	session := model.SessionResult{SessionLabel: label}
	for _, file := range files {
		rec := naming.ParseFrame(file)
		switch rec.Type {
		case model.FrameLight:
			if rec.ExposureSeconds <= 0 {
				continue
			}
			session.Lights = addFrame(session.Lights, rec.Filter, rec.ExposureSeconds)
		case model.FrameFlat:
			session.Flats = addFrame(session.Flats, rec.Filter, 0)
		}
	}
	return session
}

func addFrame(t model.FrameTotals, filter string, seconds float64) model.FrameTotals {
	return model.FrameTotals{
		TimeSeconds: t.TimeSeconds + seconds,
		Count:       t.Count + 1,
		Filters:     t.Filters.Add(filter, seconds, 1),
	}
}

// Fold returns campaign with session added to its totals. The session becomes
// the current one.
func Fold(campaign model.CampaignResult, session model.SessionResult) model.CampaignResult {
	sessions := make([]model.SessionResult, len(campaign.Sessions), len(campaign.Sessions)+1)
	copy(sessions, campaign.Sessions)
	return model.CampaignResult{
		Root:     campaign.Root,
		Lights:   campaign.Lights.Plus(session.Lights),
		Flats:    campaign.Flats.Plus(session.Flats),
		Sessions: append(sessions, session),
		Current:  session.SessionLabel,
	}
}
