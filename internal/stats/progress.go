// Package stats aggregates imaging sessions and builds reports from them.
package stats

import (
	"fmt"
	"math"

	"github.com/verte-zerg/astrotally/internal/model"
)

// DefaultTargetHours is the light imaging time a campaign aims for.
const DefaultTargetHours = 20.0

// ComputeProgress returns totalLightSeconds as a percentage of targetSeconds
// and the same value floored and capped at 100 for bounded displays.
func ComputeProgress(totalLightSeconds, targetSeconds float64) (percent float64, clamped int) {
	if targetSeconds <= 0 {
		return 0, 0
	}
	percent = totalLightSeconds / targetSeconds * 100
	clamped = int(math.Floor(percent))
	if clamped > 100 {
		clamped = 100
	}
	if clamped < 0 {
		clamped = 0
	}
	return percent, clamped
}

// CampaignProgress measures the campaign's light time against targetSeconds.
// The label is the most recently processed session.
func CampaignProgress(result model.CampaignResult, targetSeconds float64) model.Progress {
	percent, clamped := ComputeProgress(result.Lights.TimeSeconds, targetSeconds)
	return model.Progress{
		Percent: percent,
		Clamped: clamped,
		Label:   result.Current.Name,
	}
}

// ProgressText renders the unclamped percentage with two decimals.
func ProgressText(p model.Progress) string {
	return fmt.Sprintf("%s: %.2f%% of target complete", p.Label, p.Percent)
}
