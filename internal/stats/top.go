// Package stats aggregates imaging sessions and builds reports from them.
package stats

import (
	"sort"

	"github.com/verte-zerg/astrotally/internal/model"
)

// FiltersByTime returns a copy of filters ordered by time, then count, then
// name. Used for ranked displays; reports keep first-seen order.
func FiltersByTime(filters model.FilterStats) model.FilterStats {
	out := make(model.FilterStats, len(filters))
	copy(out, filters)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TimeSeconds != out[j].TimeSeconds {
			return out[i].TimeSeconds > out[j].TimeSeconds
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Filter < out[j].Filter
	})
	return out
}
