package stats

import (
	"testing"

	"github.com/verte-zerg/astrotally/internal/model"
)

func TestFiltersByTime(t *testing.T) {
	filters := model.FilterStats{
		{Filter: "L", TimeSeconds: 600, Count: 10},
		{Filter: "Ha", TimeSeconds: 1200, Count: 4},
		{Filter: "SII", TimeSeconds: 600, Count: 12},
		{Filter: "OIII", TimeSeconds: 600, Count: 10},
	}
	got := FiltersByTime(filters)
	want := []string{"Ha", "SII", "L", "OIII"}
	for i, name := range want {
		if got[i].Filter != name {
			t.Fatalf("expected %q at %d, got %+v", name, i, got)
		}
	}
	if filters[0].Filter != "L" {
		t.Fatalf("input was reordered: %+v", filters)
	}
}
