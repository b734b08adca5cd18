package stats

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/verte-zerg/astrotally/internal/model"
)

type frameCase struct {
	Light   bool
	Filter  string
	Seconds int
}

func genFrameCase() gopter.Gen {
	return gopter.CombineGens(
		gen.Bool(),
		gen.OneConstOf("Ha", "OIII", "SII", "L", "R"),
		gen.IntRange(0, 600),
	).Map(func(v []interface{}) frameCase {
		return frameCase{Light: v[0].(bool), Filter: v[1].(string), Seconds: v[2].(int)}
	})
}

func sessionFromCases(name string, cases []frameCase) model.SessionResult {
	files := make([]string, 0, len(cases))
	for i, fc := range cases {
		kind := "Flat"
		if fc.Light {
			kind = "Light"
		}
		files = append(files, fmt.Sprintf("%s/%s_%dsec_FILTER_%s_%04d.fits", name, kind, fc.Seconds, fc.Filter, i))
	}
	return AggregateSession(model.SessionLabel{Name: name, Date: model.UnknownDate}, files)
}

func sameFilterSet(a, b model.FilterStats) bool {
	if len(a) != len(b) {
		return false
	}
	for _, st := range a {
		other, ok := b.Lookup(st.Filter)
		if !ok || other != st {
			return false
		}
	}
	return true
}

func TestFoldIsOrderIndependent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("folding [A, B] and [B, A] yields the same totals", prop.ForAll(
		func(casesA, casesB []frameCase) bool {
			a := sessionFromCases("A", casesA)
			b := sessionFromCases("B", casesB)
			ab := Fold(Fold(model.CampaignResult{}, a), b)
			ba := Fold(Fold(model.CampaignResult{}, b), a)

			if ab.Lights.TimeSeconds != ba.Lights.TimeSeconds || ab.Lights.Count != ba.Lights.Count {
				return false
			}
			if ab.Flats.Count != ba.Flats.Count {
				return false
			}
			if !sameFilterSet(ab.Lights.Filters, ba.Lights.Filters) || !sameFilterSet(ab.Flats.Filters, ba.Flats.Filters) {
				return false
			}
			return ab.Current.Name == "B" && ba.Current.Name == "A"
		},
		gen.SliceOf(genFrameCase()),
		gen.SliceOf(genFrameCase()),
	))

	properties.Property("totals equal the sum over filters", prop.ForAll(
		func(casesA, casesB []frameCase) bool {
			c := Fold(Fold(model.CampaignResult{}, sessionFromCases("A", casesA)), sessionFromCases("B", casesB))
			return c.Lights.TimeSeconds == c.Lights.Filters.TotalTime() &&
				c.Lights.Count == c.Lights.Filters.TotalCount() &&
				c.Flats.Count == c.Flats.Filters.TotalCount()
		},
		gen.SliceOf(genFrameCase()),
		gen.SliceOf(genFrameCase()),
	))

	properties.TestingRun(t)
}

func TestFoldDoesNotMutateInputs(t *testing.T) {
	a := sessionFromCases("A", []frameCase{{Light: true, Filter: "Ha", Seconds: 60}})
	first := Fold(model.CampaignResult{}, a)
	second := Fold(first, a)
	if first.Lights.Filters[0].TimeSeconds != 60 || len(first.Sessions) != 1 {
		t.Fatalf("first fold was mutated: %+v", first)
	}
	if second.Lights.Filters[0].TimeSeconds != 120 || len(second.Sessions) != 2 {
		t.Fatalf("unexpected second fold: %+v", second)
	}
}
