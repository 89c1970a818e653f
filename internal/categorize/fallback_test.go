package categorize

import (
	"reflect"
	"testing"

	"bookscout/internal/matching"
)

func TestFallbackRoundRobin(t *testing.T) {
	books := fixtureBooks(8)
	got := Fallback(fixtureCandidates(6), books)

	assigned := indicesOf(got, books)
	want := map[string][]int{
		CategoryAtmosphere: {0, 3},
		CategoryCharacters: {1, 4},
		CategoryPlot:       {2, 5},
	}
	if !reflect.DeepEqual(assigned, want) {
		t.Errorf("assignment = %v, want %v", assigned, want)
	}
}

func TestFallbackCapsAtSixCandidates(t *testing.T) {
	books := fixtureBooks(8)
	got := Fallback(fixtureCandidates(8), books)
	if got.TotalBooks() != 6 {
		t.Errorf("total = %d, want 6", got.TotalBooks())
	}
}

func TestFallbackPartialCandidates(t *testing.T) {
	books := fixtureBooks(8)
	got := Fallback(fixtureCandidates(4), books)

	assigned := indicesOf(got, books)
	if !reflect.DeepEqual(assigned[CategoryAtmosphere], []int{0, 3}) {
		t.Errorf("atmosphere = %v", assigned[CategoryAtmosphere])
	}
	if !reflect.DeepEqual(assigned[CategoryCharacters], []int{1}) {
		t.Errorf("characters = %v", assigned[CategoryCharacters])
	}
	if !reflect.DeepEqual(assigned[CategoryPlot], []int{2}) {
		t.Errorf("plot = %v", assigned[CategoryPlot])
	}
}

func TestFallbackEmptyCandidates(t *testing.T) {
	got := Fallback(nil, fixtureBooks(2))
	if got.TotalBooks() != 0 {
		t.Errorf("total = %d, want 0", got.TotalBooks())
	}
}

func TestFallbackDerivesTags(t *testing.T) {
	candidates := []matching.Candidate{
		{Index: 0, Score: 90, Reasons: []string{"atmospheric coastal setting"}},
		{Index: 1, Score: 80, Reasons: []string{"memorable characters"}},
		{Index: 2, Score: 70, Reasons: []string{"twisty plotting"}},
	}
	got := Fallback(candidates, fixtureBooks(3))
	// Words longer than four characters, first-seen order.
	if len(got.Atmosphere.Tags) == 0 || got.Atmosphere.Tags[0] != "atmospheric" {
		t.Errorf("atmosphere tags = %v", got.Atmosphere.Tags)
	}
	if len(got.Plot.Tags) == 0 || got.Plot.Tags[0] != "twisty" {
		t.Errorf("plot tags = %v", got.Plot.Tags)
	}
}
