package matching

import (
	"reflect"
	"testing"
)

func TestParseCandidatesStrategies(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []Candidate
	}{
		{
			name:     "strict format",
			response: "[0]|90|cozy setting; amateur sleuth",
			want:     []Candidate{{Index: 0, Score: 90, Reasons: []string{"cozy setting", "amateur sleuth"}}},
		},
		{
			name:     "dash format",
			response: "[3] - 75 - atmospheric and character driven",
			want:     []Candidate{{Index: 3, Score: 75, Reasons: []string{"atmospheric", "character driven"}}},
		},
		{
			name:     "no brackets",
			response: "2|60|slow burn",
			want:     []Candidate{{Index: 2, Score: 60, Reasons: []string{"slow burn"}}},
		},
		{
			name:     "loose book prefix",
			response: "Book 5: 80%: witty dialogue",
			want:     []Candidate{{Index: 5, Score: 80, Reasons: []string{"witty dialogue"}}},
		},
		{
			name:     "mixed formats sorted by score",
			response: "[1]|40|weak match\nBook 4: 95%: excellent fit",
			want: []Candidate{
				{Index: 4, Score: 95, Reasons: []string{"excellent fit"}},
				{Index: 1, Score: 40, Reasons: []string{"weak match"}},
			},
		},
		{
			name:     "score clamped to 100",
			response: "[0]|250|overenthusiastic",
			want:     []Candidate{{Index: 0, Score: 100, Reasons: []string{"overenthusiastic"}}},
		},
		{
			name:     "empty reasons get generic reason",
			response: "[0]|50|",
			want:     []Candidate{{Index: 0, Score: 50, Reasons: []string{genericReason}}},
		},
		{
			name:     "reasons capped at three",
			response: "[0]|50|a; b; c; d; e",
			want:     []Candidate{{Index: 0, Score: 50, Reasons: []string{"a", "b", "c"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCandidates(tt.response, 10, 10)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCandidates() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseCandidatesDuplicateIndexKeepsFirst(t *testing.T) {
	got := ParseCandidates("[0]|90|a; b\n[0]|80|c", 10, 10)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Score != 90 {
		t.Errorf("score = %d, want 90 (first occurrence wins)", got[0].Score)
	}
}

func TestParseCandidatesOutOfRangeDropped(t *testing.T) {
	got := ParseCandidates("[99]|50|x", 10, 10)
	if len(got) != 0 {
		t.Errorf("got %+v, want no candidates", got)
	}
}

func TestParseCandidatesStructuredLineSuppressesIndexScan(t *testing.T) {
	got := ParseCandidates("[99]|50|x\nI also considered [2] and [4].", 10, 10)
	if len(got) != 0 {
		t.Errorf("got %+v, want no candidates when a structured line was dropped", got)
	}
}

func TestParseCandidatesIndexOnlyLastResort(t *testing.T) {
	got := ParseCandidates("I would recommend [2] for the setting and maybe [5] too.", 10, 10)
	want := []Candidate{
		{Index: 2, Score: indexOnlyScore, Reasons: []string{indexOnlyReason}},
		{Index: 5, Score: indexOnlyScore, Reasons: []string{indexOnlyReason}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseCandidates() = %+v, want %+v", got, want)
	}
}

func TestParseCandidatesUnparsableYieldsEmpty(t *testing.T) {
	if got := ParseCandidates("I'm sorry, I can't rank these books.", 10, 10); len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}

func TestParseCandidatesRespectsLimit(t *testing.T) {
	response := "[0]|90|a\n[1]|80|b\n[2]|70|c\n[3]|60|d"
	got := ParseCandidates(response, 10, 2)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].Index != 0 || got[1].Index != 1 {
		t.Errorf("kept %+v, want the two highest scores", got)
	}
}

func TestParseCandidatesIgnoresNoise(t *testing.T) {
	response := "Here are my picks:\n\n[1]|85|great atmosphere\nHope that helps!"
	got := ParseCandidates(response, 10, 10)
	if len(got) != 1 || got[0].Index != 1 {
		t.Errorf("got %+v, want only index 1", got)
	}
}
