package matching

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Candidate is one book scored and reasoned against a query, prior to
// categorization.
type Candidate struct {
	Index   int
	Score   int
	Reasons []string
}

const (
	// indexOnlyScore is assigned when only bare [n] references are found.
	indexOnlyScore    = 70
	indexOnlyReason   = "Mentioned in search results"
	genericReason     = "Matched your search"
	maxReasonsPerLine = 3
)

// lineStrategy is one named line format tried against each response line.
// Group 1 is the index, group 2 the score, group 3 the reasons.
type lineStrategy struct {
	name    string
	pattern *regexp.Regexp
}

// Strategies are tried in priority order; the first match wins per line.
var lineStrategies = []lineStrategy{
	{"strict-format", regexp.MustCompile(`^\s*\[(\d+)\]\s*\|\s*(\d+)\s*\|\s*(.*)$`)},
	{"dash-format", regexp.MustCompile(`^\s*\[(\d+)\]\s*-\s*(\d+)\s*-\s*(.*)$`)},
	{"no-delimiter", regexp.MustCompile(`^\s*(\d+)\s*\|\s*(\d+)\s*\|\s*(.*)$`)},
	{"loose-book-prefix", regexp.MustCompile(`(?i)^\s*book\s+(\d+)\s*:\s*(\d+)%?\s*:\s*(.*)$`)},
}

var (
	bareIndexPattern   = regexp.MustCompile(`\[(\d+)\]`)
	reasonSplitPattern = regexp.MustCompile(`\s*(?:;|\||\band\b)\s*`)
)

// ParseCandidates extracts scored candidates from free-form model output. It
// never fails: an unparsable response yields an empty list, which the caller
// treats as grounds for the fallback matcher.
//
// The bare-index scan runs only when no line matched any strategy at all. A
// line that matched a strategy but was dropped (out-of-range or duplicate
// index) still counts as structural output, so the scan stays off and the
// result may legitimately be empty.
func ParseCandidates(response string, catalogLength, limit int) []Candidate {
	var candidates []Candidate
	seen := make(map[int]bool)
	structuralMatches := 0

	for _, line := range strings.Split(response, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		candidate, matched, accepted := parseLine(line, catalogLength)
		if matched {
			structuralMatches++
		}
		if !accepted || seen[candidate.Index] {
			continue
		}
		seen[candidate.Index] = true
		candidates = append(candidates, candidate)
	}

	if structuralMatches == 0 {
		candidates = scanBareIndices(response, catalogLength)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// parseLine reports whether the line matched a strategy at all and, separately,
// whether it produced an in-range candidate.
func parseLine(line string, catalogLength int) (Candidate, bool, bool) {
	for _, strategy := range lineStrategies {
		match := strategy.pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		index, err := strconv.Atoi(match[1])
		if err != nil || index < 0 || index >= catalogLength {
			return Candidate{}, true, false
		}
		return Candidate{
			Index:   index,
			Score:   parseScore(match[2]),
			Reasons: splitReasons(match[3]),
		}, true, true
	}
	return Candidate{}, false, false
}

func parseScore(raw string) int {
	score, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func splitReasons(raw string) []string {
	var reasons []string
	for _, piece := range reasonSplitPattern.Split(raw, -1) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		reasons = append(reasons, piece)
		if len(reasons) == maxReasonsPerLine {
			break
		}
	}
	if len(reasons) == 0 {
		reasons = []string{genericReason}
	}
	return reasons
}

// scanBareIndices is the last-resort pass: every [digits] substring anywhere
// in the text becomes a candidate with a fixed default score.
func scanBareIndices(response string, catalogLength int) []Candidate {
	var candidates []Candidate
	seen := make(map[int]bool)
	for _, match := range bareIndexPattern.FindAllStringSubmatch(response, -1) {
		index, err := strconv.Atoi(match[1])
		if err != nil || index < 0 || index >= catalogLength || seen[index] {
			continue
		}
		seen[index] = true
		candidates = append(candidates, Candidate{
			Index:   index,
			Score:   indexOnlyScore,
			Reasons: []string{indexOnlyReason},
		})
	}
	return candidates
}
