package matching

import (
	"sort"
	"strings"

	"bookscout/internal/catalog"
	"bookscout/internal/textutil"
)

// Keyword scoring weights. The cap keeps heuristic scores below a confident
// generative match.
const (
	titlePhraseWeight  = 50
	titleWordWeight    = 10
	authorPhraseWeight = 30
	authorWordWeight   = 8
	genreWeight        = 20
	tropeWeight        = 15
	moodWeight         = 25
	keywordScoreCap    = 85
)

// MatchKeywords is the pure fallback matcher: word-overlap scoring with no
// I/O and no failure mode. Used only when the generative matching stage
// fails outright.
func MatchKeywords(query string, books []catalog.BookRecord, limit int) []Candidate {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	queryWords := textutil.Tokenize(query)

	var candidates []Candidate
	for i, book := range books {
		score, reasons := scoreBook(queryLower, queryWords, book)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, Candidate{Index: i, Score: score, Reasons: reasons})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

func scoreBook(queryLower string, queryWords []string, book catalog.BookRecord) (int, []string) {
	score := 0
	var reasons []string

	titleLower := strings.ToLower(book.Title)
	if queryLower != "" && strings.Contains(queryLower, titleLower) {
		score += titlePhraseWeight
		reasons = append(reasons, "Title matches your search")
	} else if n := countWordHits(titleLower, queryWords); n > 0 {
		score += n * titleWordWeight
		reasons = append(reasons, "Title relates to your search")
	}

	authorLower := strings.ToLower(book.Author)
	if queryLower != "" && strings.Contains(queryLower, authorLower) {
		score += authorPhraseWeight
		reasons = append(reasons, "By "+book.Author)
	} else if n := countWordHits(authorLower, queryWords); n > 0 {
		score += n * authorWordWeight
		reasons = append(reasons, "Author relates to your search")
	}

	for _, genre := range book.Genres {
		if termMatches(queryLower, queryWords, genre) {
			score += genreWeight
			reasons = append(reasons, "Genre: "+genre)
		}
	}
	for _, trope := range book.Tropes {
		if termMatches(queryLower, queryWords, trope) {
			score += tropeWeight
			reasons = append(reasons, "Features "+trope)
		}
	}
	for _, mood := range book.Mood {
		if termMatches(queryLower, queryWords, mood) {
			score += moodWeight
			reasons = append(reasons, "Mood: "+mood)
		}
	}

	if score > keywordScoreCap {
		score = keywordScoreCap
	}
	if score > 0 && len(reasons) == 0 {
		reasons = []string{genericReason}
	}
	return score, reasons
}

// countWordHits counts distinct query words appearing as words of text.
func countWordHits(text string, queryWords []string) int {
	hits := 0
	for _, word := range queryWords {
		if textutil.ContainsWord(text, word) {
			hits++
		}
	}
	return hits
}

// termMatches reports whether a catalog term (genre, trope, mood) overlaps
// the query: the full term appears in the query, or any word of a
// multi-word term appears as a query word.
func termMatches(queryLower string, queryWords []string, term string) bool {
	termLower := strings.ToLower(term)
	if strings.Contains(queryLower, termLower) {
		return true
	}
	for _, word := range textutil.Tokenize(termLower) {
		for _, queryWord := range queryWords {
			if word == queryWord {
				return true
			}
		}
	}
	return false
}
