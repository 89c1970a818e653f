package categorize

import (
	"bookscout/internal/catalog"
	"bookscout/internal/matching"
	"bookscout/internal/textutil"
)

// maxFallbackCandidates bounds round-robin assignment to two full rounds.
const maxFallbackCandidates = 6

// Fallback assigns the top candidates round-robin across the categories with
// no generation call: candidates[0] and [3] land in atmosphere, [1] and [4]
// in characters, [2] and [5] in plot.
func Fallback(candidates []matching.Candidate, books []catalog.BookRecord) Categories {
	count := len(candidates)
	if count > maxFallbackCandidates {
		count = maxFallbackCandidates
	}

	var result Categories
	for i := 0; i < count; i++ {
		name := categoryOrder[i%len(categoryOrder)]
		bucket := result.bucket(name)
		if len(bucket.Books) == booksPerCategory {
			continue
		}
		candidate := candidates[i]
		bucket.Books = append(bucket.Books, BookPick{
			Book:            books[candidate.Index],
			MatchPercentage: candidate.Score,
			MatchReasons:    map[string][]string{name: candidate.Reasons},
		})
	}

	for _, name := range categoryOrder {
		bucket := result.bucket(name)
		var reasons []string
		for _, pick := range bucket.Books {
			reasons = append(reasons, pick.MatchReasons[name]...)
		}
		bucket.Tags = textutil.DistinctTokens(reasons, 4, maxTagsPerCategory)
	}
	return result
}
