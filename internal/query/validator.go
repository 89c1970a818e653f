package query

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"bookscout/internal/services"
	"bookscout/internal/textutil"
)

// MaxQueryLength is the hard cap on normalized query length, in runes.
const MaxQueryLength = 500

// MinQueryLength is the minimum normalized query length, in runes.
const MinQueryLength = 3

// SearchQuery is the validated form of a raw search request.
type SearchQuery struct {
	Raw        string
	Normalized string
	MovieRefs  []string
}

// Normalize validates and normalizes raw query text. Rules apply in order:
// reject empty input, collapse internal whitespace, reject anything shorter
// than MinQueryLength, truncate past MaxQueryLength (truncation is itself a
// validation error), and reject text with no alphanumeric characters.
//
// This is the only stage that produces a user-facing validation error; every
// later pipeline failure is recovered internally.
func Normalize(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", services.Wrap(services.ErrValidation, "query", "normalize", "query must not be empty", nil)
	}

	normalized := textutil.CollapseWhitespace(raw)
	if utf8.RuneCountInString(normalized) < MinQueryLength {
		return "", services.Wrap(services.ErrValidation, "query", "normalize", "query must be at least 3 characters", nil)
	}
	if utf8.RuneCountInString(normalized) > MaxQueryLength {
		runes := []rune(normalized)
		return string(runes[:MaxQueryLength]), services.Wrap(services.ErrValidation, "query", "normalize", "query must be 500 characters or fewer", nil)
	}
	if !containsAlphanumeric(normalized) {
		return "", services.Wrap(services.ErrValidation, "query", "normalize", "query must contain letters or numbers", nil)
	}
	return normalized, nil
}

func containsAlphanumeric(text string) bool {
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
