package query

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// referencePattern is one named extraction rule. Patterns run in order and
// every match from every pattern feeds the deduplicated result set.
type referencePattern struct {
	name string
	re   *regexp.Regexp
}

// Ordering matters: the explicit "books like the movie X" form must run
// before the bare "like X but" form so the capture starts after the media
// word instead of swallowing it.
var referencePatterns = []referencePattern{
	{"books-like-media", regexp.MustCompile(`(?i)\bbooks? like the (?:movie|film|show|series)\s+(.+?)(?:\s+but\b|[,.!?;]|$)`)},
	{"like-but", regexp.MustCompile(`(?i)\blike\s+(.+?)\s+but\b`)},
	{"similar-to", regexp.MustCompile(`(?i)\bsimilar to\s+(.+?)(?:\s+but\b|[,.!?;]|$)`)},
	{"reminds-me-of", regexp.MustCompile(`(?i)\breminds me of\s+(.+?)(?:\s+but\b|[,.!?;]|$)`)},
	// At most three words feed the vibes capture; leading filler is stripped
	// by the cleaner.
	{"vibes", regexp.MustCompile(`(?i)\b((?:[a-z0-9'&:-]+\s+){0,2}[a-z0-9'&:-]+)\s+vibes\b`)},
}

var (
	// Filler stripped from the front of a capture. Includes articles plus the
	// connective words the loose "vibes" pattern tends to swallow.
	leadingFiller = map[string]struct{}{
		"the": {}, "a": {}, "an": {},
		"i": {}, "want": {}, "give": {}, "me": {}, "with": {}, "some": {},
		"more": {}, "of": {}, "get": {}, "that": {}, "those": {},
	}
	trailingMediaWords = map[string]struct{}{
		"movie": {}, "film": {}, "show": {}, "series": {}, "book": {}, "books": {},
	}
	referenceStopwords = map[string]struct{}{
		"that": {}, "this": {}, "them": {}, "something": {}, "anything": {},
		"stuff": {}, "one": {}, "ones": {},
	}

	titleCaser = cases.Title(language.English)
)

// ExtractMovieRefs pulls candidate movie/show titles out of raw query text.
// It is a pure function; its only failure mode is an empty result.
func ExtractMovieRefs(raw string) []string {
	seen := make(map[string]struct{})
	var refs []string
	for _, pattern := range referencePatterns {
		for _, match := range pattern.re.FindAllStringSubmatch(raw, -1) {
			cleaned := cleanReference(match[1])
			if cleaned == "" {
				continue
			}
			key := strings.ToLower(cleaned)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			refs = append(refs, cleaned)
		}
	}
	return refs
}

// DisplayTitle renders an extracted reference in title case for logs and CLI
// output.
func DisplayTitle(ref string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(ref)))
}

func cleanReference(capture string) string {
	words := strings.Fields(strings.Trim(capture, ` "'`))
	for len(words) > 0 {
		if _, ok := leadingFiller[strings.ToLower(words[0])]; !ok {
			break
		}
		words = words[1:]
	}
	for len(words) > 0 {
		if _, ok := trailingMediaWords[strings.ToLower(words[len(words)-1])]; !ok {
			break
		}
		words = words[:len(words)-1]
	}
	cleaned := strings.Join(words, " ")
	if len(cleaned) < 3 {
		return ""
	}
	if _, stop := referenceStopwords[strings.ToLower(cleaned)]; stop {
		return ""
	}
	return cleaned
}
