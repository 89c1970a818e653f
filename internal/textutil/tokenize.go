package textutil

import (
	"regexp"
	"strings"
)

// tokenSplitPattern matches non-alphanumeric character sequences for tokenization.
var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Tokenize splits text into lowercase tokens, filtering tokens shorter than
// three characters.
func Tokenize(text string) []string {
	return TokenizeMin(text, 3)
}

// TokenizeMin splits text into lowercase tokens, filtering tokens shorter
// than minLen characters.
func TokenizeMin(text string, minLen int) []string {
	lowered := strings.ToLower(text)
	raw := tokenSplitPattern.Split(lowered, -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.TrimSpace(token)
		if len(token) < minLen {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// DistinctTokens returns tokens of length greater than minLen in first-seen
// order, capped at limit. A non-positive limit means no cap.
func DistinctTokens(texts []string, minLen, limit int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, text := range texts {
		for _, token := range TokenizeMin(text, minLen+1) {
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			out = append(out, token)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}

// CollapseWhitespace trims text and folds internal whitespace runs into
// single spaces.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ContainsWord reports whether the lowercase word appears as a token of text.
func ContainsWord(text, word string) bool {
	for _, token := range TokenizeMin(text, 1) {
		if token == word {
			return true
		}
	}
	return false
}
