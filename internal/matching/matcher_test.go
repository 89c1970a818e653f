package matching

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bookscout/internal/services"
)

func TestMatchDescribesEveryBook(t *testing.T) {
	generator := &capturingGenerator{response: "[0]|90|fits"}
	matcher := NewMatcher(generator, nil, time.Second)
	books := keywordFixture()

	raw, err := matcher.Match(context.Background(), Enrichment{EnrichedQuery: "cozy mystery"}, books, 10)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if raw != "[0]|90|fits" {
		t.Errorf("raw = %q, want untouched model output", raw)
	}
	prompt := generator.lastReq.UserPrompt
	for _, book := range books {
		if !strings.Contains(prompt, book.Title) {
			t.Errorf("prompt missing %q", book.Title)
		}
	}
	if !strings.Contains(prompt, "0|The Bookshop at Wyndham Lane|Clara Penhaligon|mystery,cozy|") {
		t.Errorf("catalog line format unexpected:\n%s", prompt)
	}
	if !strings.Contains(generator.lastReq.SystemPrompt, "[index]|score|reason1; reason2; reason3") {
		t.Error("system prompt missing the output contract")
	}
	if generator.lastReq.MaxTokens != matchMaxTokens {
		t.Errorf("max tokens = %d, want %d", generator.lastReq.MaxTokens, matchMaxTokens)
	}
}

func TestMatchIncludesThemeAndProfileBlocks(t *testing.T) {
	generator := &capturingGenerator{response: "ok"}
	matcher := NewMatcher(generator, nil, time.Second)

	enrichment := Enrichment{
		EnrichedQuery:  "warm puzzles",
		ProfileSummary: "favorite genres: mystery",
		MovieThemes:    []string{"whodunit"},
	}
	if _, err := matcher.Match(context.Background(), enrichment, keywordFixture(), 5); err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	prompt := generator.lastReq.UserPrompt
	if !strings.Contains(prompt, "whodunit") || !strings.Contains(prompt, "favorite genres: mystery") {
		t.Errorf("prompt missing context blocks:\n%s", prompt)
	}
}

func TestMatchPropagatesFailure(t *testing.T) {
	matcher := NewMatcher(&capturingGenerator{err: errors.New("timeout")}, nil, time.Second)

	_, err := matcher.Match(context.Background(), Enrichment{EnrichedQuery: "x"}, keywordFixture(), 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrUpstream) {
		t.Errorf("error %v is not tagged as upstream failure", err)
	}
}
