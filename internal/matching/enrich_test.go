package matching

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bookscout/internal/catalog"
	"bookscout/internal/services"
	"bookscout/internal/services/llm"
	"bookscout/internal/themes"
)

type capturingGenerator struct {
	response string
	err      error
	lastReq  llm.Request
}

func (g *capturingGenerator) Complete(ctx context.Context, req llm.Request) (string, error) {
	g.lastReq = req
	return g.response, g.err
}

func TestEnrichBuildsLayeredPrompt(t *testing.T) {
	generator := &capturingGenerator{response: "A reader seeking warmth and puzzles."}
	enricher := NewEnricher(generator, nil, time.Second)

	bundle := themes.Bundle{Themes: []string{"family secrets"}, Mood: []string{"twisty"}}
	profile := catalog.UserProfile{FavoriteGenres: []string{"mystery"}, DislikedTropes: []string{"love triangle"}}

	got, err := enricher.Enrich(context.Background(), "cozy mystery", bundle, profile)
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if got.EnrichedQuery != "A reader seeking warmth and puzzles." {
		t.Errorf("enriched = %q", got.EnrichedQuery)
	}
	prompt := generator.lastReq.UserPrompt
	if !strings.Contains(prompt, "Query (primary): cozy mystery") {
		t.Errorf("prompt missing primary query marker:\n%s", prompt)
	}
	if !strings.Contains(prompt, "enhancement only") || !strings.Contains(prompt, "family secrets") {
		t.Errorf("prompt missing theme block:\n%s", prompt)
	}
	if !strings.Contains(prompt, "secondary") || !strings.Contains(prompt, "love triangle") {
		t.Errorf("prompt missing profile block:\n%s", prompt)
	}
	if generator.lastReq.MaxTokens != enrichMaxTokens {
		t.Errorf("max tokens = %d, want %d", generator.lastReq.MaxTokens, enrichMaxTokens)
	}
	if len(got.MovieThemes) != 2 {
		t.Errorf("movie themes = %v", got.MovieThemes)
	}
}

func TestEnrichOmitsEmptyContext(t *testing.T) {
	generator := &capturingGenerator{response: "Expanded."}
	enricher := NewEnricher(generator, nil, time.Second)

	_, err := enricher.Enrich(context.Background(), "space opera", themes.Bundle{}, catalog.UserProfile{})
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	prompt := generator.lastReq.UserPrompt
	if strings.Contains(prompt, "Movie themes") || strings.Contains(prompt, "Reader profile") {
		t.Errorf("prompt should omit empty context blocks:\n%s", prompt)
	}
}

func TestEnrichPropagatesFailure(t *testing.T) {
	enricher := NewEnricher(&capturingGenerator{err: errors.New("boom")}, nil, time.Second)

	_, err := enricher.Enrich(context.Background(), "anything", themes.Bundle{}, catalog.UserProfile{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrUpstream) {
		t.Errorf("error %v is not tagged as upstream failure", err)
	}
}

func TestEnrichBlankResponseFallsBackToRawQuery(t *testing.T) {
	enricher := NewEnricher(&capturingGenerator{response: "   "}, nil, time.Second)

	got, err := enricher.Enrich(context.Background(), "cozy mystery", themes.Bundle{}, catalog.UserProfile{})
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if got.EnrichedQuery != "cozy mystery" {
		t.Errorf("enriched = %q, want raw query", got.EnrichedQuery)
	}
}
