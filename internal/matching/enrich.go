package matching

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookscout/internal/catalog"
	"bookscout/internal/logging"
	"bookscout/internal/services"
	"bookscout/internal/services/llm"
	"bookscout/internal/themes"
)

const (
	defaultEnrichTimeout = 10 * time.Second
	enrichMaxTokens      = 300
)

// Enrichment carries the expanded intent plus the secondary context that
// produced it, for reuse in the matching prompt.
type Enrichment struct {
	EnrichedQuery  string
	ProfileSummary string
	MovieThemes    []string
}

// Enricher expands a raw query into a richer intent description using one
// generation call. It does not recover its own failures; the orchestrator
// owns the matching-stage fallback.
type Enricher struct {
	generator llm.Generator
	logger    *slog.Logger
	timeout   time.Duration
}

func NewEnricher(generator llm.Generator, logger *slog.Logger, timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = defaultEnrichTimeout
	}
	return &Enricher{
		generator: generator,
		logger:    logging.NewComponentLogger(logger, "enrichment"),
		timeout:   timeout,
	}
}

const enrichSystemPrompt = `You expand book search queries into richer descriptions of reader intent.

The user's query is the primary source of truth. Movie themes, when present, are enhancement only. The reader profile is secondary context and must never override the query's intent.

Respond with a 2-3 sentence expansion of what the reader is looking for. No preamble, no lists.`

// Enrich issues the expansion call and returns the enriched intent verbatim.
func (e *Enricher) Enrich(ctx context.Context, rawQuery string, movieThemes themes.Bundle, profile catalog.UserProfile) (Enrichment, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	themeTags := flattenBundle(movieThemes)
	profileSummary := summarizeProfile(profile)

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Query (primary): %s\n", rawQuery)
	if len(themeTags) > 0 {
		fmt.Fprintf(&prompt, "Movie themes (enhancement only): %s\n", strings.Join(themeTags, ", "))
	}
	if profileSummary != "" {
		fmt.Fprintf(&prompt, "Reader profile (secondary, do not override the query): %s\n", profileSummary)
	}

	response, err := e.generator.Complete(ctx, llm.Request{
		SystemPrompt: enrichSystemPrompt,
		UserPrompt:   prompt.String(),
		MaxTokens:    enrichMaxTokens,
	})
	if err != nil {
		return Enrichment{}, services.Wrap(services.ErrUpstream, "enrichment", "complete", "query enrichment call failed", err)
	}

	enriched := strings.TrimSpace(response)
	if enriched == "" {
		enriched = rawQuery
	}
	e.logger.Debug("query enriched", logging.Int("theme_tags", len(themeTags)))

	return Enrichment{
		EnrichedQuery:  enriched,
		ProfileSummary: profileSummary,
		MovieThemes:    themeTags,
	}, nil
}

func flattenBundle(bundle themes.Bundle) []string {
	tags := make([]string, 0, len(bundle.Themes)+len(bundle.Tropes)+len(bundle.Mood))
	tags = append(tags, bundle.Themes...)
	tags = append(tags, bundle.Tropes...)
	tags = append(tags, bundle.Mood...)
	return tags
}

// summarizeProfile renders the profile as one compact line, or "" for an
// empty profile.
func summarizeProfile(profile catalog.UserProfile) string {
	var parts []string
	if len(profile.FavoriteGenres) > 0 {
		parts = append(parts, "favorite genres: "+strings.Join(profile.FavoriteGenres, ", "))
	}
	if len(profile.FavoriteTropes) > 0 {
		parts = append(parts, "enjoys: "+strings.Join(profile.FavoriteTropes, ", "))
	}
	if len(profile.DislikedTropes) > 0 {
		parts = append(parts, "avoids: "+strings.Join(profile.DislikedTropes, ", "))
	}
	if len(profile.PreferredMood) > 0 {
		parts = append(parts, "preferred mood: "+strings.Join(profile.PreferredMood, ", "))
	}
	return strings.Join(parts, "; ")
}
