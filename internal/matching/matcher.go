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
)

const (
	defaultMatchTimeout = 15 * time.Second
	matchMaxTokens      = 2000
)

// Matcher issues the one large catalog-ranking call. It returns the raw
// response text; parsing is the Parser's job. Failures propagate so the
// orchestrator can switch to the keyword fallback.
type Matcher struct {
	generator llm.Generator
	logger    *slog.Logger
	timeout   time.Duration
}

func NewMatcher(generator llm.Generator, logger *slog.Logger, timeout time.Duration) *Matcher {
	if timeout <= 0 {
		timeout = defaultMatchTimeout
	}
	return &Matcher{
		generator: generator,
		logger:    logging.NewComponentLogger(logger, "matcher"),
		timeout:   timeout,
	}
}

const matchSystemPromptFormat = `You rank books from a catalog against a reader's search intent.

Rules:
- The reader's query is the primary source of truth.
- Profile data is secondary and must not override the query.
- Respond with exactly %d lines, best match first, each of the exact form:
[index]|score|reason1; reason2; reason3
where index is the catalog index, score is 0-100, and reasons are short phrases. No other text.`

// Match builds the ranking prompt over the full catalog and returns the raw
// model output.
func (m *Matcher) Match(ctx context.Context, enrichment Enrichment, books []catalog.BookRecord, limit int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Reader intent: %s\n", enrichment.EnrichedQuery)
	if len(enrichment.MovieThemes) > 0 {
		fmt.Fprintf(&prompt, "Theme hints (enhancement only): %s\n", strings.Join(enrichment.MovieThemes, ", "))
	}
	if enrichment.ProfileSummary != "" {
		fmt.Fprintf(&prompt, "Reader profile (secondary): %s\n", enrichment.ProfileSummary)
	}
	prompt.WriteString("\nCatalog:\n")
	for i, book := range books {
		prompt.WriteString(describeBook(i, book))
		prompt.WriteByte('\n')
	}

	response, err := m.generator.Complete(ctx, llm.Request{
		SystemPrompt: fmt.Sprintf(matchSystemPromptFormat, limit),
		UserPrompt:   prompt.String(),
		MaxTokens:    matchMaxTokens,
	})
	if err != nil {
		return "", services.Wrap(services.ErrUpstream, "matching", "complete", "candidate matching call failed", err)
	}

	m.logger.Debug("matching response received",
		logging.Int("catalog_size", len(books)),
		logging.Int("response_bytes", len(response)))
	return response, nil
}

// describeBook renders one catalog line: index, title, author, genres,
// tropes, themes, mood, synopsis, pages.
func describeBook(index int, book catalog.BookRecord) string {
	return fmt.Sprintf("%d|%s|%s|%s|%s|%s|%s|%s|%dp",
		index,
		book.Title,
		book.Author,
		strings.Join(book.Genres, ","),
		strings.Join(book.Tropes, ","),
		strings.Join(book.Themes, ","),
		strings.Join(book.Mood, ","),
		book.Synopsis,
		book.PageCount)
}
