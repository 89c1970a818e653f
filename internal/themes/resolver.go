package themes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"bookscout/internal/logging"
	"bookscout/internal/query"
	"bookscout/internal/services/llm"
	"bookscout/internal/services/tmdb"
)

const defaultSummaryTimeout = 8 * time.Second

// Resolver turns movie references into tag bundles via metadata lookup plus
// one summarization call per title, with a long-TTL cache in front.
type Resolver struct {
	generator      llm.Generator
	metadata       tmdb.Searcher
	cache          *Cache
	logger         *slog.Logger
	summaryTimeout time.Duration
}

// NewResolver constructs a Resolver. metadata may be nil, in which case only
// the cache and the built-in title table are consulted.
func NewResolver(generator llm.Generator, metadata tmdb.Searcher, cache *Cache, logger *slog.Logger, summaryTimeout time.Duration) *Resolver {
	if cache == nil {
		cache = NewCache(DefaultTTL)
	}
	if summaryTimeout <= 0 {
		summaryTimeout = defaultSummaryTimeout
	}
	return &Resolver{
		generator:      generator,
		metadata:       metadata,
		cache:          cache,
		logger:         logging.NewComponentLogger(logger, "themes"),
		summaryTimeout: summaryTimeout,
	}
}

// ResolveAll resolves every title concurrently and returns the merged bundle.
// Resolution never fails: a title that cannot be resolved contributes an
// empty bundle.
func (r *Resolver) ResolveAll(ctx context.Context, titles []string) Bundle {
	if len(titles) == 0 {
		return Bundle{}
	}

	bundles := make([]Bundle, len(titles))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, title := range titles {
		i, title := i, title
		group.Go(func() error {
			bundles[i] = r.Resolve(groupCtx, title)
			return nil
		})
	}
	// Workers never return errors; Wait is just the join point.
	_ = group.Wait()
	return Merge(bundles)
}

// Resolve resolves one title, consulting the cache first and caching whatever
// bundle is produced, including the all-empty case.
func (r *Resolver) Resolve(ctx context.Context, title string) Bundle {
	if bundle, hit := r.cache.Get(title); hit {
		return bundle
	}

	bundle := r.resolveUncached(ctx, title)
	r.cache.Put(title, bundle)
	return bundle
}

func (r *Resolver) resolveUncached(ctx context.Context, title string) Bundle {
	movie, err := r.lookup(ctx, title)
	if err != nil {
		if !errors.Is(err, tmdb.ErrNotFound) {
			r.logger.Warn("metadata lookup failed",
				logging.String("title", query.DisplayTitle(title)),
				logging.Error(err))
		}
		if bundle, known := KnownBundle(title); known {
			return bundle
		}
		return Bundle{}
	}

	bundle := r.summarize(ctx, movie)
	if bundle.IsEmpty() && len(movie.Genres) > 0 {
		bundle.Themes = lowercaseAll(movie.Genres)
	}
	return bundle
}

func (r *Resolver) lookup(ctx context.Context, title string) (*tmdb.Movie, error) {
	if r.metadata == nil {
		return nil, tmdb.ErrNotFound
	}
	return r.metadata.LookupMovie(ctx, title)
}

// summarize issues the tag summarization call and parses the three labeled
// lists. Any failure yields an empty bundle for the caller's genre fallback.
func (r *Resolver) summarize(ctx context.Context, movie *tmdb.Movie) Bundle {
	ctx, cancel := context.WithTimeout(ctx, r.summaryTimeout)
	defer cancel()

	prompt := fmt.Sprintf("Title: %s\nOverview: %s\nGenres: %s",
		movie.Title, movie.Overview, strings.Join(movie.Genres, ", "))

	response, err := r.generator.Complete(ctx, llm.Request{
		SystemPrompt: summaryPrompt,
		UserPrompt:   prompt,
		MaxTokens:    150,
	})
	if err != nil {
		r.logger.Warn("tag summarization failed",
			logging.String("title", movie.Title),
			logging.Error(err))
		return Bundle{}
	}

	return Bundle{
		Themes: captureLabeledList(response, "themes"),
		Tropes: captureLabeledList(response, "tropes"),
		Mood:   captureLabeledList(response, "mood"),
	}
}

var labeledListPatterns = map[string]*regexp.Regexp{
	"themes": regexp.MustCompile(`(?im)^\s*themes?\s*:\s*(.+)$`),
	"tropes": regexp.MustCompile(`(?im)^\s*tropes?\s*:\s*(.+)$`),
	"mood":   regexp.MustCompile(`(?im)^\s*moods?\s*:\s*(.+)$`),
}

// captureLabeledList extracts one labeled comma-separated list from free
// text. Each label is independent: a missing or mangled label yields nil
// without affecting the others.
func captureLabeledList(text, label string) []string {
	pattern, ok := labeledListPatterns[label]
	if !ok {
		return nil
	}
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	var tags []string
	for _, piece := range strings.Split(match[1], ",") {
		piece = strings.ToLower(strings.TrimSpace(piece))
		if piece == "" || piece == "none" {
			continue
		}
		tags = append(tags, piece)
	}
	return tags
}

func lowercaseAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(value)))
	}
	return out
}
