package discovery

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bookscout/internal/catalog"
	"bookscout/internal/categorize"
	"bookscout/internal/config"
	"bookscout/internal/logging"
	"bookscout/internal/matching"
	"bookscout/internal/query"
	"bookscout/internal/resultcache"
	"bookscout/internal/services"
	"bookscout/internal/services/llm"
	"bookscout/internal/services/tmdb"
	"bookscout/internal/themes"
)

// MessageNoMatches is returned with all-empty buckets when neither the
// generative path nor the keyword fallback produced a candidate.
const MessageNoMatches = "No books found matching your search"

// MessageNoUnreadBooks is returned when the catalog has nothing left to
// recommend.
const MessageNoUnreadBooks = "No unread books in your catalog"

// SearchResult is the categorized response for one query.
type SearchResult struct {
	Success    bool              `json:"success"`
	Query      string            `json:"query"`
	Atmosphere categorize.Bucket `json:"atmosphere"`
	Characters categorize.Bucket `json:"characters"`
	Plot       categorize.Bucket `json:"plot"`
	Cached     bool              `json:"cached,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// Engine owns the full pipeline and its two caches. One Engine serves all
// requests; per-request state lives on the stack.
type Engine struct {
	provider    catalog.Provider
	resolver    *themes.Resolver
	enricher    *matching.Enricher
	matcher     *matching.Matcher
	categorizer *categorize.Categorizer
	cache       *resultcache.Cache[SearchResult]
	logger      *slog.Logger
	matchLimit  int
	poolSize    int
}

// NewEngine wires the pipeline stages from configuration. metadata may be
// nil when no movie metadata service is configured.
func NewEngine(cfg *config.Config, generator llm.Generator, metadata tmdb.Searcher, provider catalog.Provider, logger *slog.Logger) *Engine {
	themeCache := themes.NewCache(time.Duration(cfg.Discovery.ThemeCacheTTLHours) * time.Hour)
	summaryTimeout := time.Duration(cfg.LLM.SummaryTimeoutSeconds) * time.Second

	return &Engine{
		provider:    provider,
		resolver:    themes.NewResolver(generator, metadata, themeCache, logger, summaryTimeout),
		enricher:    matching.NewEnricher(generator, logger, time.Duration(cfg.LLM.EnrichTimeoutSeconds)*time.Second),
		matcher:     matching.NewMatcher(generator, logger, time.Duration(cfg.LLM.MatchTimeoutSeconds)*time.Second),
		categorizer: categorize.NewCategorizer(generator, logger, time.Duration(cfg.LLM.CategorizeTimeoutSeconds)*time.Second),
		cache:       resultcache.New[SearchResult](time.Duration(cfg.Discovery.ResultCacheTTL)*time.Minute, cfg.Discovery.ResultCacheCapacity),
		logger:      logging.NewComponentLogger(logger, "discovery"),
		matchLimit:  cfg.Discovery.MatchLimit,
		poolSize:    cfg.Discovery.CategorizePoolSize,
	}
}

// Search runs the whole pipeline for one query. The only error it returns is
// a validation failure; every later failure is recovered by a fallback stage
// and the result reports what happened via Success and Message.
func (e *Engine) Search(ctx context.Context, rawQuery, userID string) (SearchResult, error) {
	requestID := uuid.NewString()
	logger := e.logger.With(logging.String(logging.FieldRequestID, requestID))

	normalized, err := query.Normalize(rawQuery)
	if err != nil {
		return SearchResult{}, err
	}

	cacheKey := resultcache.Key(userID, normalized)
	if cached, hit := e.cache.Get(cacheKey); hit {
		cached.Cached = true
		logger.Info("served from result cache", logging.String(logging.FieldQuery, normalized))
		return cached, nil
	}

	logger.Info("discovery started",
		logging.String(logging.FieldQuery, normalized),
		logging.String(logging.FieldUserID, userID))

	books, err := e.provider.UnreadBooks(ctx, userID)
	if err != nil {
		return SearchResult{}, services.Wrap(services.ErrUpstream, "discovery", "catalog", "loading unread books failed", err)
	}
	if len(books) == 0 {
		return SearchResult{Success: true, Query: normalized, Message: MessageNoUnreadBooks}, nil
	}

	profile, err := e.provider.Profile(ctx, userID)
	if err != nil && !errors.Is(err, services.ErrNotFound) {
		logger.Warn("profile lookup failed, continuing without profile", logging.Error(err))
	}

	movieRefs := query.ExtractMovieRefs(rawQuery)
	bundle := e.resolver.ResolveAll(ctx, movieRefs)
	if len(movieRefs) > 0 {
		logger.Debug("movie references resolved", logging.Int("titles", len(movieRefs)))
	}

	candidates := e.matchCandidates(ctx, logger, rawQuery, normalized, bundle, profile, books)
	if len(candidates) == 0 {
		result := SearchResult{Success: true, Query: normalized, Message: MessageNoMatches}
		e.cache.Set(cacheKey, result)
		return result, nil
	}

	pool := candidates
	if e.poolSize > 0 && len(pool) > e.poolSize {
		pool = pool[:e.poolSize]
	}

	buckets, err := e.categorizer.Categorize(ctx, normalized, pool, books)
	if err != nil {
		logger.Warn("categorization failed, using round-robin fallback",
			logging.Bool(logging.FieldFallback, true),
			logging.Error(err))
		buckets = categorize.Fallback(pool, books)
	}

	result := SearchResult{
		Success:    true,
		Query:      normalized,
		Atmosphere: buckets.Atmosphere,
		Characters: buckets.Characters,
		Plot:       buckets.Plot,
	}
	e.cache.Set(cacheKey, result)
	logger.Info("discovery finished",
		logging.Int("candidates", len(candidates)),
		logging.Int("categorized", buckets.TotalBooks()))
	return result, nil
}

// matchCandidates runs the generative enrich/match/parse path and switches
// to the keyword matcher when that path errors or yields nothing usable.
func (e *Engine) matchCandidates(ctx context.Context, logger *slog.Logger, rawQuery, normalized string, bundle themes.Bundle, profile catalog.UserProfile, books []catalog.BookRecord) []matching.Candidate {
	candidates, err := e.generativeCandidates(ctx, rawQuery, bundle, profile, books)
	if err == nil && len(candidates) > 0 {
		return candidates
	}
	if err != nil {
		logger.Warn("matching stage failed, using keyword fallback",
			logging.Bool(logging.FieldFallback, true),
			logging.Error(err))
	} else {
		logger.Warn("matching response yielded no candidates, using keyword fallback",
			logging.Bool(logging.FieldFallback, true))
	}
	return matching.MatchKeywords(normalized, books, e.matchLimit)
}

func (e *Engine) generativeCandidates(ctx context.Context, rawQuery string, bundle themes.Bundle, profile catalog.UserProfile, books []catalog.BookRecord) ([]matching.Candidate, error) {
	enrichment, err := e.enricher.Enrich(ctx, rawQuery, bundle, profile)
	if err != nil {
		return nil, err
	}
	response, err := e.matcher.Match(ctx, enrichment, books, e.matchLimit)
	if err != nil {
		return nil, err
	}
	return matching.ParseCandidates(response, len(books), e.matchLimit), nil
}
