package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bookscout/internal/catalog"
	"bookscout/internal/config"
	"bookscout/internal/discovery"
	"bookscout/internal/services/llm"
	"bookscout/internal/services/tmdb"
)

// buildEngine wires the shared pipeline dependencies. The caller owns the
// returned store and must close it.
func buildEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*discovery.Engine, *catalog.Store, *llm.Client, error) {
	generator := llm.NewClient(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	})

	var metadata tmdb.Searcher
	if strings.TrimSpace(cfg.TMDB.APIKey) != "" {
		client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init metadata client: %w", err)
		}
		metadata = client
	}

	store, err := catalog.NewStore(ctx, cfg.Catalog.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open catalog store: %w", err)
	}

	engine := discovery.NewEngine(cfg, generator, metadata, store, logger)
	return engine, store, generator, nil
}
