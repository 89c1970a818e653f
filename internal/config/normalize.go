package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLLM()
	c.normalizeTMDB()
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	c.normalizeDiscovery()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.LockFile, err = expandPath(c.Paths.LockFile); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	return nil
}

func (c *Config) normalizeLLM() {
	if env := strings.TrimSpace(os.Getenv("BOOKSCOUT_LLM_API_KEY")); env != "" {
		c.LLM.APIKey = env
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.SummaryTimeoutSeconds <= 0 {
		c.LLM.SummaryTimeoutSeconds = defaultSummaryTimeout
	}
	if c.LLM.EnrichTimeoutSeconds <= 0 {
		c.LLM.EnrichTimeoutSeconds = defaultEnrichTimeout
	}
	if c.LLM.MatchTimeoutSeconds <= 0 {
		c.LLM.MatchTimeoutSeconds = defaultMatchTimeout
	}
	if c.LLM.CategorizeTimeoutSeconds <= 0 {
		c.LLM.CategorizeTimeoutSeconds = defaultCategorizeTimeout
	}
}

func (c *Config) normalizeTMDB() {
	if env := strings.TrimSpace(os.Getenv("TMDB_API_KEY")); env != "" {
		c.TMDB.APIKey = env
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
}

func (c *Config) normalizeCatalog() error {
	var err error
	if c.Catalog.DBPath, err = expandPath(c.Catalog.DBPath); err != nil {
		return fmt.Errorf("catalog.db_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeDiscovery() {
	if c.Discovery.MatchLimit <= 0 {
		c.Discovery.MatchLimit = defaultMatchLimit
	}
	if c.Discovery.CategorizePoolSize <= 0 {
		c.Discovery.CategorizePoolSize = defaultCategorizePoolSize
	}
	if c.Discovery.ResultCacheTTL <= 0 {
		c.Discovery.ResultCacheTTL = defaultResultCacheTTL
	}
	if c.Discovery.ResultCacheCapacity <= 0 {
		c.Discovery.ResultCacheCapacity = defaultResultCacheCapacity
	}
	if c.Discovery.ThemeCacheTTLHours <= 0 {
		c.Discovery.ThemeCacheTTLHours = defaultThemeCacheTTLHours
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
