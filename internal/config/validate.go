package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateDiscovery(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/bookscout/config.toml"
		}
		return fmt.Errorf("llm.api_key is required. Set BOOKSCOUT_LLM_API_KEY env var or edit %s (create with 'bookscout config init')", defaultPath)
	}
	if c.LLM.BaseURL == "" {
		return errors.New("llm.base_url must be set")
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model must be set")
	}
	return nil
}

func (c *Config) validateTMDB() error {
	// TMDB is optional: without a key the theme resolver skips metadata
	// lookups and relies on the built-in title table.
	if c.TMDB.APIKey != "" && c.TMDB.BaseURL == "" {
		return errors.New("tmdb.base_url must be set when tmdb.api_key is configured")
	}
	return nil
}

func (c *Config) validateDiscovery() error {
	if c.Discovery.MatchLimit > 50 {
		return errors.New("discovery.match_limit must be 50 or less")
	}
	if c.Discovery.CategorizePoolSize > c.Discovery.MatchLimit {
		return errors.New("discovery.categorize_pool_size must not exceed discovery.match_limit")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "auto", "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be auto, console, or json (got %q)", c.Logging.Format)
	}
}
