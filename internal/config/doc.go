// Package config loads, normalizes, and validates bookscout configuration.
//
// Configuration is TOML. Load resolves the file path (explicit flag, then
// ~/.config/bookscout/config.toml, then ./bookscout.toml), applies defaults
// for anything unset, expands ~ in path fields, and validates the result.
package config
