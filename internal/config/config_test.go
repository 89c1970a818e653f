package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[llm]
api_key = "test-key"
`)
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.LLM.Model != defaultLLMModel {
		t.Errorf("model default not applied: %q", cfg.LLM.Model)
	}
	if cfg.Discovery.ResultCacheCapacity != defaultResultCacheCapacity {
		t.Errorf("result cache capacity default not applied: %d", cfg.Discovery.ResultCacheCapacity)
	}
	if cfg.Discovery.ResultCacheTTL != defaultResultCacheTTL {
		t.Errorf("result cache ttl default not applied: %d", cfg.Discovery.ResultCacheTTL)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("BOOKSCOUT_LLM_API_KEY", "")
	path := writeConfig(t, "")
	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected missing llm.api_key error")
	}
	if !strings.Contains(err.Error(), "llm.api_key") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadEnvOverridesKey(t *testing.T) {
	t.Setenv("BOOKSCOUT_LLM_API_KEY", "env-key")
	path := writeConfig(t, "")
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Errorf("api key = %q, want env-key", cfg.LLM.APIKey)
	}
}

func TestLoadRejectsOversizedPool(t *testing.T) {
	path := writeConfig(t, `
[llm]
api_key = "k"

[discovery]
match_limit = 5
categorize_pool_size = 8
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected categorize_pool_size validation error")
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := writeConfig(t, `
[llm]
api_key = "k"

[logging]
format = "xml"
`)
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected logging.format validation error")
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := ExpandPath("~/x")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if got != filepath.Join(home, "x") {
		t.Errorf("ExpandPath = %q", got)
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected overwrite refusal")
	}
}
