package config

const (
	defaultDataDir  = "~/.local/share/bookscout"
	defaultLogDir   = "~/.local/share/bookscout/logs"
	defaultLockFile = "~/.local/share/bookscout/bookscout.lock"
	defaultAPIBind  = "127.0.0.1:7490"

	defaultLLMBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel          = "google/gemini-3-flash-preview"
	defaultSummaryTimeout    = 8
	defaultEnrichTimeout     = 8
	defaultMatchTimeout      = 15
	defaultCategorizeTimeout = 10

	defaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	defaultTMDBLanguage = "en-US"

	defaultCatalogDBPath = "~/.local/share/bookscout/catalog.db"

	defaultMatchLimit          = 10
	defaultCategorizePoolSize  = 8
	defaultResultCacheTTL      = 5
	defaultResultCacheCapacity = 100
	defaultThemeCacheTTLHours  = 24

	defaultLogFormat = "auto"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
			LockFile: defaultLockFile,
			APIBind:  defaultAPIBind,
		},
		LLM: LLM{
			BaseURL:                  defaultLLMBaseURL,
			Model:                    defaultLLMModel,
			SummaryTimeoutSeconds:    defaultSummaryTimeout,
			EnrichTimeoutSeconds:     defaultEnrichTimeout,
			MatchTimeoutSeconds:      defaultMatchTimeout,
			CategorizeTimeoutSeconds: defaultCategorizeTimeout,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Catalog: Catalog{
			DBPath: defaultCatalogDBPath,
		},
		Discovery: Discovery{
			MatchLimit:          defaultMatchLimit,
			CategorizePoolSize:  defaultCategorizePoolSize,
			ResultCacheTTL:      defaultResultCacheTTL,
			ResultCacheCapacity: defaultResultCacheCapacity,
			ThemeCacheTTLHours:  defaultThemeCacheTTLHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
