package config

const (
	defaultDataDir              = "~/.local/share/reelsync"
	defaultLogDir               = "~/.local/share/reelsync/logs"
	defaultTMDBBaseURL          = "https://api.themoviedb.org/3"
	defaultTMDBLanguage         = "en-US"
	defaultAutoApproveThreshold = 150
	defaultLookupDelayMS        = 500
	defaultLookupTimeoutSeconds = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns the baseline configuration before any file overrides.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:  defaultTMDBBaseURL,
			Language: defaultTMDBLanguage,
		},
		Matching: Matching{
			AutoApproveThreshold: defaultAutoApproveThreshold,
		},
		Import: Import{
			LookupDelayMS:        defaultLookupDelayMS,
			LookupTimeoutSeconds: defaultLookupTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
