package config

const (
	defaultDataDir            = "~/.local/share/scentlog"
	defaultLogDir             = "~/.local/share/scentlog/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultMatchThreshold     = 0.5
	defaultRatingTrailingOnly = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Import: Import{
			MatchThreshold:     defaultMatchThreshold,
			RatingTrailingOnly: defaultRatingTrailingOnly,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
