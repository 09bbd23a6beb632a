package config

const (
	defaultConfigPath = "~/.config/pgnlens/config.toml"
	defaultInputDir   = "chess_games"
	defaultOutputFile = "chess_analytics.csv"
	defaultLogDir     = "~/.local/share/pgnlens/logs"
	defaultDatabase   = "~/.local/share/pgnlens/history.db"
	defaultLossBucket = "loss"
	defaultExtension  = ".pgn"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"

	// usernameEnv supplies player.username when the file leaves it empty.
	usernameEnv = "PGNLENS_USERNAME"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir:   defaultInputDir,
			OutputFile: defaultOutputFile,
			LogDir:     defaultLogDir,
			Database:   defaultDatabase,
		},
		Analysis: Analysis{
			LossBucket: defaultLossBucket,
			Extensions: []string{defaultExtension},
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
