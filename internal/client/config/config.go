package config

import "time"

// Config holds runtime settings for the casekeeper terminal client.
//
// Fields:
//   - ServerURL: base URL of the sync backend; empty disables sign-in.
//   - DBPath: SQLite file holding the local snapshot and preferences.
//   - SyncDelay: debounce window between the last edit and the cloud push.
//   - LogFile: file for diagnostic logs; empty discards them.
type Config struct {
	ServerURL string
	DBPath    string
	SyncDelay time.Duration
	LogFile   string
}

// LoadDefaults populates c with defaults suitable for a local install.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DBPath = "casekeeper.db"
	c.SyncDelay = time.Second
	c.LogFile = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	return load(argsFromOS())
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
