package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/casekeeper/internal/flagx"
	"github.com/dmitrijs2005/casekeeper/internal/timex"
)

// FileConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" apart from "empty".
type FileConfig struct {
	ServerURL *string         `json:"server_url" yaml:"server_url"`
	DBPath    *string         `json:"db_path" yaml:"db_path"`
	SyncDelay *timex.Duration `json:"sync_delay" yaml:"sync_delay"`
	LogFile   *string         `json:"log_file" yaml:"log_file"`
}

// parseFile overlays cfg with the file named by -c/-config. Read or decode
// errors panic.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.ServerURL != nil {
		cfg.ServerURL = *fc.ServerURL
	}
	if fc.DBPath != nil {
		cfg.DBPath = *fc.DBPath
	}
	if fc.SyncDelay != nil {
		cfg.SyncDelay = fc.SyncDelay.Duration
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
}
