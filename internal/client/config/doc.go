// Package config loads runtime configuration for the casekeeper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string     base URL of the sync server
//	-d string     path of the local SQLite database
//	-w duration   sync debounce window (e.g. "1s", "500ms")
//	-l string     log file; empty disables logging
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "1s" or integer
// nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "db_path": "casekeeper.db",
//	  "sync_delay": "1s",
//	  "log_file": "casekeeper.log"
//	}
//
// Fields missing from the file keep their default values.
package config
