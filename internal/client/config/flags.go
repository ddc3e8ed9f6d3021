package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/casekeeper/internal/flagx"
)

func argsFromOS() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}

// parseFlags populates Config fields from command-line flags.
//
// Only -s, -d, -w and -l are considered; other arguments are filtered out
// with flagx.FilterArgs. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-s", "-d", "-w", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "sync server base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	fs.DurationVar(&cfg.SyncDelay, "w", cfg.SyncDelay, "sync debounce window")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
