package config

import (
	"flag"
	"io"

	"github.com/imramugh/ai-task-manager/internal/flagx"
)

var flagSpec = flagx.Spec{
	Valued: []string{"-a", "-api-url", "-s", "-state-dir", "-log-level", "-timeout"},
	Bools:  []string{"-production", "-ephemeral"},
}

// parseFlags populates selected Config fields from command-line flags.
//
//	-a, -api-url string     backend base URL
//	-s, -state-dir string   directory for the cookie jar and local storage
//	-log-level string       debug, info, warn or error
//	-timeout duration       per-request timeout, 0 for none
//	-production             mark session cookies Secure
//	-ephemeral              keep the session in memory only
//
// Only these flags are considered; cobra handles everything else.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.Filter(args, flagSpec)

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "backend base URL")
	fs.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "backend base URL")
	fs.StringVar(&cfg.StateDir, "s", cfg.StateDir, "state directory")
	fs.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "state directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout, 0 for none")
	fs.BoolVar(&cfg.Production, "production", cfg.Production, "secure cookies")
	fs.BoolVar(&cfg.Ephemeral, "ephemeral", cfg.Ephemeral, "in-memory session")

	return fs.Parse(filtered)
}
