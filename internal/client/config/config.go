package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/imramugh/ai-task-manager/internal/common"
	"github.com/imramugh/ai-task-manager/internal/filex"
)

const (
	DefaultAPIURL         = common.DefaultAPIURL
	DefaultStateDir       = "~/.taskpilot"
	DefaultCookieTTL      = 7 * 24 * time.Hour
	DefaultMaxTokenAge    = 30 * 24 * time.Hour
	DefaultRequestTimeout = time.Duration(0)
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultLogLevel       = "warn"

	dotenvFile = ".env"
)

// Config holds runtime settings for the taskpilot CLI.
//
// Units: all durations are time.Duration values.
type Config struct {
	APIURL         string        `validate:"required,url"`
	StateDir       string        `validate:"required"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
	CookieTTL      time.Duration `validate:"gt=0"`
	MaxTokenAge    time.Duration `validate:"gte=0"`
	RequestTimeout time.Duration `validate:"gte=0"`
	SearchDebounce time.Duration `validate:"gte=0"`
	Production     bool
	Ephemeral      bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = DefaultAPIURL
	c.StateDir = DefaultStateDir
	c.LogLevel = DefaultLogLevel
	c.CookieTTL = DefaultCookieTTL
	c.MaxTokenAge = DefaultMaxTokenAge
	c.RequestTimeout = DefaultRequestTimeout
	c.SearchDebounce = DefaultSearchDebounce
	c.Production = false
	c.Ephemeral = false
}

// DatabasePath is the SQLite file backing local storage.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.StateDir, "state.db")
}

// CookieJarPath is the file backing the cookie session backend.
func (c *Config) CookieJarPath() string {
	return filepath.Join(c.StateDir, "cookies.txt")
}

// LoadConfig constructs a Config from defaults, then overlays the JSON file,
// the .env file, the process environment and finally args. Later sources take
// precedence over earlier ones. The result is validated.
func LoadConfig(args []string) (*Config, error) {
	return load(args, os.Environ(), dotenvFile)
}

func load(args, environ []string, dotenvPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, environ, dotenvPath); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	dir, err := filex.ExpandHome(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("state dir: %w", err)
	}
	cfg.StateDir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
