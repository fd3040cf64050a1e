package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// envConfig mirrors the environment variables the CLI understands.
// NEXT_PUBLIC_API_URL is honoured so a frontend .env can be reused as is.
type envConfig struct {
	APIURL         string        `env:"TASKPILOT_API_URL"`
	LegacyAPIURL   string        `env:"NEXT_PUBLIC_API_URL"`
	StateDir       string        `env:"TASKPILOT_STATE_DIR"`
	LogLevel       string        `env:"TASKPILOT_LOG_LEVEL"`
	NodeEnv        string        `env:"NODE_ENV"`
	CookieTTL      time.Duration `env:"TASKPILOT_COOKIE_TTL"`
	MaxTokenAge    time.Duration `env:"TASKPILOT_MAX_TOKEN_AGE"`
	RequestTimeout time.Duration `env:"TASKPILOT_REQUEST_TIMEOUT"`
	SearchDebounce time.Duration `env:"TASKPILOT_SEARCH_DEBOUNCE"`
	Production     bool          `env:"TASKPILOT_PRODUCTION"`
}

// parseEnv overlays cfg with variables from the dotenv file (if it exists)
// and environ. Process variables win over the dotenv file.
func parseEnv(cfg *Config, environ []string, dotenvPath string) error {
	vars, err := readDotenv(dotenvPath)
	if err != nil {
		return err
	}
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}

	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Environment: vars}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	ec.apply(cfg, vars)
	return nil
}

func readDotenv(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return vars, nil
}

// apply copies the variables that are present. Presence is checked on vars
// because zero is a meaningful value for some of them.
func (ec *envConfig) apply(cfg *Config, vars map[string]string) {
	has := func(key string) bool {
		_, ok := vars[key]
		return ok
	}

	switch {
	case ec.APIURL != "":
		cfg.APIURL = ec.APIURL
	case ec.LegacyAPIURL != "":
		cfg.APIURL = ec.LegacyAPIURL
	}
	if ec.StateDir != "" {
		cfg.StateDir = ec.StateDir
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(ec.LogLevel)
	}
	if ec.NodeEnv == "production" {
		cfg.Production = true
	}
	if has("TASKPILOT_PRODUCTION") {
		cfg.Production = ec.Production
	}
	if has("TASKPILOT_COOKIE_TTL") {
		cfg.CookieTTL = ec.CookieTTL
	}
	if has("TASKPILOT_MAX_TOKEN_AGE") {
		cfg.MaxTokenAge = ec.MaxTokenAge
	}
	if has("TASKPILOT_REQUEST_TIMEOUT") {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if has("TASKPILOT_SEARCH_DEBOUNCE") {
		cfg.SearchDebounce = ec.SearchDebounce
	}
}
