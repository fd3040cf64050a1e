package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/imramugh/ai-task-manager/internal/flagx"
	"github.com/imramugh/ai-task-manager/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from zero so a partial file only overrides what it names.
type JsonConfig struct {
	APIURL         *string         `json:"api_url"`
	StateDir       *string         `json:"state_dir"`
	LogLevel       *string         `json:"log_level"`
	CookieTTL      *timex.Duration `json:"cookie_ttl"`
	MaxTokenAge    *timex.Duration `json:"max_token_age"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SearchDebounce *timex.Duration `json:"search_debounce"`
	Production     *bool           `json:"production"`
}

// parseJson overlays cfg with the file named by -c / -config in args.
// No flag means nothing to load.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.APIURL != nil {
		cfg.APIURL = *jc.APIURL
	}
	if jc.StateDir != nil {
		cfg.StateDir = *jc.StateDir
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.CookieTTL != nil {
		cfg.CookieTTL = jc.CookieTTL.Duration
	}
	if jc.MaxTokenAge != nil {
		cfg.MaxTokenAge = jc.MaxTokenAge.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SearchDebounce != nil {
		cfg.SearchDebounce = jc.SearchDebounce.Duration
	}
	if jc.Production != nil {
		cfg.Production = *jc.Production
	}
}
