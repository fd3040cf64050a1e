// Package config loads runtime configuration for the taskpilot CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. A .env file in the working directory, then the process environment.
//  4. Command-line flags, which override earlier values.
//
// The merged result is validated before it is returned.
//
// # Environment
//
//	TASKPILOT_API_URL          backend base URL (NEXT_PUBLIC_API_URL is a fallback)
//	TASKPILOT_STATE_DIR        cookie jar and local storage directory
//	TASKPILOT_LOG_LEVEL        debug, info, warn or error
//	TASKPILOT_COOKIE_TTL       session cookie lifetime, e.g. 168h
//	TASKPILOT_MAX_TOKEN_AGE    oldest accepted login, 0 disables the check
//	TASKPILOT_REQUEST_TIMEOUT  per-request timeout
//	TASKPILOT_SEARCH_DEBOUNCE  search input debounce delay
//	TASKPILOT_PRODUCTION       mark cookies Secure (NODE_ENV=production also does)
//
// # JSON schema
//
// Durations use timex.Duration, so "7d", "30s" or integer nanoseconds work:
//
//	{
//	  "api_url": "https://tasks.example.com",
//	  "state_dir": "~/.taskpilot",
//	  "cookie_ttl": "7d",
//	  "request_timeout": "30s",
//	  "search_debounce": "300ms",
//	  "log_level": "info",
//	  "production": true
//	}
package config
