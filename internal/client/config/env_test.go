package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Run("legacy frontend variable", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseEnv(cfg, []string{"NEXT_PUBLIC_API_URL=http://api:8000"}, ""))
		assert.Equal(t, "http://api:8000", cfg.APIURL)
	})

	t.Run("own variable wins over legacy", func(t *testing.T) {
		cfg := &Config{}
		env := []string{"NEXT_PUBLIC_API_URL=http://legacy", "TASKPILOT_API_URL=http://own"}
		require.NoError(t, parseEnv(cfg, env, ""))
		assert.Equal(t, "http://own", cfg.APIURL)
	})

	t.Run("durations and production", func(t *testing.T) {
		cfg := &Config{}
		env := []string{
			"TASKPILOT_SEARCH_DEBOUNCE=150ms",
			"TASKPILOT_MAX_TOKEN_AGE=0s",
			"NODE_ENV=production",
		}
		cfg.MaxTokenAge = time.Hour
		require.NoError(t, parseEnv(cfg, env, ""))
		assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce)
		assert.Zero(t, cfg.MaxTokenAge)
		assert.True(t, cfg.Production)
	})

	t.Run("explicit production flag overrides NODE_ENV", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseEnv(cfg, []string{"NODE_ENV=production", "TASKPILOT_PRODUCTION=false"}, ""))
		assert.False(t, cfg.Production)
	})

	t.Run("malformed duration", func(t *testing.T) {
		err := parseEnv(&Config{}, []string{"TASKPILOT_REQUEST_TIMEOUT=forever"}, "")
		require.Error(t, err)
	})

	t.Run("missing dotenv is fine", func(t *testing.T) {
		cfg := &Config{APIURL: "keep"}
		require.NoError(t, parseEnv(cfg, nil, filepath.Join(t.TempDir(), ".env")))
		assert.Equal(t, "keep", cfg.APIURL)
	})

	t.Run("dotenv values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("TASKPILOT_STATE_DIR=/tmp/tp\n"), 0o600))
		cfg := &Config{}
		require.NoError(t, parseEnv(cfg, nil, path))
		assert.Equal(t, "/tmp/tp", cfg.StateDir)
	})
}

func Test_parseFlags(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	args := []string{"tasks", "add", "Buy milk", "-a", "http://flag:1", "--production", "--ephemeral", "-p", "high"}
	require.NoError(t, parseFlags(cfg, args))

	assert.Equal(t, "http://flag:1", cfg.APIURL)
	assert.True(t, cfg.Production)
	assert.True(t, cfg.Ephemeral)
}
