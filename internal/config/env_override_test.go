package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("COPYCK_DB sets database path", func(t *testing.T) {
		t.Setenv("COPYCK_DB", "/tmp/types.yaml")

		cfg := &Config{Database: "file.yaml"}
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/types.yaml", cfg.Database)
	})

	t.Run("COPYCK_LOG_LEVEL sets level", func(t *testing.T) {
		t.Setenv("COPYCK_LOG_LEVEL", "debug")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("COPYCK_TIMEOUT sets solver timeout", func(t *testing.T) {
		t.Setenv("COPYCK_TIMEOUT", "2s")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 2*time.Second, cfg.GetTimeout())
	})

	t.Run("empty variables leave values alone", func(t *testing.T) {
		clearEnv(t)

		cfg := DefaultConfig()
		cfg.Database = "kept.yaml"
		cfg.applyEnvOverrides()

		assert.Equal(t, "kept.yaml", cfg.Database)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "30s", cfg.Solver.Timeout)
	})
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("COPYCK_DB", "from-env.yaml")

	path := filepath.Join(t.TempDir(), "copyck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: from-file.yaml\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.yaml", cfg.Database)

	missing, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env.yaml", missing.Database)
}
