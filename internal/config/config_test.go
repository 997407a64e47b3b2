package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("COPYCK_DB", "")
	t.Setenv("COPYCK_LOG_LEVEL", "")
	t.Setenv("COPYCK_TIMEOUT", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Name != "copyck" {
		t.Errorf("expected Name=copyck, got %s", cfg.Name)
	}
	if cfg.Trait != "Copy" {
		t.Errorf("expected Trait=Copy, got %s", cfg.Trait)
	}
	if cfg.Solver.MaxGoals != 10000 {
		t.Errorf("expected MaxGoals=10000, got %d", cfg.Solver.MaxGoals)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "copyck.yaml")

	cfg := DefaultConfig()
	cfg.Database = "types.yaml"
	cfg.Solver.MaxGoals = 12
	cfg.Logging.Categories = map[string]bool{"cache": false}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Database != "types.yaml" {
		t.Errorf("expected Database=types.yaml, got %s", loaded.Database)
	}
	if loaded.Solver.MaxGoals != 12 {
		t.Errorf("expected MaxGoals=12, got %d", loaded.Solver.MaxGoals)
	}
	if loaded.Logging.IsCategoryEnabled("cache") {
		t.Error("expected cache category disabled")
	}
	if !loaded.Logging.IsCategoryEnabled("solver") {
		t.Error("expected unlisted category enabled")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Trait != "Copy" {
		t.Errorf("expected defaults, got Trait=%s", cfg.Trait)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "copyck.yaml")
	if err := os.WriteFile(path, []byte("solver:\n  max_goals: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Solver.MaxGoals != 5 {
		t.Errorf("expected MaxGoals=5, got %d", cfg.Solver.MaxGoals)
	}
	if cfg.Solver.FactLimit != 100000 {
		t.Errorf("expected default FactLimit, got %d", cfg.Solver.FactLimit)
	}
	if cfg.Cache.Size != 4096 {
		t.Errorf("expected default cache size, got %d", cfg.Cache.Size)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("solver: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver.Timeout = "250ms"
	if got := cfg.GetTimeout(); got != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", got)
	}

	cfg.Solver.Timeout = "soon"
	if got := cfg.GetTimeout(); got != 30*time.Second {
		t.Errorf("expected fallback 30s, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty trait", func(c *Config) { c.Trait = "" }},
		{"zero fact limit", func(c *Config) { c.Solver.FactLimit = 0 }},
		{"negative goals", func(c *Config) { c.Solver.MaxGoals = -1 }},
		{"bad timeout", func(c *Config) { c.Solver.Timeout = "later" }},
		{"negative timeout", func(c *Config) { c.Solver.Timeout = "-1s" }},
		{"negative cache", func(c *Config) { c.Cache.Size = -1 }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
