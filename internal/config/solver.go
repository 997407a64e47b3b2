package config

import (
	"fmt"
	"time"
)

// SolverConfig bounds goal expansion and Mangle evaluation.
type SolverConfig struct {
	FactLimit int    `yaml:"fact_limit"`
	MaxGoals  int    `yaml:"max_goals"`
	Timeout   string `yaml:"timeout"`
}

func (s SolverConfig) validate() error {
	if s.FactLimit < 1 {
		return fmt.Errorf("solver.fact_limit must be >= 1")
	}
	if s.MaxGoals < 1 {
		return fmt.Errorf("solver.max_goals must be >= 1")
	}
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return fmt.Errorf("solver.timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("solver.timeout must be positive, got %s", s.Timeout)
		}
	}
	return nil
}

// CacheConfig sizes the clause cache. Zero disables caching.
type CacheConfig struct {
	Size int `yaml:"size"`
}
