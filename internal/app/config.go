package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// InputPath is a puzzle text file ("-" for stdin), a manifest file
	// (.hcl, .yaml, .yml), or a directory of manifests.
	InputPath string

	// Folds applies to plain puzzle files only; manifests carry their own.
	Folds int

	LogFormat   string
	LogLevel    string
	WorkerCount int

	ReportURL     string
	ReportEvent   string
	ReportTimeout time.Duration
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.Folds < 1 {
		return nil, fmt.Errorf("folds must be at least 1, got %d", cfg.Folds)
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("worker count must not be negative, got %d", cfg.WorkerCount)
	}
	if cfg.ReportTimeout < 0 {
		return nil, fmt.Errorf("report timeout must not be negative, got %s", cfg.ReportTimeout)
	}
	return &cfg, nil
}
