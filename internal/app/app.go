package app

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vk/springgrid/internal/config"
	"github.com/vk/springgrid/internal/hcl"
	"github.com/vk/springgrid/internal/report"
	"github.com/vk/springgrid/internal/yamlconfig"
)

// maxConcurrentPuzzles bounds how many puzzles run at once; each puzzle
// already spreads its lines over a full worker pool.
const maxConcurrentPuzzles = 2

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	runID  string

	hclLoader  config.Loader
	yamlLoader config.Loader

	newPublisher func(config.Report) report.Publisher
}

// NewApp is the constructor for the main application. Answers are written to
// outW and logs to logW, each App with its own isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", runID)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:       outW,
		logger:     logger,
		config:     cfg,
		runID:      runID,
		hclLoader:  hcl.NewLoader(),
		yamlLoader: yamlconfig.NewLoader(),
		newPublisher: func(r config.Report) report.Publisher {
			return report.NewSocketIO(r)
		},
	}
}

// RunID returns the identifier attached to this run's logs and report.
func (a *App) RunID() string {
	return a.runID
}
