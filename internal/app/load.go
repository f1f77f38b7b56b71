package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/springgrid/internal/config"
	"github.com/vk/springgrid/internal/ctxlog"
)

// loadModel turns the configured input into the list of puzzles to count.
// Manifests are read through the loader for their format; anything else is
// a single plain puzzle file counted with the configured folds.
func (a *App) loadModel(ctx context.Context) (*config.Model, bool, error) {
	logger := ctxlog.FromContext(ctx)
	path := a.config.InputPath

	model, isManifest, err := a.loadManifests(ctx, path)
	if err != nil {
		return nil, false, err
	}

	if !isManifest {
		name := "stdin"
		if path != "-" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		model = &config.Model{Puzzles: []*config.Puzzle{{
			Name:      name,
			InputPath: path,
			Folds:     a.config.Folds,
			Source:    path,
		}}}
		logger.Debug("Using plain puzzle input.", "path", path, "folds", a.config.Folds)
	}

	if a.config.ReportURL != "" {
		timeout := ""
		if a.config.ReportTimeout > 0 {
			timeout = a.config.ReportTimeout.String()
		}
		r, err := config.NewReport(a.config.ReportURL, "", a.config.ReportEvent, "", timeout)
		if err != nil {
			return nil, false, err
		}
		if model.Report != nil {
			logger.Warn("Report flags override the manifest report block.", "url", r.URL)
		}
		model.Report = r
	}

	return model, isManifest, nil
}

func (a *App) loadManifests(ctx context.Context, path string) (*config.Model, bool, error) {
	if path == "-" {
		return nil, false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load input: %w", err)
	}

	if info.IsDir() {
		model, err := a.hclLoader.Load(ctx, path)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load configuration: %w", err)
		}
		yamlModel, err := a.yamlLoader.Load(ctx, path)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := model.Merge(yamlModel); err != nil {
			return nil, false, fmt.Errorf("failed to load configuration: %w", err)
		}
		return model, true, nil
	}

	var loader config.Loader
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		loader = a.hclLoader
	case ".yaml", ".yml":
		loader = a.yamlLoader
	default:
		return nil, false, nil
	}

	model, err := loader.Load(ctx, path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load configuration: %w", err)
	}
	return model, true, nil
}
