// Package yamlconfig provides a YAML implementation of the config.Loader
// interface for manifests written as .yaml or .yml files. It accepts the
// same puzzles and report settings as the HCL format.
package yamlconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/springgrid/internal/config"
	"github.com/vk/springgrid/internal/ctxlog"
	"github.com/vk/springgrid/internal/fsutil"
	"gopkg.in/yaml.v3"
)

type fileRoot struct {
	Puzzles []puzzleDoc `yaml:"puzzles"`
	Report  *reportDoc  `yaml:"report"`
}

type puzzleDoc struct {
	Name    string   `yaml:"name"`
	Input   string   `yaml:"input"`
	Records []string `yaml:"records"`
	Unfold  bool     `yaml:"unfold"`
	Folds   int      `yaml:"folds"`
	Expect  *uint64  `yaml:"expect"`
}

type reportDoc struct {
	URL       string `yaml:"url"`
	Namespace string `yaml:"namespace"`
	Event     string `yaml:"event"`
	AckEvent  string `yaml:"ack_event"`
	Timeout   string `yaml:"timeout"`
}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every YAML manifest at the given paths and merges them.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".yaml", ".yml")
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		fileModel, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, err
		}
	}

	logger.Debug("YAML loading complete.", "puzzles", len(model.Puzzles), "report", model.Report != nil)
	return model, nil
}

func loadFile(file string) (*config.Model, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
	}

	dir, err := filepath.Abs(filepath.Dir(file))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory of %s: %w", file, err)
	}

	model := &config.Model{}
	for _, pd := range root.Puzzles {
		input := pd.Input
		if input != "" && input != "-" && !filepath.IsAbs(input) {
			input = filepath.Join(dir, input)
		}
		p, err := config.NewPuzzle(pd.Name, file, input, pd.Records, pd.Unfold, pd.Folds, pd.Expect)
		if err != nil {
			return nil, err
		}
		model.Puzzles = append(model.Puzzles, p)
	}

	if rd := root.Report; rd != nil {
		r, err := config.NewReport(rd.URL, rd.Namespace, rd.Event, rd.AckEvent, rd.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		model.Report = r
	}
	return model, nil
}
