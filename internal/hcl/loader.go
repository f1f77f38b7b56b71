package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/springgrid/internal/config"
	"github.com/vk/springgrid/internal/ctxlog"
	"github.com/vk/springgrid/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL manifest loader that reads the process
// environment for the `env` variable.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// Load parses every HCL manifest at the given paths and merges them into a
// single model. Directories are searched recursively for .hcl files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	environ := l.environ()
	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, file := range files {
		fileModel, err := l.loadFile(parser, file, environ)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.", "puzzles", len(model.Puzzles), "report", model.Report != nil)
	return model, nil
}

func (l *Loader) loadFile(parser *hclparse.Parser, file string, environ []string) (*config.Model, error) {
	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
	}

	dir, err := filepath.Abs(filepath.Dir(file))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory of %s: %w", file, err)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, newEvalContext(dir, environ), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	return translate(file, dir, &root)
}

func translate(file, dir string, root *fileRoot) (*config.Model, error) {
	model := &config.Model{}

	for _, pb := range root.Puzzles {
		var expect *uint64
		if pb.Expect != nil {
			if *pb.Expect < 0 {
				return nil, fmt.Errorf("%s: puzzle %q has negative expect %d", file, pb.Name, *pb.Expect)
			}
			v := uint64(*pb.Expect)
			expect = &v
		}

		p, err := config.NewPuzzle(pb.Name, file, resolveInput(dir, pb.Input), pb.Records, pb.Unfold, pb.Folds, expect)
		if err != nil {
			return nil, err
		}
		model.Puzzles = append(model.Puzzles, p)
	}

	switch len(root.Reports) {
	case 0:
	case 1:
		rb := root.Reports[0]
		r, err := config.NewReport(rb.URL, rb.Namespace, rb.Event, rb.AckEvent, rb.Timeout)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		model.Report = r
	default:
		return nil, fmt.Errorf("%s: duplicate \"report\" block, only one is allowed", file)
	}

	return model, nil
}

// resolveInput makes relative input paths relative to the manifest.
func resolveInput(dir, input string) string {
	if input == "" || input == "-" || filepath.IsAbs(input) {
		return input
	}
	return filepath.Join(dir, input)
}

// findAllHCLFiles expands directories into the .hcl files beneath them and
// keeps explicitly named files as given.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return allFiles, nil
}
