package config

import "context"

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads every manifest found at the given paths and merges them into
	// one model. Directories are searched recursively.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
