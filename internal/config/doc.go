// Package config defines the format-agnostic manifest model for the
// application, along with the Loader interface implemented by the HCL and
// YAML manifest packages.
//
// A manifest lists puzzles (an input source plus the variant to count) and
// optionally where to publish the results. The `config.Model` is the single
// source of truth for `app.Run`; concrete loaders live in separate packages.
package config
