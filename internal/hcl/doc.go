// Package hcl provides the HCL implementation of the config.Loader
// interface. It parses `puzzle` and `report` blocks, evaluates attribute
// expressions against a small context (`manifest_dir` and `env`), and
// translates the result into the format-agnostic config.Model.
package hcl
