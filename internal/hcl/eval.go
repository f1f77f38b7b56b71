package hcl

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// newEvalContext exposes the manifest directory and the process environment
// to attribute expressions, e.g. input = "${manifest_dir}/day12.txt" or
// input = env.PUZZLE_INPUT.
func newEvalContext(manifestDir string, environ []string) *hcl.EvalContext {
	envVals := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		envVals[k] = cty.StringVal(v)
	}

	env := cty.MapValEmpty(cty.String)
	if len(envVals) > 0 {
		env = cty.MapVal(envVals)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"manifest_dir": cty.StringVal(manifestDir),
			"env":          env,
		},
	}
}
