package hcl

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/springgrid/internal/config"
	"github.com/vk/springgrid/internal/ctxlog"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func testLoader(environ ...string) *Loader {
	return &Loader{environ: func() []string { return environ }}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
	return root
}

func ptr[T any](v T) *T { return &v }

func TestLoad_PuzzlesAndReport(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"springs.hcl": `
puzzle "example" {
  records = ["???.### 1,1,3", "?###???????? 3,2,1"]
  expect  = 11
}

puzzle "example_unfolded" {
  input  = "input.txt"
  unfold = true
}

puzzle "triple" {
  input  = "${manifest_dir}/input.txt"
  unfold = true
  folds  = 3
}

report {
  url     = "http://localhost:3000/socket.io/"
  event   = "springs"
  timeout = "2s"
}
`,
	})

	model, err := testLoader().Load(testContext(), filepath.Join(root, "springs.hcl"))
	require.NoError(t, err)

	source := filepath.Join(root, "springs.hcl")
	want := []*config.Puzzle{
		{Name: "example", Records: []string{"???.### 1,1,3", "?###???????? 3,2,1"}, Folds: 1, Expect: ptr(uint64(11)), Source: source},
		{Name: "example_unfolded", InputPath: filepath.Join(root, "input.txt"), Folds: 5, Source: source},
		{Name: "triple", InputPath: filepath.Join(root, "input.txt"), Folds: 3, Source: source},
	}
	if diff := cmp.Diff(want, model.Puzzles, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("puzzles mismatch (-want +got):\n%s", diff)
	}

	require.NotNil(t, model.Report)
	assert.Equal(t, "springs", model.Report.Event)
	assert.Equal(t, "springs_ack", model.Report.AckEvent)
	assert.Equal(t, "/", model.Report.Namespace)
}

func TestLoad_EnvVariable(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"env.hcl": `
puzzle "from_env" {
  input = env.PUZZLE_INPUT
}
`,
	})

	model, err := testLoader("PUZZLE_INPUT=/data/day12.txt", "MALFORMED").Load(testContext(), root)
	require.NoError(t, err)
	require.Len(t, model.Puzzles, 1)
	assert.Equal(t, "/data/day12.txt", model.Puzzles[0].InputPath)
}

func TestLoad_DirectoryMergesFiles(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"a.hcl":        `puzzle "a" { records = ["# 1"] }`,
		"nested/b.hcl": `puzzle "b" { records = ["## 2"] }`,
		"ignored.txt":  `not hcl at all`,
	})

	model, err := testLoader().Load(testContext(), root)
	require.NoError(t, err)
	require.Len(t, model.Puzzles, 2)
	assert.Equal(t, "a", model.Puzzles[0].Name)
	assert.Equal(t, "b", model.Puzzles[1].Name)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "syntax error",
			content: `puzzle "x" {`,
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown attribute",
			content: "puzzle \"x\" {\n  records = [\"# 1\"]\n  colour = \"red\"\n}",
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "unknown block",
			content: `grid "x" {}`,
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "no source",
			content: `puzzle "x" {}`,
			wantErr: "needs either input or records",
		},
		{
			name:    "negative expect",
			content: "puzzle \"x\" {\n  records = [\"# 1\"]\n  expect = -1\n}",
			wantErr: "negative expect",
		},
		{
			name:    "duplicate puzzle",
			content: "puzzle \"x\" { records = [\"# 1\"] }\npuzzle \"x\" { records = [\"# 1\"] }",
			wantErr: `duplicate puzzle "x"`,
		},
		{
			name:    "two reports",
			content: "report { url = \"http://a\" }\nreport { url = \"http://b\" }",
			wantErr: `duplicate "report" block`,
		},
		{
			name:    "bad timeout",
			content: "report {\n  url = \"http://a\"\n  timeout = \"later\"\n}",
			wantErr: "invalid report timeout",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			root := writeFiles(t, map[string]string{"m.hcl": tc.content})
			_, err := testLoader().Load(testContext(), filepath.Join(root, "m.hcl"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := testLoader().Load(testContext(), filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error accessing path")
}
