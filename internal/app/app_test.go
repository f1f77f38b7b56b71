package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/springgrid/internal/record"
)

const exampleInput = `???.### 1,1,3
.??..??...?##. 1,1,3
?#?#?#?#?#?#?#? 1,3,1,6
????.#...#... 4,1,1
????.######..#####. 1,6,5
?###???????? 3,2,1
`

func TestRun_PlainInput(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"day12.txt": exampleInput})

	testCases := []struct {
		name  string
		folds int
		want  string
	}{
		{name: "simple", folds: 1, want: "21\n"},
		{name: "unfolded", folds: record.DefaultFolds, want: "525152\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a, out, logs := setupAppTest(t, Config{
				InputPath:   filepath.Join(root, "day12.txt"),
				Folds:       tc.folds,
				WorkerCount: 3,
			}, nil)

			require.NoError(t, a.Run(context.Background()))
			assert.Equal(t, tc.want, out.String())
			assert.Contains(t, logs.String(), "run_id="+a.RunID())
			assert.Contains(t, logs.String(), "puzzle=day12")
		})
	}
}

func TestRun_MalformedLineIsSurfaced(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"bad.txt": "???.### 1,1,3\n??x 1\n?###???????? 3,2,1\n"})
	a, out, logs := setupAppTest(t, Config{InputPath: filepath.Join(root, "bad.txt")}, nil)

	err := a.Run(context.Background())
	require.Error(t, err)

	var pe *record.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
	assert.Contains(t, err.Error(), "1 of 3 lines failed")
	assert.Equal(t, "11\n", out.String(), "valid lines are still summed")
	assert.Contains(t, logs.String(), "Line rejected.")
}

func TestRun_Manifest(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"day12.txt": exampleInput,
		"springs.hcl": `
puzzle "part1" {
  input  = "day12.txt"
  expect = 21
}

puzzle "part2" {
  input  = "day12.txt"
  unfold = true
  expect = 525152
}

puzzle "inline" {
  records = ["?###???????? 3,2,1"]
}
`,
	})

	a, out, _ := setupAppTest(t, Config{InputPath: filepath.Join(root, "springs.hcl")}, nil)
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "part1\t21\npart2\t525152\ninline\t10\n", out.String())
}

func TestRun_ManifestDirectoryWithYAML(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"a.hcl": `puzzle "from_hcl" { records = ["???.### 1,1,3"] }`,
		"b.yaml": `
puzzles:
  - name: from_yaml
    records: ["????.######..#####. 1,6,5"]
    unfold: true
`,
	})

	a, out, _ := setupAppTest(t, Config{InputPath: root}, nil)
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "from_hcl\t1\nfrom_yaml\t2500\n", out.String())
}

func TestRun_ExpectationMismatch(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"m.yaml": `
puzzles:
  - name: wrong
    records: ["?###???????? 3,2,1"]
    expect: 11
`,
	})

	a, out, _ := setupAppTest(t, Config{InputPath: filepath.Join(root, "m.yaml")}, nil)
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `puzzle "wrong": expected 11 arrangements, got 10`)
	assert.Equal(t, "wrong\t10\n", out.String())
}

func TestRun_PublishesReport(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"m.hcl": `
puzzle "example" {
  records = ["???.### 1,1,3", "bad"]
}

report {
  url   = "http://localhost:3000/socket.io/"
  event = "springs"
}
`,
	})

	pub := &fakePublisher{}
	a, _, _ := setupAppTest(t, Config{InputPath: filepath.Join(root, "m.hcl")}, pub)

	err := a.Run(context.Background())
	require.Error(t, err, "the malformed record still fails the run")

	require.Len(t, pub.payloads, 1)
	payload := pub.payloads[0]
	assert.Equal(t, a.RunID(), payload.RunID)
	require.Len(t, payload.Puzzles, 1)
	assert.Equal(t, uint64(1), payload.Puzzles[0].Total)
	assert.Equal(t, 2, payload.Puzzles[0].Lines)
	assert.Equal(t, 1, payload.Puzzles[0].Failed)
	assert.Equal(t, "springs", pub.report.Event)
}

func TestRun_ReportFlagsOverrideManifest(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"in.txt": "# 1\n"})
	pub := &fakePublisher{err: errors.New("collector unavailable")}
	a, out, _ := setupAppTest(t, Config{
		InputPath:     filepath.Join(root, "in.txt"),
		ReportURL:     "http://collector:9000/socket.io/",
		ReportEvent:   "totals",
		ReportTimeout: 2 * time.Second,
	}, pub)

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish report: collector unavailable")
	assert.Equal(t, "1\n", out.String())
	assert.Equal(t, "totals", pub.report.Event)
	assert.Equal(t, 2*time.Second, pub.report.Timeout)
}

func TestRun_LoadErrors(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"empty.hcl":   "",
		"broken.hcl":  `puzzle "x" {`,
		"missing.hcl": `puzzle "x" { input = "nowhere.txt" }`,
	})

	testCases := []struct {
		path    string
		wantErr string
	}{
		{path: filepath.Join(root, "absent.txt"), wantErr: "failed to load input"},
		{path: filepath.Join(root, "empty.hcl"), wantErr: "no puzzles found"},
		{path: filepath.Join(root, "broken.hcl"), wantErr: "failed to load configuration"},
		{path: filepath.Join(root, "missing.hcl"), wantErr: `puzzle "x": failed to read input`},
	}

	for _, tc := range testCases {
		t.Run(filepath.Base(tc.path), func(t *testing.T) {
			t.Parallel()

			a, out, _ := setupAppTest(t, Config{InputPath: tc.path}, nil)
			err := a.Run(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.Empty(t, strings.TrimSpace(out.String()))
		})
	}
}

func TestNewConfig_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{Folds: 1})
	assert.ErrorContains(t, err, "InputPath is a required")

	_, err = NewConfig(Config{InputPath: "x", Folds: 0})
	assert.ErrorContains(t, err, "folds must be at least 1")

	_, err = NewConfig(Config{InputPath: "x", Folds: 1, WorkerCount: -1})
	assert.ErrorContains(t, err, "worker count")

	cfg, err := NewConfig(Config{InputPath: "x", Folds: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Folds)
}

func TestNewLogger_WarnLevelJSON(t *testing.T) {
	t.Parallel()

	var buf SafeBuffer
	newLogger("warn", "json", &buf).Info("hidden")
	newLogger("warn", "json", &buf).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
