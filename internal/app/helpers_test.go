package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/springgrid/internal/config"
	"github.com/vk/springgrid/internal/report"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// fakePublisher records the payloads handed to it.
type fakePublisher struct {
	mu       sync.Mutex
	report   config.Report
	payloads []report.Payload
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, p report.Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, p)
	return f.err
}

// setupAppTest creates an app whose answers and logs are captured, with the
// report publisher replaced by pub.
func setupAppTest(t *testing.T, cfg Config, pub *fakePublisher) (*App, *bytes.Buffer, *SafeBuffer) {
	t.Helper()

	if cfg.Folds == 0 {
		cfg.Folds = 1
	}
	cfg.LogLevel = "debug"
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logs := &SafeBuffer{}
	a := NewApp(out, logs, validated)
	if pub != nil {
		a.newPublisher = func(r config.Report) report.Publisher {
			pub.report = r
			return pub
		}
	}

	t.Cleanup(func() {
		if os.Getenv("SPRINGGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return a, out, logs
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
