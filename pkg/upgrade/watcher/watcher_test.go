package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade/modifiers"
)

func newTestWatcher(t *testing.T) (*Watcher, string, string) {
	t.Helper()

	srcDir := t.TempDir()
	outDir := t.TempDir()

	registry := upgrade.NewRegistry()
	modifiers.RegisterDefaultModifiers(registry)
	engine := upgrade.NewEngine(registry, nil)

	w, err := New(Config{
		SourceRoot: srcDir,
		OutputRoot: outDir,
		Delay:      10 * time.Millisecond,
		CacheSize:  16,
		CacheTTL:   time.Minute,
	}, engine, nil, nil)
	require.NoError(t, err)
	return w, srcDir, outDir
}

func TestEligible(t *testing.T) {
	assert.True(t, Eligible("train.py"))
	assert.True(t, Eligible("nb.IPYNB"))
	assert.False(t, Eligible("readme.md"))
	assert.False(t, Eligible("data.csv"))
}

func TestWatcherProcessesQuietFiles(t *testing.T) {
	w, srcDir, outDir := newTestWatcher(t)

	src := filepath.Join(srcDir, "jobs", "train.py")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
	content := "from sagemaker.pytorch import PyTorch\n\ne = PyTorch(entry_point='t.py', train_instance_count=1)\n"
	require.NoError(t, os.WriteFile(src, []byte(content), 0644))

	w.Enqueue(src)

	// Not yet quiet for the debounce delay.
	assert.Equal(t, 0, w.ProcessDue(time.Now()))

	processed := w.ProcessDue(time.Now().Add(time.Second))
	assert.Equal(t, 1, processed)

	out, err := os.ReadFile(filepath.Join(outDir, "jobs", "train.py"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "instance_count=1")
	assert.NotContains(t, string(out), "train_instance_count")
}

func TestWatcherSkipsUnchangedContent(t *testing.T) {
	w, srcDir, _ := newTestWatcher(t)

	src := filepath.Join(srcDir, "train.py")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0644))

	w.Enqueue(src)
	assert.Equal(t, 1, w.ProcessDue(time.Now().Add(time.Second)))

	// Same bytes again: processed via the queue, but skipped by the
	// content cache without rewriting.
	w.Enqueue(src)
	assert.Equal(t, 1, w.ProcessDue(time.Now().Add(time.Second)))
}

func TestWatcherIgnoresIneligibleFiles(t *testing.T) {
	w, srcDir, _ := newTestWatcher(t)

	w.Enqueue(filepath.Join(srcDir, "notes.txt"))
	assert.Equal(t, 0, w.ProcessDue(time.Now().Add(time.Second)))
}

func TestWatcherReenqueueResetsTimer(t *testing.T) {
	w, srcDir, _ := newTestWatcher(t)

	src := filepath.Join(srcDir, "train.py")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0644))

	w.Enqueue(src)
	first := w.queue[src].timestamp
	time.Sleep(2 * time.Millisecond)
	w.Enqueue(src)

	// The second enqueue reset the quiet timer.
	assert.True(t, w.queue[src].timestamp.After(first))
}

func TestWatcherRejectsOutsideTree(t *testing.T) {
	w, _, _ := newTestWatcher(t)

	other := filepath.Join(t.TempDir(), "train.py")
	require.NoError(t, os.WriteFile(other, []byte("x = 1\n"), 0644))

	w.Enqueue(other)
	// Processed from the queue but fails path resolution; no panic and
	// nothing written.
	assert.Equal(t, 1, w.ProcessDue(time.Now().Add(time.Second)))
}

func TestNewRequiresRoots(t *testing.T) {
	_, err := New(Config{}, nil, nil, nil)
	assert.Error(t, err)
}

func TestWatcherStartStop(t *testing.T) {
	w, _, _ := newTestWatcher(t)
	w.Start()
	w.Stop()
	w.Stop() // idempotent
}
