// Package watcher keeps an upgraded mirror of a source tree: it watches
// for changed .py and .ipynb files, re-runs the upgrade engine on each
// after a debounce delay, and writes the results under an output root.
package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/pravali96/sagemaker-upgrade/pkg/audit"
	"github.com/pravali96/sagemaker-upgrade/pkg/observability"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
)

// request is one file queued for upgrading.
type request struct {
	path      string
	timestamp time.Time
}

// Config configures a Watcher.
type Config struct {
	SourceRoot string
	OutputRoot string

	// Delay is how long a file must be quiet before it is processed.
	Delay time.Duration

	// CacheSize bounds the content-hash cache that skips files whose
	// bytes were already processed.
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultConfig returns default watcher configuration.
func DefaultConfig() Config {
	return Config{
		Delay:     2 * time.Second,
		CacheSize: 1024,
		CacheTTL:  time.Hour,
	}
}

// Watcher debounces file events and runs the upgrade engine on quiet
// files. Feed it paths with Enqueue; it does not own the fsnotify
// subscription, so callers can drive it from any event source.
type Watcher struct {
	config  Config
	engine  *upgrade.Engine
	auditor audit.Logger
	logger  *observability.Logger

	mu        sync.Mutex
	queue     map[string]*request
	processed *lru.LRU[string, string] // content hash -> run ID

	stopChan chan struct{}
	ticker   *time.Ticker
	stopOnce sync.Once
}

// New creates a watcher over the given engine.
func New(config Config, engine *upgrade.Engine, auditor audit.Logger, logger *observability.Logger) (*Watcher, error) {
	if config.SourceRoot == "" || config.OutputRoot == "" {
		return nil, fmt.Errorf("source and output roots are required")
	}
	if config.Delay <= 0 {
		config.Delay = DefaultConfig().Delay
	}
	if config.CacheSize <= 0 {
		config.CacheSize = DefaultConfig().CacheSize
	}
	if auditor == nil {
		auditor = audit.NopLogger{}
	}
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}

	return &Watcher{
		config:    config,
		engine:    engine,
		auditor:   auditor,
		logger:    logger,
		queue:     make(map[string]*request),
		processed: lru.NewLRU[string, string](config.CacheSize, nil, config.CacheTTL),
		stopChan:  make(chan struct{}),
	}, nil
}

// Eligible reports whether path is a file kind the watcher upgrades.
func Eligible(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".ipynb":
		return true
	}
	return false
}

// Enqueue schedules a file for upgrading after the debounce delay.
// Re-enqueueing an already queued file resets its timer.
func (w *Watcher) Enqueue(path string) {
	if !Eligible(path) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queue[path] = &request{path: path, timestamp: time.Now()}
}

// Start begins processing the queue.
func (w *Watcher) Start() {
	w.ticker = time.NewTicker(500 * time.Millisecond)
	go w.loop()
}

// Stop stops queue processing.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		if w.ticker != nil {
			w.ticker.Stop()
		}
		close(w.stopChan)
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopChan:
			return
		case <-w.ticker.C:
			w.ProcessDue(time.Now())
		}
	}
}

// ProcessDue upgrades every queued file that has been quiet for the
// debounce delay, serially, and returns how many files were processed.
func (w *Watcher) ProcessDue(now time.Time) int {
	w.mu.Lock()
	due := make([]string, 0)
	for path, req := range w.queue {
		if now.Sub(req.timestamp) >= w.config.Delay {
			due = append(due, path)
			delete(w.queue, path)
		}
	}
	w.mu.Unlock()

	for _, path := range due {
		if err := w.process(path); err != nil {
			w.logger.WithError(err).WithField("file", path).Error("upgrade failed")
		}
	}
	return len(due)
}

// process upgrades one file into the output mirror.
func (w *Watcher) process(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	hash := contentHash(path, data)
	if runID, ok := w.processed.Get(hash); ok {
		w.logger.WithField("file", path).WithField("run_id", runID).Debug("content unchanged since last run, skipping")
		return nil
	}

	outPath, err := w.outputPath(path)
	if err != nil {
		return err
	}

	out, result, err := w.engine.Upgrade(path, data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	result.OutFile = outPath
	if err := audit.RecordResult(context.Background(), w.auditor, result, outPath); err != nil {
		return fmt.Errorf("failed to record audit trail: %w", err)
	}

	w.processed.Add(hash, result.RunID)
	w.logger.WithField("file", path).
		WithField("out", outPath).
		WithField("changes", len(result.Changes)).
		Info("file upgraded")
	return nil
}

// outputPath mirrors the file's position under the output root.
func (w *Watcher) outputPath(path string) (string, error) {
	rel, err := filepath.Rel(w.config.SourceRoot, path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s under %s: %w", path, w.config.SourceRoot, err)
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside the watched tree", path)
	}
	return filepath.Join(w.config.OutputRoot, rel), nil
}

// contentHash keys the processed cache on path plus content bytes.
func contentHash(path string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
