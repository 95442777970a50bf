package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pravali96/sagemaker-upgrade/pkg/audit"
	"github.com/pravali96/sagemaker-upgrade/pkg/config"
	"github.com/pravali96/sagemaker-upgrade/pkg/observability"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade/modifiers"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade/watcher"
)

func main() {
	sourceDir := flag.String("source-dir", ".", "Directory to watch for Python sources and notebooks")
	outputDir := flag.String("output-dir", "", "Directory to mirror upgraded files into (required)")
	delaySeconds := flag.Int("delay", 2, "Delay in seconds before upgrading a changed file")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output-dir is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := observability.NewLogger(cfg.LogLevel, os.Stderr)

	registry := upgrade.NewRegistry()
	modifiers.RegisterDefaultModifiers(registry)
	if cfg.RulesFile != "" {
		rf, err := config.LoadRulesFile(cfg.RulesFile)
		if err != nil {
			log.Fatalf("Failed to load rules file: %v", err)
		}
		if err := rf.ApplyTo(registry); err != nil {
			log.Fatalf("Failed to apply rules file: %v", err)
		}
	}

	engine := upgrade.NewEngine(registry, logger)
	if err := engine.SetFromVersion(cfg.FromVersion); err != nil {
		log.Fatalf("Invalid from-version: %v", err)
	}

	var auditor audit.Logger = audit.NopLogger{}
	if cfg.AuditLogDir != "" {
		fileCfg := audit.DefaultFileLoggerConfig()
		fileCfg.BasePath = cfg.AuditLogDir
		fl, err := audit.NewFileLogger(fileCfg)
		if err != nil {
			log.Fatalf("Failed to open audit log: %v", err)
		}
		auditor = fl
	}
	defer auditor.Close()

	watchCfg := watcher.DefaultConfig()
	watchCfg.SourceRoot = *sourceDir
	watchCfg.OutputRoot = *outputDir
	watchCfg.Delay = time.Duration(*delaySeconds) * time.Second

	w, err := watcher.New(watchCfg, engine, auditor, logger)
	if err != nil {
		log.Fatalf("Failed to create watcher: %v", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("Failed to create filesystem watcher: %v", err)
	}
	defer fsWatcher.Close()

	if err := setupWatcher(fsWatcher, *sourceDir); err != nil {
		log.Fatalf("Failed to setup watcher: %v", err)
	}

	w.Start()
	defer w.Stop()

	// Pick up files that existed before the watcher started.
	scanExistingFiles(*sourceDir, w)

	log.Printf("Started watching for file changes in %s", *sourceDir)
	for {
		select {
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && watcher.Eligible(event.Name) {
				log.Printf("Modified file: %s", event.Name)
				w.Enqueue(event.Name)
			}

			// Also watch new directories
			if event.Op&fsnotify.Create != 0 {
				fi, err := os.Stat(event.Name)
				if err == nil && fi.IsDir() {
					if err := fsWatcher.Add(event.Name); err != nil {
						log.Printf("Error watching new directory: %v", err)
					}
				}
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// setupWatcher recursively adds all directories under root to the watcher.
func setupWatcher(fsWatcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fsWatcher.Add(path)
		}
		return nil
	})
}

// scanExistingFiles queues every eligible file already present under root.
func scanExistingFiles(root string, w *watcher.Watcher) {
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && watcher.Eligible(path) {
			w.Enqueue(path)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error scanning existing files: %v", err)
	}
}
