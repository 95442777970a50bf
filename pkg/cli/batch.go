package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pravali96/sagemaker-upgrade/pkg/report"
)

// newBatchCommand builds the batch subcommand: upgrade every eligible
// file under a directory, one file at a time.
func newBatchCommand() *Command {
	cmd := &Command{
		Name:        "batch",
		Description: "Upgrade every .py and .ipynb file under a directory",
	}

	flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	inDir := flags.String("in-dir", "", "Directory to scan for files to upgrade (required)")
	outDir := flags.String("out-dir", "", "Directory to mirror upgraded files into (required)")
	dryRun := flags.Bool("dry-run", false, "Report changes without writing output files")
	format := flags.String("format", "", "Report output format: text or json")
	fromVersion := flags.String("from-version", "", "SDK version the code currently targets, e.g. 1.72.0")
	rulesFile := flags.String("rules-file", "", "Path to a YAML rules file")
	auditDB := flags.String("audit-db", "", "Path to a SQLite database for the audit trail")
	auditLogDir := flags.String("audit-log-dir", "", "Directory for the JSON-lines audit trail")
	verbose := flags.Bool("verbose", false, "Enable debug logging")
	cmd.Flags = flags

	cmd.Run = func(args []string) error {
		if err := flags.Parse(args); err != nil {
			return err
		}

		if *inDir == "" || *outDir == "" {
			flags.Usage()
			return fmt.Errorf("both --in-dir and --out-dir are required")
		}

		files, err := findUpgradeFiles(*inDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no .py or .ipynb files found under %s", *inDir)
		}

		r, err := newRunner(runnerOptions{
			dryRun:      *dryRun,
			format:      *format,
			fromVersion: *fromVersion,
			rulesFile:   *rulesFile,
			auditDB:     *auditDB,
			auditLogDir: *auditLogDir,
			verbose:     *verbose,
		})
		if err != nil {
			return err
		}
		defer r.Close()

		results := make([]*report.Result, 0, len(files))
		for _, inFile := range files {
			rel, err := filepath.Rel(*inDir, inFile)
			if err != nil {
				return err
			}
			outFile := filepath.Join(*outDir, rel)

			if !*dryRun {
				if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			result, err := r.processFile(inFile, outFile)
			if err != nil {
				return fmt.Errorf("failed to upgrade %s: %w", inFile, err)
			}
			results = append(results, result)
		}

		return report.Write(os.Stdout, r.format, results)
	}

	return cmd
}

// findUpgradeFiles walks root and returns every .py and .ipynb file,
// sorted for deterministic processing order. Hidden directories and
// notebook checkpoint directories are skipped.
func findUpgradeFiles(root string) ([]string, error) {
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := info.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "__pycache__") {
				return filepath.SkipDir
			}
			return nil
		}

		switch filepath.Ext(path) {
		case ".py", ".ipynb":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
