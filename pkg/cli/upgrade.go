package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/pravali96/sagemaker-upgrade/pkg/report"
	"github.com/pravali96/sagemaker-upgrade/pkg/upgrade/modifiers"
)

// newUpgradeCommand builds the root command: upgrade a single file.
func newUpgradeCommand() *Command {
	cmd := &Command{
		Name:        "sagemaker-upgrade-v2",
		Description: "Upgrade one Python source or notebook file from SageMaker SDK v1 to v2",
	}

	flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	inFile := flags.String("in-file", "", "Path to the file to upgrade (required)")
	outFile := flags.String("out-file", "", "Path to write the upgraded file to (required)")
	dryRun := flags.Bool("dry-run", false, "Report changes without writing the output file")
	format := flags.String("format", "", "Report output format: text or json")
	fromVersion := flags.String("from-version", "", "SDK version the code currently targets, e.g. 1.72.0")
	listRules := flags.Bool("rules", false, "List the available rewrite rules and exit")
	rulesFile := flags.String("rules-file", "", "Path to a YAML rules file")
	auditDB := flags.String("audit-db", "", "Path to a SQLite database for the audit trail")
	auditLogDir := flags.String("audit-log-dir", "", "Directory for the JSON-lines audit trail")
	verbose := flags.Bool("verbose", false, "Enable debug logging")
	cmd.Flags = flags

	cmd.Run = func(args []string) error {
		if err := flags.Parse(args); err != nil {
			return err
		}

		if *listRules {
			return printRules(os.Stdout)
		}

		if *inFile == "" || *outFile == "" {
			flags.Usage()
			return fmt.Errorf("both --in-file and --out-file are required")
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

		result, err := r.processFile(*inFile, *outFile)
		if err != nil {
			return err
		}

		return report.Write(os.Stdout, r.format, []*report.Result{result})
	}

	return cmd
}

// printRules lists the built-in modifiers in registration order.
func printRules(w *os.File) error {
	for _, m := range modifiers.DefaultModifiers() {
		if _, err := fmt.Fprintf(w, "%-22s %s\n", m.Name(), m.Description()); err != nil {
			return err
		}
	}
	return nil
}
