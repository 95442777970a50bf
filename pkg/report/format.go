package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Output formats accepted by the --format flag.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders results in the requested format.
func Write(w io.Writer, format string, results []*Result) error {
	switch format {
	case FormatText, "":
		return writeText(w, results)
	case FormatJSON:
		return writeJSON(w, results)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func writeText(w io.Writer, results []*Result) error {
	summary := Summarize(results)

	for _, result := range results {
		if len(result.Changes) == 0 && len(result.Warnings) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", result.InFile)
		for _, c := range result.Changes {
			loc := fmt.Sprintf("line %d", c.Line)
			if c.Cell > 0 {
				loc = fmt.Sprintf("cell %d, line %d", c.Cell, c.Line)
			}
			fmt.Fprintf(w, "  [%s] %s: %s -> %s (%s)\n", c.Rule, loc, c.Old, c.New, c.Kind)
		}
		for _, warn := range result.Warnings {
			loc := fmt.Sprintf("line %d", warn.Line)
			if warn.Cell > 0 {
				loc = fmt.Sprintf("cell %d, line %d", warn.Cell, warn.Line)
			}
			fmt.Fprintf(w, "  [%s] %s: warning: %s\n", warn.Rule, loc, warn.Message)
		}
	}

	fmt.Fprintf(w, "\nFiles: %d (%d changed), changes: %d, warnings: %d\n",
		summary.TotalFiles, summary.ChangedFiles, summary.TotalChanges, summary.TotalWarnings)

	if len(summary.ByRule) > 0 {
		rules := make([]string, 0, len(summary.ByRule))
		for rule := range summary.ByRule {
			rules = append(rules, rule)
		}
		sort.Strings(rules)
		for _, rule := range rules {
			fmt.Fprintf(w, "  %-30s %d\n", rule, summary.ByRule[rule])
		}
	}

	return nil
}

func writeJSON(w io.Writer, results []*Result) error {
	payload := struct {
		Results []*Result `json:"results"`
		Summary Summary   `json:"summary"`
	}{
		Results: results,
		Summary: Summarize(results),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
