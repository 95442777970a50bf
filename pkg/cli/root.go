package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
	Subcommands map[string]*Command
	Flags       *flag.FlagSet
}

// NewRootCommand creates the root command. The root itself performs the
// documented single-file upgrade; subcommands cover the batch workflow.
func NewRootCommand() *Command {
	root := newUpgradeCommand()
	root.Subcommands = map[string]*Command{
		"batch": newBatchCommand(),
	}
	return root
}

// Execute runs the command
func (c *Command) Execute() error {
	args := os.Args[1:]
	if len(args) == 0 {
		return c.usage()
	}

	// Check for help flag
	if args[0] == "-h" || args[0] == "--help" {
		return c.usage()
	}

	// Check for subcommand
	if subcmd, ok := c.Subcommands[args[0]]; ok {
		return subcmd.Run(args[1:])
	}

	// Anything flag-like runs the root command itself.
	if strings.HasPrefix(args[0], "-") {
		return c.Run(args)
	}

	return fmt.Errorf("unknown command: %s", args[0])
}

// usage prints the command usage
func (c *Command) usage() error {
	fmt.Printf("Usage: %s --in-file <path> --out-file <path>\n", c.Name)
	fmt.Printf("       %s <command> [args]\n\n", c.Name)
	fmt.Printf("Commands:\n")
	for name, cmd := range c.Subcommands {
		fmt.Printf("  %-15s %s\n", name, cmd.Description)
	}
	fmt.Printf("\nFlags:\n")
	c.Flags.PrintDefaults()
	return nil
}
