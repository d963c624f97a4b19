package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is one taskboard subcommand. The same value serves the one-shot
// CLI, the shell and the help listings.
type Command struct {
	// Flags holds the command's own flags. Always non-nil.
	Flags *flag.FlagSet

	// Usage starts with the command name, e.g. "show <id>".
	Usage string

	// Short is the one-liner for command listings.
	Short string

	// Long is shown by "<command> --help". Falls back to Short.
	Long string

	// ShellOnly commands change the board or the session's view settings.
	// Nothing is saved, so outside the shell they would be no-ops.
	ShellOnly bool

	// TopLevel commands are refused inside the shell.
	TopLevel bool

	// Exec receives the positional arguments left after flag parsing.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine returns the command's row in a listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-34s %s", c.Usage, c.Short)
}

// PrintHelp prints usage, description and flag defaults.
func (c *Command) PrintHelp(o *IO) {
	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Printf("Usage: taskboard %s\n\n%s\n", c.Usage, desc)

	if !c.Flags.HasFlags() {
		return
	}

	o.Printf("\nFlags:\n%s", c.Flags.FlagUsages())
}

// Run parses args, executes the command and prints any error to stderr.
// It returns the exit code.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // errors are printed below

	if err := c.Flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln("Run 'taskboard " + c.Name() + " --help' for usage.")

		return 1
	}

	if err := c.Exec(ctx, o, c.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	return 0
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SortFlags = false

	return fs
}

// commands builds a fresh command table bound to s. A FlagSet remembers
// values and Changed state from its last Parse, so every shell line needs
// new ones.
func commands(s *Session) []*Command {
	return []*Command{
		cmdLs(s),
		cmdShow(s),
		cmdStats(s),
		cmdHigh(s),
		cmdAssignees(s),
		cmdCategories(s),
		cmdAdd(s),
		cmdEdit(s),
		cmdRm(s),
		cmdBulkRm(s),
		cmdBulkStatus(s),
		cmdFilter(s),
		cmdSort(s),
		cmdShell(s),
		cmdPrintConfig(s),
	}
}

func lookup(s *Session, name string) *Command {
	for _, cmd := range commands(s) {
		if cmd.Name() == name {
			return cmd
		}
	}

	return nil
}
