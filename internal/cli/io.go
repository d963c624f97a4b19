package cli

import (
	"fmt"
	"io"
)

// warning is a problem that did not stop the command, plus what was done
// about it.
type warning struct {
	issue  string
	action string
}

func (w warning) String() string {
	return "warning: " + w.issue + ": " + w.action
}

// IO is the output side of one command run. Warnings collected during the
// run are shown on stderr before the first line of normal output and again
// at Finish, so they survive piping through head or tail.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings []warning
	shown    bool // leading copy of warnings already printed
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn records a non-fatal problem. Any warning makes Finish return 1;
// normal output is still printed.
func (o *IO) Warn(issue, action string) {
	o.warnings = append(o.warnings, warning{issue: issue, action: action})
}

// Println writes a line to stdout.
func (o *IO) Println(a ...any) {
	o.leadWarnings()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	o.leadWarnings()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes a line to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish repeats the warnings and returns the exit code: 1 if there were
// any, 0 otherwise.
func (o *IO) Finish() int {
	o.leadWarnings()

	if len(o.warnings) == 0 {
		return 0
	}

	o.printWarnings()

	return 1
}

func (o *IO) leadWarnings() {
	if o.shown || len(o.warnings) == 0 {
		return
	}

	o.shown = true
	o.printWarnings()
}

func (o *IO) printWarnings() {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, w)
	}
}
