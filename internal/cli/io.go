package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	warnLabel = color.New(color.FgYellow)
	errLabel  = color.New(color.FgRed)
)

// IO handles command output. Warnings go to stderr, colorized on
// terminals, and are counted so callers can tell a clean run from a noisy
// one; they never affect the exit code (incomplete metadata is the normal
// case, not a failure).
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings int
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Out returns the stdout writer.
func (o *IO) Out() io.Writer { return o.out }

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// Warnf reports a non-fatal diagnostic on stderr. It satisfies
// fits.WarnFunc.
func (o *IO) Warnf(format string, a ...any) {
	o.warnings++
	_, _ = warnLabel.Fprint(o.errOut, "warning: ")
	_, _ = fmt.Fprintf(o.errOut, format+"\n", a...)
}

// Errorln writes a plain line to stderr.
func (o *IO) Errorln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Errorf reports a fatal error on stderr.
func (o *IO) Errorf(format string, a ...any) {
	_, _ = errLabel.Fprint(o.errOut, "error: ")
	_, _ = fmt.Fprintf(o.errOut, format+"\n", a...)
}

// Warnings returns the number of warnings emitted so far.
func (o *IO) Warnings() int { return o.warnings }
