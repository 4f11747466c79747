package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/alexrudy/observer/internal/config"
	"github.com/alexrudy/observer/internal/fits"
	"github.com/alexrudy/observer/internal/fitsio"
	"github.com/alexrudy/observer/internal/table"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

// InspectCmd returns the inspect command.
func InspectCmd(cfg *config.Config, stdin io.Reader) *Command {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	addInputFlags(fs)
	fs.Bool("re", false, "Treat values as regular expressions")
	fs.StringP("output", "o", "", "Write the approved files to a list file")

	return &Command{
		Flags: fs,
		Usage: "inspect [KEY=value|KEY]... [flags]",
		Short: "Approve matching FITS files one by one",
		Long: "Works like the list command, except each matching file is shown with\n" +
			"its search keywords and can be kept or discarded interactively. The\n" +
			"approved files are printed or written as a list file.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execInspect(o, cfg, fs, args, stdin)
		},
	}
}

func execInspect(o *IO, cfg *config.Config, fs *flag.FlagSet, args []string, stdin io.Reader) error {
	files, err := resolveInputs(cfg, fs)
	if err != nil {
		return err
	}

	useRegexp, _ := fs.GetBool("re")
	criteria, keys, err := parseCriteria(args, useRegexp)
	if err != nil {
		return err
	}

	o.Printf("Searching %d files.\n", len(files))

	tbl := fits.NewTable()
	tbl.SetWarnFunc(o.Warnf)
	if err := tbl.Read(fitsio.ReadHeaders, files); err != nil {
		return err
	}
	normalized, err := tbl.Normalize(keys, fits.NormalizeOptions{})
	if err != nil {
		return err
	}
	data := normalized.Search(criteria...)

	o.Printf("Inspecting %d files.\n", data.Len())

	prompt := newPrompter(stdin, o)
	defer prompt.Close()

	kept := fits.NewTable()
	for _, h := range data.Headers() {
		for _, k := range keys {
			o.Printf("  %s = %s\n", k, h.Str(k))
		}
		answer, err := prompt.Prompt("keep '" + h.File() + "'? [Y/n] ")
		if err != nil {
			// End of input keeps nothing further.
			break
		}
		if keepAnswer(answer) {
			kept.Append(h)
		}
	}

	o.Printf("Kept %d files out of %d.\n", kept.Len(), data.Len())

	out := table.New("file")
	for _, file := range kept.Files() {
		out.AddRow(file)
	}
	output, _ := fs.GetString("output")
	output = resolvePath(cfg, output)
	wrote, err := writeOutput(o, output, func(w io.Writer) error {
		return out.Render(w, table.Options{})
	})
	if err != nil {
		return err
	}
	if wrote {
		o.Printf("Wrote list to %q.\n", output)
	}
	return nil
}

// keepAnswer interprets a keep/discard response; the default is keep.
func keepAnswer(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}

// prompter abstracts line input so inspect works both on a real terminal
// (line editing via liner) and with piped input.
type prompter interface {
	Prompt(msg string) (string, error)
	Close() error
}

func newPrompter(stdin io.Reader, o *IO) prompter {
	if f, ok := stdin.(*os.File); ok && f == os.Stdin && liner.TerminalSupported() {
		return &linerPrompter{state: liner.NewLiner()}
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	return &scanPrompter{scanner: bufio.NewScanner(stdin), o: o}
}

type linerPrompter struct {
	state *liner.State
}

func (p *linerPrompter) Prompt(msg string) (string, error) { return p.state.Prompt(msg) }
func (p *linerPrompter) Close() error                      { return p.state.Close() }

type scanPrompter struct {
	scanner *bufio.Scanner
	o       *IO
}

func (p *scanPrompter) Prompt(msg string) (string, error) {
	p.o.Printf("%s", msg)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.scanner.Text(), nil
}

func (p *scanPrompter) Close() error { return nil }
