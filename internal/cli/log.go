package cli

import (
	"context"
	"io"

	"github.com/alexrudy/observer/internal/config"
	"github.com/alexrudy/observer/internal/fits"
	"github.com/alexrudy/observer/internal/fitsio"
	"github.com/alexrudy/observer/internal/table"

	flag "github.com/spf13/pflag"
)

// LogCmd returns the log command.
func LogCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	addInputFlags(fs)
	fs.Bool("re", false, "Treat values as regular expressions")
	fs.StringP("output", "o", "", "Write the log table to a file")

	return &Command{
		Flags: fs,
		Usage: "log [KEY=value|KEY]... [flags]",
		Short: "Make a log table for a collection of FITS files",
		Long: "Create a text table with the requested header information for a\n" +
			"collection of FITS files. Headers missing a requested keyword are\n" +
			"filled with a blank value and warned about.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execLog(o, cfg, fs, args)
		},
	}
}

func execLog(o *IO, cfg *config.Config, fs *flag.FlagSet, args []string) error {
	files, err := resolveInputs(cfg, fs)
	if err != nil {
		return err
	}

	useRegexp, _ := fs.GetBool("re")
	criteria, keys, err := parseCriteria(args, useRegexp)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		keys = cfg.Keywords
	}

	o.Printf("Will log %d files.\n", len(files))

	tbl := fits.NewTable()
	tbl.SetWarnFunc(o.Warnf)
	if err := tbl.Read(fitsio.ReadHeaders, files); err != nil {
		return err
	}

	data, err := tbl.Search(criteria...).Normalize(keys, fits.NormalizeOptions{})
	if err != nil {
		return err
	}

	var order []string
	if len(keys) > 0 {
		order = keys
	}
	columns, rows := data.Rows(order)
	out := table.New(columns...)
	for _, row := range rows {
		out.AddRow(row...)
	}

	output, _ := fs.GetString("output")
	output = resolvePath(cfg, output)
	wrote, err := writeOutput(o, output, func(w io.Writer) error {
		return out.Render(w, table.Options{Header: true})
	})
	if err != nil {
		return err
	}
	if wrote {
		o.Printf("Wrote log to %q.\n", output)
	}
	o.Printf("%d files logged.\n", data.Len())
	return nil
}
