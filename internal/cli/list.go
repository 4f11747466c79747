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

// ListCmd returns the list command.
func ListCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	addInputFlags(fs)
	fs.Bool("re", false, "Treat values as regular expressions")
	fs.BoolP("log", "l", false, "Show a full log table, not just matching file names")
	fs.StringP("output", "o", "", "Write the matching files to a list file")

	return &Command{
		Flags: fs,
		Usage: "list [KEY=value|KEY]... [flags]",
		Short: "Make a list of FITS files that match criteria",
		Long: "List the FITS files whose headers match the given criteria, using\n" +
			"exact matching or regular expressions. The output is one file per\n" +
			"line unless --log asks for the full table.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execList(o, cfg, fs, args)
		},
	}
}

func execList(o *IO, cfg *config.Config, fs *flag.FlagSet, args []string) error {
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

	fullLog, _ := fs.GetBool("log")
	var out *table.Table
	if fullLog {
		columns, rows := data.Rows(keys)
		out = table.New(columns...)
		for _, row := range rows {
			out.AddRow(row...)
		}
	} else {
		out = table.New("file")
		for _, file := range data.Files() {
			out.AddRow(file)
		}
	}

	output, _ := fs.GetString("output")
	output = resolvePath(cfg, output)
	wrote, err := writeOutput(o, output, func(w io.Writer) error {
		return out.Render(w, table.Options{Header: fullLog})
	})
	if err != nil {
		return err
	}
	if wrote {
		o.Printf("Wrote %s to %q.\n", fileOrLog(fullLog), output)
	}
	o.Printf("%d files found.\n", data.Len())
	return nil
}

func fileOrLog(fullLog bool) string {
	if fullLog {
		return "log"
	}
	return "list"
}
