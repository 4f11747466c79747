package cli

import (
	"context"
	"io"
	"path/filepath"
	"strconv"

	"github.com/alexrudy/observer/internal/config"
	"github.com/alexrudy/observer/internal/fits"
	"github.com/alexrudy/observer/internal/fitsio"
	"github.com/alexrudy/observer/internal/table"

	flag "github.com/spf13/pflag"
)

// GroupCmd returns the group command.
func GroupCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("group", flag.ContinueOnError)
	addInputFlags(fs)
	fs.Bool("re", false, "Treat values as regular expressions")
	fs.StringSlice("list", nil, "Globs naming file lists to add as groups")
	fs.StringP("output", "o", "", "Write the summary table to a file")

	return &Command{
		Flags: fs,
		Usage: "group [KEY=value|KEY]... [flags]",
		Short: "Group FITS files by header keywords",
		Long: "Group FITS files whose headers share identical values for the given\n" +
			"keywords. Files can be filtered before grouping with KEY=value search\n" +
			"criteria; the searched keywords define the grouping. File lists added\n" +
			"with --list become explicit groups unless they duplicate an existing one.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execGroup(o, cfg, fs, args)
		},
	}
}

func execGroup(o *IO, cfg *config.Config, fs *flag.FlagSet, args []string) error {
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

	o.Printf("Will group %d files.\n", len(files))

	tbl := fits.NewTable()
	tbl.SetWarnFunc(o.Warnf)
	if err := tbl.Read(fitsio.ReadHeaders, files); err != nil {
		return err
	}

	data := tbl.Search(criteria...)
	registry := data.Group(keySpec(cfg, keys))

	listGlobs, _ := fs.GetStringSlice("list")
	for _, pattern := range listGlobs {
		matches, err := filepath.Glob(resolvePath(cfg, pattern))
		if err != nil {
			return err
		}
		for _, list := range matches {
			if _, _, err := registry.AddList(list, fitsio.ReadHeaders); err != nil {
				return err
			}
		}
	}

	summary := registry.Summary()
	columns := append([]string{"Name"}, summary.Keywords...)
	columns = append(columns, "N")
	out := table.New(columns...)
	for _, row := range summary.Rows {
		cells := append([]string{row.Name}, row.Values...)
		cells = append(cells, strconv.Itoa(row.Count))
		out.AddRow(cells...)
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
	o.Printf("%d files grouped.\n", data.Len())
	return nil
}
