package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexrudy/observer/internal/config"
	"github.com/alexrudy/observer/internal/fits"
	"github.com/alexrudy/observer/internal/fitsio"

	flag "github.com/spf13/pflag"
)

// InfoCmd returns the info command.
func InfoCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	addInputFlags(fs)
	fs.Bool("re", false, "Treat values as regular expressions")

	return &Command{
		Flags: fs,
		Usage: "info [KEY=value|KEY]... [flags]",
		Short: "Show HDU details for a group of FITS files",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execInfo(o, cfg, fs, args)
		},
	}
}

func execInfo(o *IO, cfg *config.Config, fs *flag.FlagSet, args []string) error {
	files, err := resolveInputs(cfg, fs)
	if err != nil {
		return err
	}

	useRegexp, _ := fs.GetBool("re")
	criteria, _, err := parseCriteria(args, useRegexp)
	if err != nil {
		return err
	}

	tbl := fits.NewTable()
	tbl.SetWarnFunc(o.Warnf)
	if err := tbl.Read(fitsio.ReadHeaders, files); err != nil {
		return err
	}
	data := tbl.Search(criteria...)

	o.Printf("Will get info on %d files.\n", data.Len())

	for _, path := range uniquePaths(data) {
		infos, err := fitsio.Info(path)
		if err != nil {
			return err
		}
		o.Printf("%s: %d HDUs\n", path, len(infos))
		for _, hdu := range infos {
			o.Printf("  %d  %-10s %-10s %4d cards  %s\n",
				hdu.Index, hdu.Name, hdu.Type, hdu.Cards, dimString(hdu.Dims))
		}
	}
	return nil
}

func uniquePaths(t *fits.HeaderTable) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, h := range t.Headers() {
		if p := h.Path(); !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	return paths
}

func dimString(dims []int64) string {
	if len(dims) == 0 {
		return "()"
	}
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
