package cli

import (
	"context"

	"github.com/alexrudy/observer/internal/config"
	"github.com/alexrudy/observer/internal/fits"
	"github.com/alexrudy/observer/internal/fitsio"

	flag "github.com/spf13/pflag"
)

// HeadCmd returns the head command.
func HeadCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("head", flag.ContinueOnError)
	addInputFlags(fs)
	fs.Bool("re", false, "Treat values as regular expressions")

	return &Command{
		Flags: fs,
		Usage: "head [KEY=value|KEY]... [flags]",
		Short: "Show the headers of matching FITS files",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execHead(o, cfg, fs, args)
		},
	}
}

func execHead(o *IO, cfg *config.Config, fs *flag.FlagSet, args []string) error {
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

	o.Printf("Will show headers for %d HDUs.\n", data.Len())

	for _, h := range data.Headers() {
		o.Printf("== %s ==\n", h.File())
		for _, card := range h.Cards() {
			if card.Comment != "" {
				o.Printf("%-8s= %-20s / %s\n", card.Name, fits.FormatValue(card.Value), card.Comment)
			} else {
				o.Printf("%-8s= %s\n", card.Name, fits.FormatValue(card.Value))
			}
		}
	}

	o.Printf("Examined %d headers.\n", data.Len())
	return nil
}
