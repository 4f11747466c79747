package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexrudy/observer/internal/config"
	"github.com/alexrudy/observer/internal/fits"

	flag "github.com/spf13/pflag"
)

var errNoInputFiles = errors.New("no input files found")

// addInputFlags adds the input flags shared by every command.
func addInputFlags(fs *flag.FlagSet) {
	fs.StringSliceP("input", "i", nil, "Globs or file lists naming the FITS files to use")
	fs.BoolP("single", "s", false, "Use only the first found file")
}

// resolvePath anchors a relative path at the effective working directory,
// so --cwd applies to inputs and outputs the same way it applies to the
// config file.
func resolvePath(cfg *config.Config, path string) string {
	if path == "" || filepath.IsAbs(path) || cfg.EffectiveCwd == "" {
		return path
	}
	return filepath.Join(cfg.EffectiveCwd, path)
}

// resolveInputs expands the -i values (or the configured default) into a
// file list. Each value is either a file list (any existing file without a
// FITS extension) or a whitespace-separated set of glob patterns. Relative
// patterns and list paths resolve against the effective working directory.
func resolveInputs(cfg *config.Config, fs *flag.FlagSet) ([]string, error) {
	inputs, _ := fs.GetStringSlice("input")
	if len(inputs) == 0 {
		inputs = []string{cfg.Input}
	}

	var files []string
	for _, input := range inputs {
		if list := resolvePath(cfg, input); isFileList(list) {
			listed, err := fits.ReadFileList(list)
			if err != nil {
				return nil, err
			}
			files = append(files, listed...)
			continue
		}
		for _, pattern := range strings.Fields(input) {
			matches, err := filepath.Glob(resolvePath(cfg, pattern))
			if err != nil {
				return nil, fmt.Errorf("bad input pattern %q: %w", pattern, err)
			}
			files = append(files, matches...)
		}
	}
	if len(files) == 0 {
		return nil, errNoInputFiles
	}

	if single, _ := fs.GetBool("single"); single {
		files = files[:1]
	}
	return files, nil
}

// isFileList reports whether path is an existing regular file that is not
// itself a FITS file, which resolveInputs treats as a file list.
func isFileList(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir() && !isFITSPath(path)
}

func isFITSPath(path string) bool {
	name := strings.TrimSuffix(path, ".gz")
	return strings.HasSuffix(name, ".fits") || strings.HasSuffix(name, ".fit")
}

// parseCriteria parses KEY=value arguments into search criteria. A bare
// KEY requires the keyword to be present. With useRegexp, values compile
// as regular expressions matched at the start of the header value. The
// keyword names are returned in argument order for grouping and table
// columns.
func parseCriteria(args []string, useRegexp bool) ([]fits.Criterion, []string, error) {
	var criteria []fits.Criterion
	var keys []string
	for _, arg := range args {
		key, value, hasValue := strings.Cut(arg, "=")
		if key == "" {
			return nil, nil, fmt.Errorf("malformed keyword pair: %q", arg)
		}
		keys = append(keys, key)

		if !hasValue {
			criteria = append(criteria, fits.Present(key))
			continue
		}
		if useRegexp {
			re, err := regexp.Compile(value)
			if err != nil {
				return nil, nil, fmt.Errorf("bad pattern for %q: %w", key, err)
			}
			criteria = append(criteria, fits.Matches(key, re))
			continue
		}
		c, err := fits.NewCriterion(key, parseLiteral(value))
		if err != nil {
			return nil, nil, err
		}
		criteria = append(criteria, c)
	}
	return criteria, keys, nil
}

// parseLiteral interprets a command-line value the way the header loader
// would: quoted strings are unquoted, True/False select presence matching,
// and numeric literals become typed values.
func parseLiteral(s string) any {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	switch s {
	case "True":
		return true
	case "False":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// keySpec builds the grouping spec for the given keywords, applying any
// fixed-precision formats from the config.
func keySpec(cfg *config.Config, keywords []string) fits.KeySpec {
	formats := make([]fits.Format, len(keywords))
	for i, k := range keywords {
		if prec, ok := cfg.Formats[k]; ok {
			formats[i] = fits.FixedPrecision(prec)
		} else {
			formats[i] = fits.DefaultFormat()
		}
	}
	return fits.NewKeySpec(keywords, formats...)
}
