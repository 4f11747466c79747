package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexrudy/observer/internal/cli"
	"github.com/alexrudy/observer/internal/fits"
	"github.com/alexrudy/observer/internal/fitstest"
)

// result captures one CLI invocation.
type result struct {
	code   int
	stdout string
	stderr string
}

func (r result) contains(t *testing.T, want string) {
	t.Helper()
	if !strings.Contains(r.stdout, want) {
		t.Errorf("stdout missing %q:\n%s", want, r.stdout)
	}
}

// run invokes po with dir as the working directory, an empty environment,
// and the given stdin text.
func run(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()

	var out, errOut bytes.Buffer
	var in io.Reader
	if stdin != "" {
		in = strings.NewReader(stdin)
	}
	argv := append([]string{"po", "--cwd", dir}, args...)
	code := cli.Run(context.Background(), in, &out, &errOut, argv, map[string]string{})
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

// writeScience writes three FITS files with FILTER values H, H, K and
// returns the glob matching them.
func writeScience(t *testing.T, dir string) string {
	t.Helper()
	for i, filter := range []string{"H", "H", "K"} {
		fitstest.WriteFITS(t, filepath.Join(dir, sciName(i)),
			fits.Card{Name: "FILTER", Value: filter},
			fits.Card{Name: "OBJECT", Value: "M1"},
		)
	}
	return filepath.Join(dir, "n*.fits")
}

func sciName(i int) string {
	return fmt.Sprintf("n%04d.fits", i+1)
}
