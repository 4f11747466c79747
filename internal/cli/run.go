package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexrudy/observer/internal/config"
)

// Run is the main entry point. Returns exit code.
func Run(ctx context.Context, stdin io.Reader, out, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		o.Errorf("%v", err)
		return 1
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		Env:             env,
	})
	if err != nil {
		o.Errorf("%v", err)
		return 1
	}

	cmds := commands(&cfg, stdin)

	if len(flags.remaining) == 0 {
		printUsage(o, cmds)
		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == "--help" || name == "help" {
		printUsage(o, cmds)
		return 0
	}

	for _, cmd := range cmds {
		if cmd.Name() == name {
			return cmd.Run(ctx, o, flags.remaining[1:])
		}
	}

	o.Errorf("unknown command: %s", name)
	printUsage(o, cmds)
	return 1
}

func commands(cfg *config.Config, stdin io.Reader) []*Command {
	return []*Command{
		GroupCmd(cfg),
		LogCmd(cfg),
		ListCmd(cfg),
		InfoCmd(cfg),
		HeadCmd(cfg),
		InspectCmd(cfg, stdin),
	}
}

func printUsage(o *IO, cmds []*Command) {
	o.Println("Usage: po [global flags] <command> [args]")
	o.Println()
	o.Println("Observing and FITS file inspection tools.")
	o.Println()
	o.Println("Commands:")
	for _, cmd := range cmds {
		o.Println(cmd.HelpLine())
	}
	o.Println()
	o.Println("Global flags:")
	o.Println("  -C, --cwd DIR      Resolve config and defaults relative to DIR")
	o.Println("  -c, --config FILE  Use FILE as the config file")
	o.Println()
	o.Println("Run 'po <command> --help' for command details.")
}

type globalFlags struct {
	workDir    string
	configPath string
	remaining  []string
}

var errFlagRequiresArg = errors.New("flag requires an argument")

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		arg := args[idx]

		target, ok := globalFlagTarget(&flags, arg)
		if !ok {
			// Not a global flag; the command and its args start here.
			flags.remaining = args[idx:]
			break
		}

		if eq := strings.IndexByte(arg, '='); eq >= 0 {
			*target = arg[eq+1:]
			idx++
			continue
		}

		if idx+1 >= len(args) {
			return globalFlags{}, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}
		*target = args[idx+1]
		idx += 2
	}

	return flags, nil
}

// globalFlagTarget maps a flag token to the field it sets.
func globalFlagTarget(flags *globalFlags, arg string) (*string, bool) {
	name := arg
	if eq := strings.IndexByte(arg, '='); eq >= 0 {
		name = arg[:eq]
	}
	switch name {
	case "-C", "--cwd":
		return &flags.workDir, true
	case "-c", "--config":
		return &flags.configPath, true
	}
	return nil, false
}
