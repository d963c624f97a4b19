package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/calvinalkan/taskboard/internal/config"
	"github.com/calvinalkan/taskboard/internal/logger"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Flag and argument errors.
var (
	ErrUnknownFlag     = errors.New("unknown flag")
	ErrFlagRequiresArg = errors.New("flag requires an argument")
	ErrIDRequired      = errors.New("task ID is required")
	ErrShellOnly       = errors.New("command only available in the shell (changes are not persisted)")
	ErrNotInShell      = errors.New("command not available in the shell")
	ErrUnknownCommand  = errors.New("unknown command")
)

// Run is the main entry point. Returns exit code.
//
// A value on sigCh cancels the context handed to commands; the shell stops
// at the next prompt.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	name := flags.remaining[0]

	if name == "-h" || name == helpFlag {
		printUsage(out)

		return 0
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride:   flags.workDir,
		ConfigPath:        flags.configPath,
		TasksFileOverride: flags.tasksFile,
		LogLevelOverride:  flags.logLevel,
		Env:               env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	o := NewIO(out, errOut)

	sess := newSession(cfg, logger.New(errOut, cfg.LogLevel), stdin)
	sess.load(o)

	cmd := lookup(sess, name)
	if cmd == nil {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", ErrUnknownCommand, name))
		printUsage(errOut)

		return 1
	}

	if cmd.ShellOnly {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", ErrShellOnly, name))

		return 1
	}

	if code := cmd.Run(ctx, o, flags.remaining[1:]); code != 0 {
		return code
	}

	return o.Finish()
}

type globalFlags struct {
	workDir    string
	configPath string
	tasksFile  string
	logLevel   string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	if after, ok := strings.CutPrefix(arg, "-C"); ok && after != "" {
		flags.workDir = after

		return consumedOne, nil
	}

	valued := []struct {
		short, long string
		dst         *string
	}{
		{short: "-C", long: "--cwd", dst: &flags.workDir},
		{short: "-c", long: "--config", dst: &flags.configPath},
		{long: "--tasks-file", dst: &flags.tasksFile},
		{long: "--log-level", dst: &flags.logLevel},
	}

	for _, v := range valued {
		if arg == v.long || (v.short != "" && arg == v.short) {
			if idx+1 >= len(args) {
				return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
			}

			*v.dst = args[idx+1]

			return consumedTwo, nil
		}

		if after, ok := strings.CutPrefix(arg, v.long+"="); ok {
			*v.dst = after

			return consumedOne, nil
		}
	}

	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", ErrUnknownFlag, arg)
	}

	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer) {
	fprintln(w, `taskboard - in-memory task board

Usage: taskboard [options] <command> [args]

Options:
  -C, --cwd <dir>          Run as if started in <dir>
  -c, --config <file>      Use specified config file
      --tasks-file <file>  Load tasks from <file>
      --log-level <level>  debug, info, warn or error

Commands:`)

	for _, cmd := range commands(&Session{}) {
		line := cmd.HelpLine()
		if cmd.ShellOnly {
			line += " (shell)"
		}

		fprintln(w, line)
	}
}
