package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/calvinalkan/taskboard/internal/task"
)

const prompt = "taskboard> "

var errScriptFailed = errors.New("shell script had failing commands")

// lineReader is the part of *liner.State the shell loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// scriptReader feeds the shell from a non-terminal reader, one command per
// line, without echoing a prompt.
type scriptReader struct {
	sc *bufio.Scanner
}

func (r *scriptReader) Prompt(string) (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}

	if err := r.sc.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

func (*scriptReader) AppendHistory(string) {}

func (*scriptReader) Close() error { return nil }

func cmdShell(s *Session) *Command {
	return &Command{
		Flags:    newFlagSet("shell"),
		Usage:    "shell",
		Short:    "Start an interactive session",
		TopLevel: true,
		Long: `Start an interactive session. All commands are available, including
the ones that change tasks, the filter or the sort key. Changes live until
the session ends. Type 'help' for commands, 'exit' to leave.`,
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			sh := &shell{sess: s, o: o}

			return sh.run(ctx)
		},
	}
}

type shell struct {
	sess   *Session
	o      *IO
	liner  *liner.State // nil when reading a script
	failed int          // commands that did not succeed
}

func (sh *shell) run(ctx context.Context) error {
	in := sh.open()
	defer func() { _ = in.Close() }()

	if sh.liner != nil {
		sh.o.Printf("taskboard - %s loaded from %s\n", pluralTasks(sh.sess.store.Len()), sh.sess.cfg.TasksFileAbs)
		sh.o.Println("Type 'help' for available commands.")
	}

	defer sh.saveHistory()

	for ctx.Err() == nil {
		line, err := in.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		in.AppendHistory(line)

		if !sh.exec(ctx, line) {
			break
		}
	}

	// Interactive users saw each error as it happened. A script run is
	// judged by its exit code.
	if sh.liner == nil && sh.failed > 0 {
		return fmt.Errorf("%w: %d", errScriptFailed, sh.failed)
	}

	return nil
}

// exec runs one shell line. It returns false when the shell should exit.
func (sh *shell) exec(ctx context.Context, line string) bool {
	words, err := shellwords.Parse(line)
	if err != nil {
		sh.fail(err)

		return true
	}

	if len(words) == 0 {
		return true
	}

	switch words[0] {
	case "exit", "quit", "q":
		return false
	case "help", "?":
		sh.printHelp()

		return true
	}

	cmd := lookup(sh.sess, words[0])

	switch {
	case cmd == nil:
		sh.fail(fmt.Errorf("%w: %s (type 'help' for commands)", ErrUnknownCommand, words[0]))
	case cmd.TopLevel:
		sh.fail(fmt.Errorf("%w: %s", ErrNotInShell, words[0]))
	default:
		sub := NewIO(sh.o.out, sh.o.errOut)
		code := cmd.Run(ctx, sub, words[1:])

		if max(code, sub.Finish()) != 0 {
			sh.failed++
		}
	}

	return true
}

func (sh *shell) fail(err error) {
	sh.o.ErrPrintln("error:", err)
	sh.failed++
}

// open returns the line editor when stdin is the process's terminal and a
// script reader for anything else: pipes, files, test buffers.
func (sh *shell) open() lineReader {
	if isTerminal(sh.sess.stdin) {
		sh.liner = liner.NewLiner()
		sh.liner.SetCtrlCAborts(true)
		sh.liner.SetCompleter(sh.complete)
		sh.loadHistory()

		return sh.liner
	}

	stdin := sh.sess.stdin
	if stdin == nil {
		stdin = strings.NewReader("")
	}

	return &scriptReader{sc: bufio.NewScanner(stdin)}
}

// isTerminal reports whether r is a file attached to a terminal. Pipes and
// redirected files are not, even when they are os.Stdin.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

func (sh *shell) loadHistory() {
	path := sh.sess.cfg.HistoryFileAbs
	if path == "" {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	if _, err := sh.liner.ReadHistory(f); err != nil {
		sh.sess.log.Debug("cannot read shell history", "path", path, "error", err)
	}
}

func (sh *shell) saveHistory() {
	path := sh.sess.cfg.HistoryFileAbs
	if sh.liner == nil || path == "" {
		return
	}

	var buf bytes.Buffer

	if _, err := sh.liner.WriteHistory(&buf); err != nil {
		sh.sess.log.Warn("cannot encode shell history", "error", err)

		return
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		sh.sess.log.Warn("cannot save shell history", "path", path, "error", err)
	}
}

// complete offers command names for the first word, sort keys after
// "sort" and task IDs after commands that take them.
func (sh *shell) complete(line string) []string {
	idx := strings.LastIndexByte(line, ' ')
	if idx < 0 {
		var out []string

		for _, cmd := range commands(sh.sess) {
			if !cmd.TopLevel && strings.HasPrefix(cmd.Name(), line) {
				out = append(out, cmd.Name())
			}
		}

		return out
	}

	head, partial := line[:idx+1], line[idx+1:]

	fields := strings.Fields(head)
	if len(fields) == 0 {
		return nil
	}

	var candidates []string

	switch fields[0] {
	case "sort":
		for _, key := range task.SortKeys {
			candidates = append(candidates, string(key))
		}
	case "show", "edit", "rm", "bulk-rm", "bulk-status":
		for _, t := range sh.sess.store.Snapshot() {
			candidates = append(candidates, t.ID)
		}
	}

	var out []string

	for _, c := range candidates {
		if strings.HasPrefix(c, partial) && !slices.Contains(fields[1:], c) {
			out = append(out, head+c)
		}
	}

	return out
}

func (sh *shell) printHelp() {
	sh.o.Println("Commands:")

	for _, cmd := range commands(sh.sess) {
		if !cmd.TopLevel {
			sh.o.Println(cmd.HelpLine())
		}
	}

	sh.o.Printf("  %-34s %s\n", "help", "Show this help")
	sh.o.Printf("  %-34s %s\n", "exit", "Leave the shell")
	sh.o.Println()
	sh.o.Println("Run '<command> --help' for flags.")
}
