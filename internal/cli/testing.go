package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CLI runs taskboard in-process against a temp working directory.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI returns a CLI rooted in t.TempDir(). HOME points inside it, so
// neither the user's global config nor their shell history is touched.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()

	return &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{"HOME": filepath.Join(dir, "home")},
	}
}

// Run executes taskboard with args (without the program name; --cwd is
// added) and returns stdout, stderr and the exit code.
func (r *CLI) Run(args ...string) (string, string, int) {
	return r.RunWithInput("", args...)
}

// RunWithInput is Run with stdin.
func (r *CLI) RunWithInput(stdin string, args ...string) (string, string, int) {
	return r.RunWithReader(strings.NewReader(stdin), args...)
}

// RunWithReader is Run with an arbitrary stdin, e.g. an *os.File pipe.
func (r *CLI) RunWithReader(stdin io.Reader, args ...string) (string, string, int) {
	var stdout, stderr bytes.Buffer

	argv := append([]string{"taskboard", "--cwd", r.Dir}, args...)
	code := Run(stdin, &stdout, &stderr, argv, r.Env, nil)

	return stdout.String(), stderr.String(), code
}

// HistoryFile returns the default shell history path under the test HOME.
func (r *CLI) HistoryFile() string {
	return filepath.Join(r.Env["HOME"], ".taskboard_history")
}

// Shell feeds lines to "taskboard shell" as a script.
func (r *CLI) Shell(lines ...string) (string, string, int) {
	return r.RunWithInput(strings.Join(lines, "\n")+"\n", "shell")
}

// MustRun runs args, fails the test on a non-zero exit and returns the
// trimmed stdout.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("taskboard %v: exit %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail runs args, expects a non-zero exit with empty stdout and
// returns the trimmed stderr.
func (r *CLI) MustFail(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)

	switch {
	case code == 0:
		r.t.Fatalf("taskboard %v: expected failure, got exit 0\nstdout: %s", args, stdout)
	case stdout != "":
		r.t.Fatalf("taskboard %v: failed but wrote stdout\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// WriteFile writes content to name inside Dir.
func (r *CLI) WriteFile(name, content string) {
	r.t.Helper()

	if err := os.WriteFile(filepath.Join(r.Dir, name), []byte(content), 0o600); err != nil {
		r.t.Fatalf("write %s: %v", name, err)
	}
}

// WriteTasks writes the default tasks.json.
func (r *CLI) WriteTasks(content string) {
	r.t.Helper()
	r.WriteFile("tasks.json", content)
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("missing %q in:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("unexpected %q in:\n%s", substr, content)
	}
}
