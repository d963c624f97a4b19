package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/taskboard/internal/cli"
)

// board has one overdue open task (1), one completed past task (2) and one
// task due far in the future (3), so stats do not depend on today's date.
const board = `{
	// demo board
	"Tasks": [
		{"id": "1", "title": "Fix login bug", "description": "Users cannot log in", "assignee": "alice",
		 "category": "backend", "priority": "High", "status": "Pending", "dueDate": "2000-01-10", "createdDate": "2000-01-01"},
		{"id": "2", "title": "Write docs", "description": "", "assignee": "bob",
		 "category": "docs", "priority": "Low", "status": "Completed", "dueDate": "2000-02-01", "createdDate": "2000-01-01"},
		{"id": "3", "title": "Update deps", "description": "", "assignee": "alice",
		 "category": "backend", "priority": "Medium", "status": "In Progress", "dueDate": "2999-03-01", "createdDate": "2000-01-01"},
	],
}`

func newBoard(t *testing.T) *cli.CLI {
	t.Helper()

	c := cli.NewCLI(t)
	c.WriteTasks(board)

	return c
}

func lineIDs(out string) []string {
	var ids []string

	for line := range strings.Lines(strings.TrimSpace(out)) {
		id, _, _ := strings.Cut(line, " ")
		ids = append(ids, id)
	}

	return ids
}

func Test_Ls_Lists_Tasks_By_Due_Date_When_No_Flags(t *testing.T) {
	t.Parallel()

	c := newBoard(t)

	out := c.MustRun("ls")

	assert.Equal(t, []string{"1", "2", "3"}, lineIDs(out))
	cli.AssertContains(t, out, "1 [Pending] High due 2000-01-10 @alice - Fix login bug #backend")
}

func Test_Ls_Applies_Filters_And_Sort_When_Flags_Given(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "priority sort", args: []string{"--sort", "priority"}, want: []string{"1", "3", "2"}},
		{name: "title sort", args: []string{"--sort=title"}, want: []string{"1", "3", "2"}},
		{name: "status exact", args: []string{"--status", "In Progress"}, want: []string{"3"}},
		{name: "status loose spelling", args: []string{"--status", "in-progress"}, want: []string{"3"}},
		{name: "status all", args: []string{"--status", "all"}, want: []string{"1", "2", "3"}},
		{name: "search is case-insensitive", args: []string{"--search", "DOCS"}, want: []string{"2"}},
		{name: "search matches description", args: []string{"--search", "log in"}, want: []string{"1"}},
		{name: "assignee", args: []string{"--assignee", "alice"}, want: []string{"1", "3"}},
		{name: "filters combine", args: []string{"--assignee", "alice", "--category", "backend", "--status", "Pending"}, want: []string{"1"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newBoard(t)
			out := c.MustRun(append([]string{"ls"}, tc.args...)...)

			assert.Equal(t, tc.want, lineIDs(out))
		})
	}
}

func Test_Ls_Prints_Nothing_When_Filter_Matches_None(t *testing.T) {
	t.Parallel()

	c := newBoard(t)

	assert.Empty(t, c.MustRun("ls", "--assignee", "nobody"))
}

func Test_Ls_Fails_When_Sort_Key_Unknown(t *testing.T) {
	t.Parallel()

	c := newBoard(t)

	stderr := c.MustFail("ls", "--sort", "createdDate")
	cli.AssertContains(t, stderr, "sortKey=invalid_sort_key")
}

func Test_Stats_Counts_Whole_Board_When_Run(t *testing.T) {
	t.Parallel()

	c := newBoard(t)

	out := c.MustRun("stats")

	assert.Equal(t, strings.Join([]string{
		"total: 3",
		"pending: 1",
		"in progress: 1",
		"completed: 1",
		"overdue: 1",
		"completion rate: 33%",
	}, "\n"), out)
}

func Test_High_Lists_Only_Open_High_Priority_Tasks(t *testing.T) {
	t.Parallel()

	c := newBoard(t)

	assert.Equal(t, []string{"1"}, lineIDs(c.MustRun("high")))
}

func Test_Show_Prints_Task_Fields_When_ID_Exists(t *testing.T) {
	t.Parallel()

	c := newBoard(t)

	out := c.MustRun("show", "1")

	cli.AssertContains(t, out, "id: 1")
	cli.AssertContains(t, out, "title: Fix login bug")
	cli.AssertContains(t, out, "status: Pending")
	cli.AssertContains(t, out, "category: backend")
	cli.AssertContains(t, out, "Users cannot log in")
}

func Test_Show_Fails_When_ID_Missing_Or_Unknown(t *testing.T) {
	t.Parallel()

	c := newBoard(t)

	cli.AssertContains(t, c.MustFail("show"), cli.ErrIDRequired.Error())
	cli.AssertContains(t, c.MustFail("show", "99"), "task not found: 99")
}

func Test_Assignees_And_Categories_Print_Distinct_Sorted_Values(t *testing.T) {
	t.Parallel()

	c := newBoard(t)

	assert.Equal(t, "alice\nbob", c.MustRun("assignees"))
	assert.Equal(t, "backend\ndocs", c.MustRun("categories"))
}

// Contract: without persistence, one-shot mutations would be silently lost,
// so they are refused outside the shell.
func Test_Mutating_Commands_Fail_When_Run_Outside_Shell(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"add", "New", "-a", "carol", "-D", "2999-01-01"},
		{"edit", "1", "--title", "x"},
		{"rm", "1"},
		{"bulk-rm", "1", "2"},
		{"bulk-status", "Completed", "1"},
		{"filter", "--status", "Pending"},
		{"sort", "title"},
	} {
		c := newBoard(t)

		stderr := c.MustFail(args...)
		cli.AssertContains(t, stderr, "only available in the shell")
	}
}

func Test_Run_Starts_Empty_When_Tasks_File_Missing(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	assert.Empty(t, c.MustRun("ls"))
	cli.AssertContains(t, c.MustRun("stats"), "total: 0")
}

func Test_Run_Warns_And_Starts_Empty_When_Tasks_File_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "malformed", content: `{"Tasks": [`, want: "tasks=malformed"},
		{name: "duplicate id", content: `[
			{"id": "1", "title": "a", "assignee": "x", "priority": "Low", "status": "Pending", "dueDate": "2000-01-01", "createdDate": "2000-01-01"},
			{"id": "1", "title": "b", "assignee": "x", "priority": "Low", "status": "Pending", "dueDate": "2000-01-01", "createdDate": "2000-01-01"}
		]`, want: "id=duplicate"},
		{name: "bad status", content: `[
			{"id": "1", "title": "a", "assignee": "x", "priority": "Low", "status": "Done", "dueDate": "2000-01-01", "createdDate": "2000-01-01"}
		]`, want: "status=invalid_status"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			c.WriteTasks(tc.content)

			stdout, stderr, code := c.Run("stats")

			assert.Equal(t, 1, code, "warnings set the exit code")
			cli.AssertContains(t, stdout, "total: 0")
			cli.AssertContains(t, stderr, "warning:")
			cli.AssertContains(t, stderr, tc.want)
			cli.AssertContains(t, stderr, "starting with an empty board")
		})
	}
}

func Test_Run_Reads_Other_File_When_Tasks_File_Flag_Set(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile("other.json", `[{"id": "7", "title": "Elsewhere", "assignee": "dana",
		"priority": "High", "status": "Pending", "dueDate": "2999-01-01", "createdDate": "2000-01-01"}]`)

	out := c.MustRun("--tasks-file", "other.json", "ls")

	assert.Equal(t, []string{"7"}, lineIDs(out))
}

func Test_Run_Logs_Load_When_Log_Level_Info(t *testing.T) {
	t.Parallel()

	c := newBoard(t)

	_, stderr, code := c.Run("--log-level=info", "stats")

	require.Equal(t, 0, code)
	cli.AssertContains(t, stderr, "tasks file loaded")
	cli.AssertContains(t, stderr, "count=3")
}

func Test_Run_Fails_When_Global_Flag_Invalid(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	cli.AssertContains(t, c.MustFail("--bogus", "ls"), "unknown flag: --bogus")
	cli.AssertContains(t, c.MustFail("--tasks-file"), "flag requires an argument")
	cli.AssertContains(t, c.MustFail("nope"), "unknown command: nope")
	cli.AssertContains(t, c.MustFail("--log-level", "loud", "ls"), "invalid log level")
}

func Test_Run_Prints_Usage_When_Help_Requested(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	out := c.MustRun("--help")

	cli.AssertContains(t, out, "Usage: taskboard")
	cli.AssertContains(t, out, "bulk-status <status> <id>...")
	cli.AssertContains(t, out, "(shell)")
}

func Test_Command_Prints_Help_When_Help_Flag_Given(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	out := c.MustRun("ls", "--help")

	cli.AssertContains(t, out, "Usage: taskboard ls [flags]")
	cli.AssertContains(t, out, "--sort")
}

func Test_PrintConfig_Shows_Defaults_When_No_Config(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)

	out := c.MustRun("print-config")

	cli.AssertContains(t, out, `"tasks_file": "tasks.json"`)
	cli.AssertContains(t, out, "(using defaults only)")
}

func Test_PrintConfig_Shows_Project_Source_When_Config_Present(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteFile(".taskboard.json", `{"default_sort": "priority", /* trailing comma ok */}`)

	out := c.MustRun("print-config")

	cli.AssertContains(t, out, `"default_sort": "priority"`)
	cli.AssertContains(t, out, "#   project:")
}
