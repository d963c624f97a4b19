package task_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/taskboard/internal/task"
)

func viewTasks() []task.Task {
	return []task.Task{
		fixture("1", withTitle("Fix login bug"), withAssignee("alice"), withCategory("backend"),
			withPriority(task.PriorityHigh), withStatus(task.StatusPending), withDue("2024-03-01")),
		fixture("2", withTitle("Design landing page"), withAssignee("bob"), withCategory("frontend"),
			withPriority(task.PriorityLow), withStatus(task.StatusCompleted), withDue("2024-01-15")),
		fixture("3", withTitle("Update deps"), withAssignee("alice"), withCategory(""),
			withDescription("Bump the LOGGING library"),
			withPriority(task.PriorityMedium), withStatus(task.StatusInProgress), withDue("2024-02-10")),
		fixture("4", withTitle("Write release notes"), withAssignee("carol"), withCategory("docs"),
			withPriority(task.PriorityHigh), withStatus(task.StatusInProgress), withDue("2024-02-10")),
	}
}

func Test_BuildView_Filters_With_AND_Semantics_When_Fields_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter task.Filter
		want   []string
	}{
		{name: "zero filter matches all", filter: task.Filter{}, want: []string{"1", "2", "3", "4"}},
		{
			name:   "explicit all matches all",
			filter: task.Filter{Status: task.All, Assignee: task.All, Category: task.All},
			want:   []string{"1", "2", "3", "4"},
		},
		{name: "status exact", filter: task.Filter{Status: "In Progress"}, want: []string{"3", "4"}},
		{name: "status never matches unknown value", filter: task.Filter{Status: "in progress"}, want: []string{}},
		{name: "assignee exact", filter: task.Filter{Assignee: "alice"}, want: []string{"1", "3"}},
		{name: "category exact", filter: task.Filter{Category: "docs"}, want: []string{"4"}},
		{name: "search title case insensitive", filter: task.Filter{Search: "LOGIN"}, want: []string{"1"}},
		{name: "search description", filter: task.Filter{Search: "logging"}, want: []string{"3"}},
		{name: "search assignee", filter: task.Filter{Search: "car"}, want: []string{"4"}},
		{name: "search category", filter: task.Filter{Search: "front"}, want: []string{"2"}},
		{name: "search matches any field", filter: task.Filter{Search: "log"}, want: []string{"1", "3"}},
		{
			name:   "fields combine with AND",
			filter: task.Filter{Assignee: "alice", Status: "Pending", Search: "bug"},
			want:   []string{"1"},
		},
		{
			name:   "AND can exclude everything",
			filter: task.Filter{Assignee: "bob", Category: "backend"},
			want:   []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := task.BuildView(viewTasks(), tc.filter, "")

			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func Test_BuildView_Orders_By_Key_When_Sorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  task.SortKey
		want []string
	}{
		// 3 and 4 share a due date and keep input order.
		{name: "due date ascending", key: task.SortDueDate, want: []string{"2", "3", "4", "1"}},
		// 1 and 4 are both High and keep input order.
		{name: "priority descending", key: task.SortPriority, want: []string{"1", "4", "3", "2"}},
		{name: "status ascending", key: task.SortStatus, want: []string{"2", "3", "4", "1"}},
		{name: "assignee ascending", key: task.SortAssignee, want: []string{"1", "3", "2", "4"}},
		{name: "title ascending", key: task.SortTitle, want: []string{"2", "1", "3", "4"}},
		{name: "unknown key keeps input order", key: "colour", want: []string{"1", "2", "3", "4"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := task.BuildView(viewTasks(), task.Filter{}, tc.key)

			assert.Equal(t, tc.want, ids(got))
		})
	}
}

// Contract: missing due dates sort first (as the epoch) and unknown priorities sort last.
func Test_BuildView_Handles_Missing_Values_When_Sorting(t *testing.T) {
	t.Parallel()

	tasks := []task.Task{
		fixture("1", withDue("2024-01-01"), withPriority("Whenever")),
		fixture("2", withDue(""), withPriority(task.PriorityLow)),
		fixture("3", withDue("not a date"), withPriority(task.PriorityHigh)),
	}

	assert.Equal(t, []string{"2", "3", "1"}, ids(task.BuildView(tasks, task.Filter{}, task.SortDueDate)))
	assert.Equal(t, []string{"3", "2", "1"}, ids(task.BuildView(tasks, task.Filter{}, task.SortPriority)))
}

// Contract: string keys use locale-aware collation, not byte order.
func Test_BuildView_Uses_Collation_When_Sorting_Strings(t *testing.T) {
	t.Parallel()

	tasks := []task.Task{
		fixture("1", withTitle("Zebra")),
		fixture("2", withTitle("apple")),
		fixture("3", withTitle("Émile")),
		fixture("4", withTitle("Banana")),
	}

	got := task.BuildView(tasks, task.Filter{}, task.SortTitle)

	assert.Equal(t, []string{"2", "4", "3", "1"}, ids(got))
}

// Contract: the sort is stable; equal keys keep their relative input order.
func Test_BuildView_Is_Stable_When_All_Keys_Equal(t *testing.T) {
	t.Parallel()

	tasks := make([]task.Task, 0, 30)
	for _, id := range []string{"9", "4", "17", "2", "30", "11", "5", "23", "8", "1"} {
		tasks = append(tasks, fixture(id, withTitle("same")))
	}

	for _, key := range task.SortKeys {
		got := task.BuildView(tasks, task.Filter{}, key)
		assert.Equal(t, ids(tasks), ids(got), "key %s reordered equal elements", key)
	}
}

// Contract: BuildView is deterministic and never mutates its input.
func Test_BuildView_Is_Deterministic_And_Pure_When_Called_Twice(t *testing.T) {
	t.Parallel()

	input := viewTasks()
	original := viewTasks()
	filter := task.Filter{Search: "e"}

	first := task.BuildView(input, filter, task.SortPriority)
	second := task.BuildView(input, filter, task.SortPriority)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("views differ (-first +second):\n%s", diff)
	}

	if diff := cmp.Diff(original, input); diff != "" {
		t.Fatalf("input mutated (-original +after):\n%s", diff)
	}

	first[0].Title = "changed"
	assert.NotEqual(t, "changed", input[0].Title, "view must be a fresh slice")
}

func Test_ParseSortKey_Rejects_Unknown_When_Parsing(t *testing.T) {
	t.Parallel()

	for _, key := range task.SortKeys {
		got, err := task.ParseSortKey(string(key))
		require.NoError(t, err)
		assert.Equal(t, key, got)
	}

	_, err := task.ParseSortKey("createdDate")
	require.ErrorIs(t, err, task.ErrValidation)
}

func Test_Assignees_And_Categories_Return_Sorted_Distinct_When_Duplicates(t *testing.T) {
	t.Parallel()

	tasks := viewTasks()

	assert.Equal(t, []string{"alice", "bob", "carol"}, task.Assignees(tasks))
	assert.Equal(t, []string{"backend", "docs", "frontend"}, task.Categories(tasks))
	assert.Equal(t, []string{}, task.Categories(nil))
}
