package task_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/taskboard/internal/task"
)

// fixedNow is 2024-07-01 15:30 UTC.
var fixedNow = time.Date(2024, time.July, 1, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fixture returns a valid task; mods adjust individual fields.
func fixture(id string, mods ...func(*task.Task)) task.Task {
	t := task.Task{
		ID:          id,
		Title:       "Task " + id,
		Description: "",
		Assignee:    "alice",
		Category:    "",
		Priority:    task.PriorityMedium,
		Status:      task.StatusPending,
		DueDate:     "2024-05-01",
		CreatedDate: "2024-01-01",
	}

	for _, mod := range mods {
		mod(&t)
	}

	return t
}

func withPriority(p task.Priority) func(*task.Task) {
	return func(t *task.Task) { t.Priority = p }
}

func withStatus(s task.Status) func(*task.Task) {
	return func(t *task.Task) { t.Status = s }
}

func withDue(d string) func(*task.Task) {
	return func(t *task.Task) { t.DueDate = d }
}

func withTitle(title string) func(*task.Task) {
	return func(t *task.Task) { t.Title = title }
}

func withAssignee(a string) func(*task.Task) {
	return func(t *task.Task) { t.Assignee = a }
}

func withCategory(c string) func(*task.Task) {
	return func(t *task.Task) { t.Category = c }
}

func withDescription(d string) func(*task.Task) {
	return func(t *task.Task) { t.Description = d }
}

// seededStore returns a Store loaded with the three-task scenario:
// 1 High/Pending, 2 Low/Completed, 3 High/In Progress.
func seededStore(t *testing.T) *task.Store {
	t.Helper()

	store := task.NewStore(task.WithClock(fixedClock))
	err := store.Load([]task.Task{
		fixture("1", withPriority(task.PriorityHigh), withStatus(task.StatusPending), withDue("2024-01-01")),
		fixture("2", withPriority(task.PriorityLow), withStatus(task.StatusCompleted), withDue("2024-06-01")),
		fixture("3", withPriority(task.PriorityHigh), withStatus(task.StatusInProgress), withDue("2024-03-01")),
	})
	require.NoError(t, err, "Load should accept the seed tasks")

	return store
}

func ids(tasks []task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}

	return out
}
