// Package task is an in-memory task collection engine.
//
// A [Store] owns the canonical, insertion-ordered collection and is the only
// writer of task data. [BuildView], [ComputeStats] and [HighPriority] are pure
// functions over a snapshot; callers recompute them after every mutation or
// filter/sort change. Nothing here is cached.
//
// Invariants:
//
//   - Task IDs are unique within a Store and are never reused by [Store.Add].
//   - Status and Priority only hold their enumerated values.
//   - Views never reorder or mutate the Store; they work on copies.
package task

import (
	"strconv"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

// Valid status values.
const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every valid status in workflow order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Priority is the urgency of a task.
type Priority string

// Valid priority values.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists every valid priority, most severe first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	return p.rank() > 0
}

// rank orders priorities by severity. Unknown values rank lowest (0).
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Defaults applied by [Store.Add] when the input leaves them empty.
const (
	DefaultPriority = PriorityMedium
	DefaultStatus   = StatusPending
)

// DateLayout is the ISO calendar date format used for DueDate and CreatedDate.
const DateLayout = "2006-01-02"

// Task is a single unit of work.
// JSON names match the load source document. CreatedDate may be empty in
// loaded records; [Store.Add] always sets it.
type Task struct {
	ID          string   `json:"id"          validate:"required,task_id"`
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description"`
	Assignee    string   `json:"assignee"    validate:"required"`
	Category    string   `json:"category"`
	Priority    Priority `json:"priority"    validate:"required,task_priority"`
	Status      Status   `json:"status"      validate:"required,task_status"`
	DueDate     string   `json:"dueDate"     validate:"required,datetime=2006-01-02"`
	CreatedDate string   `json:"createdDate" validate:"omitempty,datetime=2006-01-02"`
}

// TaskInput holds the caller-supplied fields for [Store.Add].
//
// Zero Priority and Status mean "use the default".
type TaskInput struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description"`
	Assignee    string   `json:"assignee"    validate:"required"`
	Category    string   `json:"category"`
	Priority    Priority `json:"priority"    validate:"required,task_priority"`
	Status      Status   `json:"status"      validate:"required,task_status"`
	DueDate     string   `json:"dueDate"     validate:"required,datetime=2006-01-02"`
}

// parseDate parses an ISO calendar date in loc.
func parseDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// numericID returns the integer value of a canonical positive decimal ID.
func numericID(id string) (int, bool) {
	n, err := strconv.Atoi(id)
	if err != nil || n <= 0 || strconv.Itoa(n) != id {
		return 0, false
	}

	return n, true
}
