package cli

import (
	"strings"

	"github.com/calvinalkan/taskboard/internal/task"
)

// formatTaskLine renders one task for list output:
//
//	3 [In Progress] High due 2024-03-01 @alice - Update deps #backend
func formatTaskLine(t *task.Task) string {
	var b strings.Builder

	b.WriteString(t.ID)
	b.WriteString(" [")
	b.WriteString(string(t.Status))
	b.WriteString("] ")
	b.WriteString(string(t.Priority))
	b.WriteString(" due ")
	b.WriteString(t.DueDate)
	b.WriteString(" @")
	b.WriteString(t.Assignee)
	b.WriteString(" - ")
	b.WriteString(t.Title)

	if t.Category != "" {
		b.WriteString(" #")
		b.WriteString(t.Category)
	}

	return b.String()
}

func printTasks(o *IO, tasks []task.Task) {
	for i := range tasks {
		o.Println(formatTaskLine(&tasks[i]))
	}
}

func printTask(o *IO, t *task.Task) {
	o.Printf("id: %s\n", t.ID)
	o.Printf("title: %s\n", t.Title)
	o.Printf("status: %s\n", t.Status)
	o.Printf("priority: %s\n", t.Priority)
	o.Printf("assignee: %s\n", t.Assignee)

	if t.Category != "" {
		o.Printf("category: %s\n", t.Category)
	}

	o.Printf("due: %s\n", t.DueDate)
	o.Printf("created: %s\n", t.CreatedDate)

	if t.Description != "" {
		o.Println()
		o.Println(t.Description)
	}
}

// normalizeEnum maps loose user spelling ("in-progress", "HIGH") onto one of
// the canonical values. Unknown input is returned unchanged so the store can
// reject it with a field error.
func normalizeEnum[T ~string](s string, values []T) T {
	loose := strings.NewReplacer("-", " ", "_", " ").Replace(s)

	for _, v := range values {
		if strings.EqualFold(loose, string(v)) {
			return v
		}
	}

	return T(s)
}

func parseStatus(s string) task.Status {
	return normalizeEnum(s, task.Statuses)
}

func parsePriority(s string) task.Priority {
	return normalizeEnum(s, task.Priorities)
}
