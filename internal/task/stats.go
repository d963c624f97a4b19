package task

import (
	"math"
	"time"
)

// HighPriorityLimit caps the number of tasks returned by [HighPriority].
const HighPriorityLimit = 5

// Stats summarizes a task sequence.
type Stats struct {
	Total          int `json:"total"`
	Pending        int `json:"pending"`
	InProgress     int `json:"inProgress"`
	Completed      int `json:"completed"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completionRate"` // percent, 0-100
}

// ComputeStats counts tasks by status and overdue state.
//
// A task is overdue when it is not completed and its due date falls before
// the start of now's calendar day (in now's location). Tasks with a missing or
// unparseable due date are never overdue. CompletionRate is completed/total
// as a percentage rounded to the nearest integer, and 0 for an empty input.
func ComputeStats(tasks []Task, now time.Time) Stats {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var stats Stats

	stats.Total = len(tasks)

	for i := range tasks {
		t := &tasks[i]

		switch t.Status {
		case StatusPending:
			stats.Pending++
		case StatusInProgress:
			stats.InProgress++
		case StatusCompleted:
			stats.Completed++
		}

		if t.Status == StatusCompleted {
			continue
		}

		if due, ok := parseDate(t.DueDate, now.Location()); ok && due.Before(today) {
			stats.Overdue++
		}
	}

	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}

	return stats
}

// HighPriority returns up to [HighPriorityLimit] tasks that are High priority
// and not completed, in input order.
func HighPriority(tasks []Task) []Task {
	out := make([]Task, 0, HighPriorityLimit)

	for i := range tasks {
		if len(out) == HighPriorityLimit {
			break
		}

		if tasks[i].Priority == PriorityHigh && tasks[i].Status != StatusCompleted {
			out = append(out, tasks[i])
		}
	}

	return out
}
