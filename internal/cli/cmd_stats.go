package cli

import (
	"context"

	"github.com/calvinalkan/taskboard/internal/task"
)

func cmdStats(s *Session) *Command {
	return &Command{
		Flags: newFlagSet("stats"),
		Usage: "stats",
		Short: "Show task counts and completion rate",
		Long: `Show counts over the whole board, ignoring the current filter.
Overdue counts tasks due before today that are not completed.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			st := task.ComputeStats(s.store.Snapshot(), s.now())

			o.Printf("total: %d\n", st.Total)
			o.Printf("pending: %d\n", st.Pending)
			o.Printf("in progress: %d\n", st.InProgress)
			o.Printf("completed: %d\n", st.Completed)
			o.Printf("overdue: %d\n", st.Overdue)
			o.Printf("completion rate: %d%%\n", st.CompletionRate)

			return nil
		},
	}
}

func cmdHigh(s *Session) *Command {
	return &Command{
		Flags: newFlagSet("high"),
		Usage: "high",
		Short: "List open high-priority tasks",
		Long:  "List up to 5 High priority tasks that are not completed, in board order.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			printTasks(o, task.HighPriority(s.store.Snapshot()))

			return nil
		},
	}
}
