package cli

import (
	"context"

	"github.com/calvinalkan/taskboard/internal/task"
)

func cmdLs(s *Session) *Command {
	fs := newFlagSet("ls")
	status := fs.String("status", "", "Filter by status (Pending, In Progress, Completed or all)")
	search := fs.String("search", "", "Case-insensitive text search")
	assignee := fs.String("assignee", "", "Filter by assignee")
	category := fs.String("category", "", "Filter by category")
	sortKey := fs.String("sort", "", "Sort by dueDate, priority, status, assignee or title")

	return &Command{
		Flags: fs,
		Usage: "ls [flags]",
		Short: "List tasks",
		Long: `List tasks matching the current filter, in the current sort order.
Flags override the shell's filter and sort for this call only.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			f := s.filter
			key := s.sort

			if fs.Changed("status") {
				f.Status = string(parseStatus(*status))
			}

			if fs.Changed("search") {
				f.Search = *search
			}

			if fs.Changed("assignee") {
				f.Assignee = *assignee
			}

			if fs.Changed("category") {
				f.Category = *category
			}

			if fs.Changed("sort") {
				parsed, err := task.ParseSortKey(*sortKey)
				if err != nil {
					return err
				}

				key = parsed
			}

			printTasks(o, s.view(f, key))

			return nil
		},
	}
}

func cmdShow(s *Session) *Command {
	return &Command{
		Flags: newFlagSet("show"),
		Usage: "show <id>",
		Short: "Show task details",
		Exec: func(_ context.Context, o *IO, args []string) error {
			id, err := requireID(args)
			if err != nil {
				return err
			}

			t, err := s.store.Get(id)
			if err != nil {
				return err
			}

			printTask(o, &t)

			return nil
		},
	}
}

func cmdAssignees(s *Session) *Command {
	return &Command{
		Flags: newFlagSet("assignees"),
		Usage: "assignees",
		Short: "List distinct assignees",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			for _, name := range task.Assignees(s.store.Snapshot()) {
				o.Println(name)
			}

			return nil
		},
	}
}

func cmdCategories(s *Session) *Command {
	return &Command{
		Flags: newFlagSet("categories"),
		Usage: "categories",
		Short: "List distinct categories",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			for _, name := range task.Categories(s.store.Snapshot()) {
				o.Println(name)
			}

			return nil
		},
	}
}
