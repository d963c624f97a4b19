package cli

import (
	"context"
	"errors"

	"github.com/calvinalkan/taskboard/internal/task"
)

var errIDsRequired = errors.New("at least one task ID is required")

func cmdRm(s *Session) *Command {
	return &Command{
		Flags:     newFlagSet("rm"),
		Usage:     "rm <id>",
		Short:     "Delete a task",
		ShellOnly: true,
		Exec: func(_ context.Context, o *IO, args []string) error {
			id, err := requireID(args)
			if err != nil {
				return err
			}

			if err := s.store.Delete(id); err != nil {
				return err
			}

			o.Println("Deleted", id)
			s.printSummary(o)

			return nil
		},
	}
}

func cmdBulkRm(s *Session) *Command {
	return &Command{
		Flags:     newFlagSet("bulk-rm"),
		Usage:     "bulk-rm <id>...",
		Short:     "Delete several tasks",
		ShellOnly: true,
		Long:      "Delete every listed task. Unknown IDs are skipped.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errIDsRequired
			}

			n := s.store.BulkDelete(args)

			o.Println("Deleted", pluralTasks(n))
			s.printSummary(o)

			return nil
		},
	}
}

func cmdBulkStatus(s *Session) *Command {
	return &Command{
		Flags:     newFlagSet("bulk-status"),
		Usage:     "bulk-status <status> <id>...",
		Short:     "Set the status of several tasks",
		ShellOnly: true,
		Long: `Set the status of every listed task. Unknown IDs are skipped.
Use quotes or a dash for "In Progress": bulk-status in-progress 1 2`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) < 2 {
				return errIDsRequired
			}

			n, err := s.store.BulkSetStatus(args[1:], parseStatus(args[0]))
			if err != nil {
				return err
			}

			o.Println("Updated", pluralTasks(n))
			s.printSummary(o)

			return nil
		},
	}
}

func cmdFilter(s *Session) *Command {
	fs := newFlagSet("filter")
	status := fs.String("status", "", "Status, or all")
	search := fs.String("search", "", "Case-insensitive text search")
	assignee := fs.String("assignee", "", "Assignee, or all")
	category := fs.String("category", "", "Category, or all")
	reset := fs.Bool("reset", false, "Clear every filter field first")

	return &Command{
		Flags:     fs,
		Usage:     "filter [flags]",
		Short:     "Set the shell's filter",
		ShellOnly: true,
		Long: `Set the filter used by ls for the rest of the shell session.
Without flags, print the current filter.`,
		Exec: func(_ context.Context, o *IO, _ []string) error {
			if *reset {
				s.filter = task.Filter{}
			}

			if fs.Changed("status") {
				s.filter.Status = string(parseStatus(*status))
			}

			if fs.Changed("search") {
				s.filter.Search = *search
			}

			if fs.Changed("assignee") {
				s.filter.Assignee = *assignee
			}

			if fs.Changed("category") {
				s.filter.Category = *category
			}

			printFilter(o, s.filter)

			return nil
		},
	}
}

func printFilter(o *IO, f task.Filter) {
	show := func(v string) string {
		if v == "" {
			return task.All
		}

		return v
	}

	o.Printf("status: %s\n", show(f.Status))
	o.Printf("search: %q\n", f.Search)
	o.Printf("assignee: %s\n", show(f.Assignee))
	o.Printf("category: %s\n", show(f.Category))
}

func cmdSort(s *Session) *Command {
	return &Command{
		Flags:     newFlagSet("sort"),
		Usage:     "sort [key]",
		Short:     "Set the shell's sort key",
		ShellOnly: true,
		Long: `Set the sort key used by ls: dueDate, priority, status, assignee
or title. Without an argument, print the current key.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				key, err := task.ParseSortKey(args[0])
				if err != nil {
					return err
				}

				s.sort = key
			}

			o.Println("sort:", s.sort)

			return nil
		},
	}
}
