package cli

import (
	"context"
	"strings"

	"github.com/calvinalkan/taskboard/internal/task"
)

func cmdAdd(s *Session) *Command {
	fs := newFlagSet("add")
	description := fs.StringP("description", "d", "", "Description text")
	assignee := fs.StringP("assignee", "a", "", "Assignee (required)")
	category := fs.StringP("category", "c", "", "Category")
	priority := fs.StringP("priority", "p", string(task.DefaultPriority), "High, Medium or Low")
	status := fs.StringP("status", "s", string(task.DefaultStatus), "Pending, In Progress or Completed")
	due := fs.StringP("due", "D", "", "Due date YYYY-MM-DD (required)")

	return &Command{
		Flags:     fs,
		Usage:     "add <title> -a <assignee> -D <date> [flags]",
		Short:     "Add a task",
		ShellOnly: true,
		Long: `Add a task and print its ID. Words after the flags are joined
into the title, so quoting is optional.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			created, err := s.store.Add(task.TaskInput{
				Title:       strings.Join(args, " "),
				Description: *description,
				Assignee:    *assignee,
				Category:    *category,
				Priority:    parsePriority(*priority),
				Status:      parseStatus(*status),
				DueDate:     *due,
			})
			if err != nil {
				return err
			}

			o.Println("Added", created.ID)
			s.printSummary(o)

			return nil
		},
	}
}

func cmdEdit(s *Session) *Command {
	fs := newFlagSet("edit")
	title := fs.String("title", "", "New title")
	description := fs.String("description", "", "New description")
	assignee := fs.String("assignee", "", "New assignee")
	category := fs.String("category", "", "New category")
	priority := fs.String("priority", "", "New priority")
	status := fs.String("status", "", "New status")
	due := fs.String("due", "", "New due date YYYY-MM-DD")

	return &Command{
		Flags:     fs,
		Usage:     "edit <id> [flags]",
		Short:     "Change fields of a task",
		ShellOnly: true,
		Long:      "Change the given fields of a task. Unset flags keep their value.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			id, err := requireID(args)
			if err != nil {
				return err
			}

			t, err := s.store.Get(id)
			if err != nil {
				return err
			}

			if fs.Changed("title") {
				t.Title = *title
			}

			if fs.Changed("description") {
				t.Description = *description
			}

			if fs.Changed("assignee") {
				t.Assignee = *assignee
			}

			if fs.Changed("category") {
				t.Category = *category
			}

			if fs.Changed("priority") {
				t.Priority = parsePriority(*priority)
			}

			if fs.Changed("status") {
				t.Status = parseStatus(*status)
			}

			if fs.Changed("due") {
				t.DueDate = *due
			}

			if err := s.store.Update(t); err != nil {
				return err
			}

			o.Println("Updated", t.ID)
			s.printSummary(o)

			return nil
		},
	}
}
