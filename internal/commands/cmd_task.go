package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/nhle/ai-manager/internal/model"
	"github.com/nhle/ai-manager/internal/notify"
	"github.com/nhle/ai-manager/internal/store"
	"github.com/nhle/ai-manager/internal/theme"
)

// TaskCmd implements the task command group.
type TaskCmd struct {
	flags *Flags
	app   *App

	// add flags
	addDescription string
	addDue         string
	addPriority    string
	addAssignee    string
	addReminder    string
	addRecurring   string
	addNotes       string

	// list flags
	listStatus   string
	listPriority string
	listAssignee string
	listSearch   string
	listSort     string
	listOverdue  bool
	listDueSoon  bool
	listNotices  bool
}

// NewTaskCmd creates a new task command.
func NewTaskCmd(flags *Flags, app *App) *TaskCmd {
	return &TaskCmd{flags: flags, app: app}
}

// Register adds the task command to the application.
func (cmd *TaskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "task",
		Usage: "Manage tasks",
		Commands: []*cli.Command{
			cmd.addCmd(),
			cmd.listCmd(),
			cmd.doneCmd(),
			cmd.rmCmd(),
		},
	})

	return app
}

func (cmd *TaskCmd) addCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "aimanager task add <name> [options]",
		Description: `Creates a task. Omitted fields fall back to defaults
(pending status, medium priority, no due date).

Examples:
  aimanager task add "Write release notes"
  aimanager task add "Deploy staging" --due 2026-09-05 --priority high`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "task description",
				Destination: &cmd.addDescription,
			},
			&cli.StringFlag{
				Name:        "due",
				Usage:       "due date (YYYY-MM-DD)",
				Destination: &cmd.addDue,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "priority (low, medium, high, urgent)",
				Destination: &cmd.addPriority,
			},
			&cli.StringFlag{
				Name:        "assignee",
				Aliases:     []string{"a"},
				Usage:       "assignee name",
				Destination: &cmd.addAssignee,
			},
			&cli.StringFlag{
				Name:        "reminder",
				Usage:       "reminder label",
				Destination: &cmd.addReminder,
			},
			&cli.StringFlag{
				Name:        "recurring",
				Usage:       "recurrence (none, daily, weekly, monthly)",
				Destination: &cmd.addRecurring,
			},
			&cli.StringFlag{
				Name:        "notes",
				Usage:       "free-form notes",
				Destination: &cmd.addNotes,
			},
		},
		Action: cmd.runAdd,
	}
}

func (cmd *TaskCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List tasks",
		UsageText: "aimanager task list [filters] [--sort <key>]",
		Description: `Lists tasks, optionally filtered and sorted.

Filters combine with the listing, not with each other: the first
matching filter flag wins in the order status, priority, assignee,
search, overdue, due-soon.

Examples:
  aimanager task list
  aimanager task list --status pending --sort due_date
  aimanager task list --search deploy`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "status",
				Aliases:     []string{"s"},
				Usage:       "filter by status (pending, in-progress, completed, on-hold)",
				Destination: &cmd.listStatus,
			},
			&cli.StringFlag{
				Name:        "priority",
				Aliases:     []string{"p"},
				Usage:       "filter by priority (low, medium, high, urgent)",
				Destination: &cmd.listPriority,
			},
			&cli.StringFlag{
				Name:        "assignee",
				Aliases:     []string{"a"},
				Usage:       "filter by assignee",
				Destination: &cmd.listAssignee,
			},
			&cli.StringFlag{
				Name:        "search",
				Usage:       "case-insensitive search over name, description and assignee",
				Destination: &cmd.listSearch,
			},
			&cli.StringFlag{
				Name:        "sort",
				Usage:       "sort key (due_date, priority, status, assigned_to)",
				Destination: &cmd.listSort,
			},
			&cli.BoolFlag{
				Name:        "overdue",
				Usage:       "only overdue tasks",
				Destination: &cmd.listOverdue,
			},
			&cli.BoolFlag{
				Name:        "due-soon",
				Usage:       "only tasks due within 24 hours",
				Destination: &cmd.listDueSoon,
			},
			&cli.BoolFlag{
				Name:        "notices",
				Usage:       "append overdue and due-soon notices after the list",
				Destination: &cmd.listNotices,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *TaskCmd) doneCmd() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark a task completed",
		UsageText: "aimanager task done <id>",
		Action:    cmd.runDone,
	}
}

func (cmd *TaskCmd) rmCmd() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Remove a task",
		UsageText: "aimanager task rm <id>",
		Action:    cmd.runRemove,
	}
}

func (cmd *TaskCmd) runAdd(ctx context.Context, c *cli.Command) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("task name is required")
	}

	task := model.Task{
		Name:        name,
		Description: cmd.addDescription,
		Priority:    cmd.addPriority,
		AssignedTo:  cmd.addAssignee,
		Reminder:    cmd.addReminder,
		Recurring:   cmd.addRecurring,
		Notes:       cmd.addNotes,
	}

	if cmd.addDue != "" {
		due, err := time.ParseInLocation("2006-01-02", cmd.addDue, time.UTC)
		if err != nil {
			return fmt.Errorf("invalid due date %q: expected YYYY-MM-DD", cmd.addDue)
		}
		task.DueDate = &due
	}

	if task.Priority != "" && !model.ValidPriority(task.Priority) {
		return fmt.Errorf("invalid priority %q: must be one of low, medium, high, urgent", task.Priority)
	}

	created, err := cmd.app.Tasks.Add(ctx, task)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Added task %s\n", created.ID)
	return nil
}

func (cmd *TaskCmd) runList(ctx context.Context, c *cli.Command) error {
	switch cmd.listSort {
	case "", store.SortByDueDate, store.SortByPriority, store.SortByStatus, store.SortByAssignee:
	default:
		return fmt.Errorf("invalid sort key %q: must be one of due_date, priority, status, assigned_to", cmd.listSort)
	}

	tasks := cmd.selectTasks()

	w := c.Root().Writer
	if len(tasks) == 0 {
		fmt.Fprintln(w, theme.HelpStyle.Render("No tasks"))
	}

	now := time.Now().UTC()
	for _, task := range tasks {
		printTask(w, task, now)
	}

	if cmd.listNotices {
		watcher := notify.New(cmd.app.Tasks, cmd.app.Actions, 0)
		for _, notice := range watcher.Scan() {
			style := theme.InfoStyle
			if notice.Level == notify.LevelWarning {
				style = theme.WarningStyle
			}
			fmt.Fprintf(w, "%s: %s\n", style.Render(notice.Title), notice.Message)
		}
	}

	return nil
}

func (cmd *TaskCmd) selectTasks() []model.Task {
	tasks := cmd.app.Tasks

	var selected []model.Task
	switch {
	case cmd.listStatus != "":
		selected = tasks.ByStatus(cmd.listStatus)
	case cmd.listPriority != "":
		selected = tasks.ByPriority(cmd.listPriority)
	case cmd.listAssignee != "":
		selected = tasks.ByAssignee(cmd.listAssignee)
	case cmd.listSearch != "":
		selected = tasks.Search(cmd.listSearch)
	case cmd.listOverdue:
		selected = tasks.Overdue()
	case cmd.listDueSoon:
		selected = tasks.DueSoon()
	default:
		selected = tasks.All()
	}

	if cmd.listSort != "" {
		sorted := tasks.Sorted(cmd.listSort)

		keep := make(map[string]bool, len(selected))
		for _, task := range selected {
			keep[task.ID] = true
		}

		selected = selected[:0]
		for _, task := range sorted {
			if keep[task.ID] {
				selected = append(selected, task)
			}
		}
	}

	return selected
}

func (cmd *TaskCmd) runDone(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("task id is required")
	}

	if err := cmd.app.Tasks.MarkCompleted(ctx, id); err != nil {
		return fmt.Errorf("complete task: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Completed task %s\n", id)
	return nil
}

func (cmd *TaskCmd) runRemove(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("task id is required")
	}

	if err := cmd.app.Tasks.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove task: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Removed task %s\n", id)
	return nil
}

func printTask(w io.Writer, task model.Task, now time.Time) {
	marker := ""
	switch {
	case task.IsOverdue(now):
		marker = " " + theme.WarningStyle.Render("overdue")
	case task.IsDueSoon(now):
		marker = " " + theme.InfoStyle.Render("due soon")
	}

	fmt.Fprintf(w, "%s  %s  %s  %s  %s%s\n",
		theme.DimStyle.Render(shortID(task.ID)),
		theme.StatusStyle(task.Status).Render(task.Status),
		theme.PriorityStyle(task.Priority).Render(task.Priority),
		task.Name,
		theme.DimStyle.Render(task.FormattedDueDate()),
		marker,
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
