package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/nhle/ai-manager/internal/model"
	"github.com/nhle/ai-manager/internal/theme"
)

// ActionsCmd implements the actions command group.
type ActionsCmd struct {
	flags *Flags
	app   *App

	// list flags
	listType    string
	listOverdue bool
	listDueSoon bool
}

// NewActionsCmd creates a new actions command.
func NewActionsCmd(flags *Flags, app *App) *ActionsCmd {
	return &ActionsCmd{flags: flags, app: app}
}

// Register adds the actions command to the application.
func (cmd *ActionsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "actions",
		Usage: "Manage extracted actions",
		Commands: []*cli.Command{
			cmd.listCmd(),
			cmd.doneCmd(),
			cmd.rmCmd(),
		},
	})

	return app
}

func (cmd *ActionsCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List actions",
		UsageText: "aimanager actions list [--type <type>] [--overdue] [--due-soon]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "filter by type (task, reminder)",
				Destination: &cmd.listType,
			},
			&cli.BoolFlag{
				Name:        "overdue",
				Usage:       "only overdue actions",
				Destination: &cmd.listOverdue,
			},
			&cli.BoolFlag{
				Name:        "due-soon",
				Usage:       "only actions due within 24 hours",
				Destination: &cmd.listDueSoon,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *ActionsCmd) doneCmd() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark an action completed",
		UsageText: "aimanager actions done <id>",
		Action:    cmd.runDone,
	}
}

func (cmd *ActionsCmd) rmCmd() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Remove an action",
		UsageText: "aimanager actions rm <id>",
		Action:    cmd.runRemove,
	}
}

func (cmd *ActionsCmd) runList(ctx context.Context, c *cli.Command) error {
	actions := cmd.app.Actions

	var selected []model.Action
	switch {
	case cmd.listType == model.ActionTypeTask:
		selected = actions.Tasks()
	case cmd.listType == model.ActionTypeReminder:
		selected = actions.Reminders()
	case cmd.listType != "":
		return fmt.Errorf("invalid type %q: must be task or reminder", cmd.listType)
	case cmd.listOverdue:
		selected = actions.Overdue()
	case cmd.listDueSoon:
		selected = actions.DueSoon()
	default:
		selected = actions.All()
	}

	w := c.Root().Writer
	if len(selected) == 0 {
		fmt.Fprintln(w, theme.HelpStyle.Render("No actions"))
		return nil
	}

	now := time.Now().UTC()
	for _, action := range selected {
		marker := ""
		switch {
		case action.IsOverdue(now):
			marker = " " + theme.WarningStyle.Render("overdue")
		case action.IsDueSoon(now):
			marker = " " + theme.InfoStyle.Render("due soon")
		}

		fmt.Fprintf(w, "%s  %-9s  %-8s  %s  due %s%s\n",
			theme.DimStyle.Render(shortID(action.ID)),
			theme.StatusStyle(action.Status).Render(action.Status),
			action.Type,
			action.TaskName,
			theme.DimStyle.Render(action.FormattedDueDate()),
			marker,
		)
	}

	return nil
}

func (cmd *ActionsCmd) runDone(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("action id is required")
	}

	if err := cmd.app.Actions.Complete(ctx, id); err != nil {
		return fmt.Errorf("complete action: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Completed action %s\n", id)
	return nil
}

func (cmd *ActionsCmd) runRemove(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("action id is required")
	}

	if err := cmd.app.Actions.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove action: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Removed action %s\n", id)
	return nil
}
