package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/nhle/ai-manager/internal/theme"
)

// ConvertCmd implements the convert command: free text in, actions out.
type ConvertCmd struct {
	flags *Flags
	app   *App

	dryRun bool
}

// NewConvertCmd creates a new convert command.
func NewConvertCmd(flags *Flags, app *App) *ConvertCmd {
	return &ConvertCmd{flags: flags, app: app}
}

// Register adds the convert command to the application.
func (cmd *ConvertCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "convert",
		Usage:     "Convert free text into actions",
		UsageText: "aimanager convert <text>",
		Description: `Splits the text into sentences and extracts an action from each:
a due date, an optional time of day, and whether the sentence is a
reminder or a task. The raw text and the extracted actions are saved
to the profile.

Examples:
  aimanager convert "Remember to call mom tomorrow. Meeting at 2pm."
  aimanager convert --dry-run "Submit the report by friday"`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "print extracted actions without saving",
				Destination: &cmd.dryRun,
			},
		},
		Action: cmd.runConvert,
	})

	return app
}

func (cmd *ConvertCmd) runConvert(ctx context.Context, c *cli.Command) error {
	text := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text is required")
	}

	actions := cmd.app.Parser.Parse(text)
	if len(actions) == 0 {
		fmt.Fprintln(c.Root().Writer, theme.HelpStyle.Render("No actions found"))
		return nil
	}

	if !cmd.dryRun {
		if _, err := cmd.app.Profile.AddTextInput(ctx, text); err != nil {
			return fmt.Errorf("save text input: %w", err)
		}
		if err := cmd.app.Actions.AddAll(ctx, actions); err != nil {
			return fmt.Errorf("save actions: %w", err)
		}
		log.Debug().Int("count", len(actions)).Msg("convert: saved actions")
	}

	w := c.Root().Writer
	for _, action := range actions {
		fmt.Fprintf(w, "%s  %-8s  %s  due %s, %s\n",
			theme.DimStyle.Render(shortID(action.ID)),
			action.Type,
			action.TaskName,
			action.FormattedDueDate(),
			action.FormattedReminder(),
		)
	}

	return nil
}
