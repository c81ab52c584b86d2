package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nhle/ai-manager/internal/store"
	"github.com/nhle/ai-manager/internal/theme"
)

// ProfileCmd implements the profile command group.
type ProfileCmd struct {
	flags *Flags
	app   *App

	// set flags
	setName     string
	setEmail    string
	setBio      string
	setAvatar   string
	setTheme    string
	setTimezone string
	setAIModel  string
}

// NewProfileCmd creates a new profile command.
func NewProfileCmd(flags *Flags, app *App) *ProfileCmd {
	return &ProfileCmd{flags: flags, app: app}
}

// Register adds the profile command to the application.
func (cmd *ProfileCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "profile",
		Usage: "Show or update the user profile",
		Commands: []*cli.Command{
			cmd.showCmd(),
			cmd.setCmd(),
		},
	})

	return app
}

func (cmd *ProfileCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the stored profile",
		UsageText: "aimanager profile show",
		Action:    cmd.runShow,
	}
}

func (cmd *ProfileCmd) setCmd() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Update profile fields",
		UsageText: "aimanager profile set [--name <name>] [--email <email>] ...",
		Description: `Updates the given profile fields and saves the profile.

Examples:
  aimanager profile set --name "Nam Le" --email nam@example.com
  aimanager profile set --theme dark --timezone Asia/Ho_Chi_Minh`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Usage:       "display name",
				Destination: &cmd.setName,
			},
			&cli.StringFlag{
				Name:        "email",
				Usage:       "contact email",
				Destination: &cmd.setEmail,
			},
			&cli.StringFlag{
				Name:        "bio",
				Usage:       "short bio",
				Destination: &cmd.setBio,
			},
			&cli.StringFlag{
				Name:        "avatar",
				Usage:       "avatar URL",
				Destination: &cmd.setAvatar,
			},
			&cli.StringFlag{
				Name:        "theme",
				Usage:       "UI theme (light, dark)",
				Destination: &cmd.setTheme,
			},
			&cli.StringFlag{
				Name:        "timezone",
				Usage:       "IANA timezone name",
				Destination: &cmd.setTimezone,
			},
			&cli.StringFlag{
				Name:        "ai-model",
				Usage:       "preferred AI model",
				Destination: &cmd.setAIModel,
			},
		},
		Action: cmd.runSet,
	}
}

func (cmd *ProfileCmd) runShow(ctx context.Context, c *cli.Command) error {
	profile := cmd.app.Profile.Profile()
	w := c.Root().Writer

	fmt.Fprintln(w, theme.HeaderStyle.Render("Profile"))
	fmt.Fprintf(w, "Name:     %s\n", profile.Name)
	fmt.Fprintf(w, "Email:    %s\n", profile.Email)
	if profile.Bio != "" {
		fmt.Fprintf(w, "Bio:      %s\n", profile.Bio)
	}
	fmt.Fprintf(w, "Theme:    %s\n", profile.Settings.Theme)
	fmt.Fprintf(w, "Timezone: %s\n", profile.Settings.Timezone)
	fmt.Fprintf(w, "AI model: %s\n", profile.Settings.AIModel)
	fmt.Fprintln(w, theme.DimStyle.Render(fmt.Sprintf(
		"%d tasks, %d actions, %d events",
		len(profile.Tasks), len(profile.Actions), len(profile.Events),
	)))

	return nil
}

func (cmd *ProfileCmd) runSet(ctx context.Context, c *cli.Command) error {
	patch := store.ProfilePatch{}

	if c.IsSet("name") {
		patch.Name = &cmd.setName
	}
	if c.IsSet("email") {
		patch.Email = &cmd.setEmail
	}
	if c.IsSet("bio") {
		patch.Bio = &cmd.setBio
	}
	if c.IsSet("avatar") {
		patch.Avatar = &cmd.setAvatar
	}

	if c.IsSet("theme") || c.IsSet("timezone") || c.IsSet("ai-model") {
		settings := cmd.app.Profile.Profile().Settings
		if c.IsSet("theme") {
			settings.Theme = cmd.setTheme
		}
		if c.IsSet("timezone") {
			settings.Timezone = cmd.setTimezone
		}
		if c.IsSet("ai-model") {
			settings.AIModel = cmd.setAIModel
		}
		patch.Settings = &settings
	}

	if err := cmd.app.Profile.Update(ctx, patch); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	fmt.Fprintln(c.Root().Writer, "Profile updated")
	return nil
}
