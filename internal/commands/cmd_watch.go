package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/nhle/ai-manager/internal/notify"
	"github.com/nhle/ai-manager/internal/theme"
)

// WatchCmd implements the watch command: a live due-date monitor.
type WatchCmd struct {
	flags *Flags
	app   *App

	interval int
}

// NewWatchCmd creates a new watch command.
func NewWatchCmd(flags *Flags, app *App) *WatchCmd {
	return &WatchCmd{flags: flags, app: app}
}

// Register adds the watch command to the application.
func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Watch tasks and actions for due dates",
		UsageText: "aimanager watch [--interval <seconds>]",
		Description: `Scans tasks and actions on an interval and shows overdue and
due-soon items until interrupted. Press q to quit.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "interval",
				Aliases:     []string{"i"},
				Usage:       "scan interval in seconds",
				Destination: &cmd.interval,
			},
		},
		Action: cmd.runWatch,
	})

	return app
}

func (cmd *WatchCmd) runWatch(ctx context.Context, c *cli.Command) error {
	intervalSec := cmd.interval
	if intervalSec <= 0 {
		intervalSec = cmd.app.Config.Watch.IntervalSec
	}

	watcher := notify.New(cmd.app.Tasks, cmd.app.Actions, time.Duration(intervalSec)*time.Second)

	program := tea.NewProgram(newWatchModel(watcher))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run watch: %w", err)
	}

	return nil
}

type watchModel struct {
	watcher *notify.Watcher
	notices []notify.Notice
	scanAt  time.Time
}

func newWatchModel(watcher *notify.Watcher) watchModel {
	return watchModel{watcher: watcher}
}

func (m watchModel) Init() tea.Cmd {
	return m.watcher.Start()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notify.NoticeMsg:
		m.notices = msg.Notices
		m.scanAt = msg.ScanAt
		return m, m.watcher.WaitForNext()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.watcher.Stop()
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render("Due Date Watch"))
	b.WriteString("\n\n")

	if m.scanAt.IsZero() {
		b.WriteString(theme.HelpStyle.Render("Scanning..."))
		b.WriteString("\n")
	} else if len(m.notices) == 0 {
		b.WriteString(theme.HelpStyle.Render("Nothing due. Last scan " + m.scanAt.Format("15:04:05")))
		b.WriteString("\n")
	} else {
		for _, notice := range m.notices {
			style := theme.InfoStyle
			if notice.Level == notify.LevelWarning {
				style = theme.WarningStyle
			}
			b.WriteString(style.Render(notice.Title))
			b.WriteString(": ")
			b.WriteString(notice.Message)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(theme.DimStyle.Render("Last scan " + m.scanAt.Format("15:04:05")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("q: quit"))
	b.WriteString("\n")

	return b.String()
}
