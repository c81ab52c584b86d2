package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/nhle/ai-manager/internal/commands"
	"github.com/nhle/ai-manager/internal/logutils"
	"github.com/nhle/ai-manager/internal/model"
	"github.com/nhle/ai-manager/internal/parser"
	"github.com/nhle/ai-manager/internal/store"
)

var (
	// Build information. Populated at build-time via -ldflags.
	version = "dev"
	commit  = "HEAD"
)

func build() string {
	v, c := version, commit

	// When installed via `go install`, ldflags aren't set. Fall back to
	// runtime/debug.BuildInfo which Go populates with module metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s)", v, short)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}
	app := &commands.App{}

	root := &cli.Command{
		Name:      "aimanager",
		Usage:     "Convert free text into tasks and reminders",
		UsageText: "aimanager [global options] command [command options]",
		Description: `aimanager keeps a single user profile with tasks, reminders and
calendar events, and converts free-form text into actionable items.

Examples:
  aimanager convert "Remember to call mom tomorrow"
  aimanager task list --sort due_date
  aimanager watch`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal)",
				Sources:     cli.EnvVars("AIMANAGER_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("AIMANAGER_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("AIMANAGER_CONFIG"),
				Value:       model.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := model.LoadConfig(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			app.Config = *cfg

			kv, err := store.NewKV(cfg.Storage.Path)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}
			app.KV = kv

			app.Profile = store.NewProfileStore(kv)
			if err := app.Profile.Load(ctx); err != nil {
				return ctx, fmt.Errorf("load profile: %w", err)
			}

			app.Tasks = store.NewTaskStore(app.Profile)
			app.Actions = store.NewActionStore(app.Profile)
			app.Parser = parser.New()

			log.Debug().Str("db", cfg.Storage.Path).Msg("stores ready")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if app.KV != nil {
				if err := app.KV.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	root = commands.NewProfileCmd(flags, app).Register(root)
	root = commands.NewTaskCmd(flags, app).Register(root)
	root = commands.NewConvertCmd(flags, app).Register(root)
	root = commands.NewActionsCmd(flags, app).Register(root)
	root = commands.NewWatchCmd(flags, app).Register(root)

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
