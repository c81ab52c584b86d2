package commands

import (
	"github.com/nhle/ai-manager/internal/model"
	"github.com/nhle/ai-manager/internal/parser"
	"github.com/nhle/ai-manager/internal/store"
)

// Flags holds the global CLI flags shared by all commands.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
}

// App holds the wired services. Populated in the Before hook and
// available to all commands.
type App struct {
	Config  model.AppConfig
	KV      *store.KV
	Profile *store.ProfileStore
	Tasks   *store.TaskStore
	Actions *store.ActionStore
	Parser  *parser.Parser
}
