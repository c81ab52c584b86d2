package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/nhle/ai-manager/internal/model"
	"github.com/nhle/ai-manager/internal/parser"
	"github.com/nhle/ai-manager/internal/store"
	"github.com/nhle/ai-manager/tests/testutil"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	kv := testutil.NewTestKV(t)

	profile := store.NewProfileStore(kv)
	if err := profile.Load(context.Background()); err != nil {
		t.Fatalf("load profile: %v", err)
	}

	return &App{
		KV:      kv,
		Profile: profile,
		Tasks:   store.NewTaskStore(profile),
		Actions: store.NewActionStore(profile),
		Parser:  parser.New(),
	}
}

// run builds a fresh command tree and executes one invocation. Flag
// destinations live on the command structs, so reuse across runs would
// leak parsed state.
func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	flags := &Flags{}
	root := &cli.Command{
		Name:   "aimanager",
		Writer: &buf,
	}

	root = NewProfileCmd(flags, app).Register(root)
	root = NewTaskCmd(flags, app).Register(root)
	root = NewConvertCmd(flags, app).Register(root)
	root = NewActionsCmd(flags, app).Register(root)

	err := root.Run(context.Background(), append([]string{"aimanager"}, args...))
	return buf.String(), err
}

func TestTaskAddAndList(t *testing.T) {
	app := newTestApp(t)

	out, err := run(t, app, "task", "add", "Write release notes", "--priority", "high")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Added task") {
		t.Errorf("output %q missing confirmation", out)
	}

	tasks := app.Tasks.All()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Priority != model.PriorityHigh {
		t.Errorf("priority = %q, want %q", tasks[0].Priority, model.PriorityHigh)
	}

	out, err = run(t, app, "task", "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Write release notes") {
		t.Errorf("list output %q missing task name", out)
	}
}

func TestTaskListNotices(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	past := time.Now().UTC().Add(-48 * time.Hour)
	if _, err := app.Tasks.Add(ctx, model.Task{Name: "Late report", DueDate: &past}); err != nil {
		t.Fatalf("add task: %v", err)
	}

	out, err := run(t, app, "task", "list", "--notices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Overdue Task") {
		t.Errorf("output %q missing overdue notice", out)
	}
}

func TestTaskAddRejectsMissingName(t *testing.T) {
	app := newTestApp(t)

	if _, err := run(t, app, "task", "add"); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestTaskAddRejectsInvalidPriority(t *testing.T) {
	app := newTestApp(t)

	_, err := run(t, app, "task", "add", "X", "--priority", "extreme")
	if err == nil || !strings.Contains(err.Error(), "invalid priority") {
		t.Fatalf("expected invalid priority error, got %v", err)
	}
}

func TestTaskDone(t *testing.T) {
	app := newTestApp(t)

	created, err := app.Tasks.Add(context.Background(), model.Task{Name: "Ship it"})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	if _, err := run(t, app, "task", "done", created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := app.Tasks.Get(created.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Status != model.TaskStatusCompleted {
		t.Errorf("status = %q, want %q", got.Status, model.TaskStatusCompleted)
	}
}

func TestConvertSavesActionsAndText(t *testing.T) {
	app := newTestApp(t)

	if _, err := run(t, app, "convert", "Remember to call mom tomorrow. Meeting at 2pm."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	actions := app.Actions.All()
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}

	inputs := app.Profile.Profile().TextInputs
	if len(inputs) != 1 {
		t.Fatalf("expected 1 text input, got %d", len(inputs))
	}
	if !strings.Contains(inputs[0].Text, "call mom") {
		t.Errorf("text input %q missing original text", inputs[0].Text)
	}
}

func TestConvertDryRunDoesNotSave(t *testing.T) {
	app := newTestApp(t)

	if _, err := run(t, app, "convert", "--dry-run", "Submit the report by friday"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(app.Actions.All()); got != 0 {
		t.Errorf("expected no saved actions, got %d", got)
	}
	if got := len(app.Profile.Profile().TextInputs); got != 0 {
		t.Errorf("expected no saved text inputs, got %d", got)
	}
}

func TestConvertRejectsEmptyText(t *testing.T) {
	app := newTestApp(t)

	_, err := run(t, app, "convert", "   ")
	if err == nil || !strings.Contains(err.Error(), "text is required") {
		t.Fatalf("expected text required error, got %v", err)
	}
}

func TestActionsDone(t *testing.T) {
	app := newTestApp(t)

	created, err := app.Actions.Add(context.Background(), model.Action{TaskName: "call mom"})
	if err != nil {
		t.Fatalf("add action: %v", err)
	}

	if _, err := run(t, app, "actions", "done", created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := app.Actions.Get(created.ID)
	if err != nil {
		t.Fatalf("get action: %v", err)
	}
	if got.Status != model.ActionStatusCompleted {
		t.Errorf("status = %q, want %q", got.Status, model.ActionStatusCompleted)
	}
}

func TestProfileSetValidatesEmail(t *testing.T) {
	app := newTestApp(t)

	_, err := run(t, app, "profile", "set", "--email", "not-an-email")
	if err == nil || !strings.Contains(err.Error(), "email") {
		t.Fatalf("expected email validation error, got %v", err)
	}

	if _, err := run(t, app, "profile", "set", "--name", "Nam", "--email", "nam@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile := app.Profile.Profile()
	if profile.Name != "Nam" || profile.Email != "nam@example.com" {
		t.Errorf("profile = %q/%q, want Nam/nam@example.com", profile.Name, profile.Email)
	}
}
