// Package notify periodically scans the task and action collections for
// overdue and due-soon items and surfaces them as notices. Scans are
// read-only; stored data is never mutated.
package notify

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/ai-manager/internal/store"
)

// Notice levels.
const (
	LevelWarning = "warning"
	LevelInfo    = "info"
)

// Notice kinds, identifying the collection the item came from.
const (
	KindTask   = "task"
	KindAction = "action"
)

// Notice is a single overdue or due-soon alert.
type Notice struct {
	Level   string
	Title   string
	Message string
	Kind    string
	ItemID  string
}

// NoticeMsg is a tea.Msg carrying the notices from one scan.
type NoticeMsg struct {
	Notices []Notice
	ScanAt  time.Time
}

// Watcher runs the periodic due-date scan.
type Watcher struct {
	tasks    *store.TaskStore
	actions  *store.ActionStore
	interval time.Duration
	now      func() time.Time

	resultCh chan NoticeMsg
	stopCh   chan struct{}
	mu       sync.Mutex
	running  bool
	lastScan time.Time
}

// New creates a Watcher over the given stores. A non-positive interval
// falls back to five minutes.
func New(tasks *store.TaskStore, actions *store.ActionStore, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Watcher{
		tasks:    tasks,
		actions:  actions,
		interval: interval,
		now:      time.Now,
		resultCh: make(chan NoticeMsg, 16),
		stopCh:   make(chan struct{}),
	}
}

// Scan performs one read-only pass over both collections and returns the
// notices for every overdue and due-soon item.
func (w *Watcher) Scan() []Notice {
	var notices []Notice

	for _, t := range w.tasks.Overdue() {
		notices = append(notices, Notice{
			Level:   LevelWarning,
			Title:   "Overdue Task",
			Message: fmt.Sprintf("%q is overdue. Due date: %s", t.Name, t.FormattedDueDate()),
			Kind:    KindTask,
			ItemID:  t.ID,
		})
	}
	for _, t := range w.tasks.DueSoon() {
		notices = append(notices, Notice{
			Level:   LevelInfo,
			Title:   "Task Due Soon",
			Message: fmt.Sprintf("%q is due soon. Due date: %s", t.Name, t.FormattedDueDate()),
			Kind:    KindTask,
			ItemID:  t.ID,
		})
	}
	for _, a := range w.actions.Overdue() {
		notices = append(notices, Notice{
			Level:   LevelWarning,
			Title:   "Overdue Action",
			Message: fmt.Sprintf("%q is overdue. Due date: %s", a.TaskName, a.FormattedDueDate()),
			Kind:    KindAction,
			ItemID:  a.ID,
		})
	}
	for _, a := range w.actions.DueSoon() {
		notices = append(notices, Notice{
			Level:   LevelInfo,
			Title:   "Action Due Soon",
			Message: fmt.Sprintf("%q is due soon. Due date: %s", a.TaskName, a.FormattedDueDate()),
			Kind:    KindAction,
			ItemID:  a.ID,
		})
	}

	return notices
}

// Start launches the scan loop and returns a subscription command that
// waits on the result channel. Calling Start on a running watcher is a
// no-op that still returns a subscription.
func (w *Watcher) Start() tea.Cmd {
	w.mu.Lock()
	if !w.running {
		w.running = true
		go w.loop()
	}
	w.mu.Unlock()

	return w.waitForResult()
}

// Stop halts the scan loop.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	close(w.stopCh)
	w.running = false
}

// LastScan returns when the most recent scan ran.
func (w *Watcher) LastScan() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastScan
}

// WaitForNext returns a tea.Cmd that waits for the next scan result.
// Call it after processing a NoticeMsg to keep listening.
func (w *Watcher) WaitForNext() tea.Cmd {
	return w.waitForResult()
}

func (w *Watcher) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Initial scan immediately on start.
	w.scanAndSend()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scanAndSend()
		}
	}
}

func (w *Watcher) scanAndSend() {
	scanAt := w.now()
	notices := w.Scan()

	w.mu.Lock()
	w.lastScan = scanAt
	w.mu.Unlock()

	select {
	case w.resultCh <- NoticeMsg{Notices: notices, ScanAt: scanAt}:
	default:
		// Drop if the channel is full to avoid blocking the loop.
	}
}

func (w *Watcher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-w.resultCh
		if !ok {
			return nil
		}
		return result
	}
}
