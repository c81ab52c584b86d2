package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/ai-manager/internal/model"
)

// ActionStore provides CRUD and read views over the aggregate's action
// collection. Actions come from the text-to-action parser; their type is
// fixed at creation and status only moves pending -> completed.
type ActionStore struct {
	profile *ProfileStore
	now     func() time.Time
}

// NewActionStore creates an ActionStore over the given profile aggregate.
func NewActionStore(profile *ProfileStore) *ActionStore {
	return &ActionStore{profile: profile, now: time.Now}
}

// Add inserts a single action, filling defaults, and saves.
func (s *ActionStore) Add(ctx context.Context, action model.Action) (model.Action, error) {
	action = s.withDefaults(action)
	if strings.TrimSpace(action.TaskName) == "" {
		return model.Action{}, fmt.Errorf("action name must not be empty")
	}

	err := s.profile.mutate(ctx, func(p *model.UserProfile) {
		p.Actions = append(p.Actions, action)
	})
	if err != nil {
		return model.Action{}, err
	}
	return action, nil
}

// AddAll appends a batch of parsed actions in order with a single save.
func (s *ActionStore) AddAll(ctx context.Context, actions []model.Action) error {
	if len(actions) == 0 {
		return nil
	}

	prepared := make([]model.Action, 0, len(actions))
	for _, a := range actions {
		prepared = append(prepared, s.withDefaults(a))
	}

	return s.profile.mutate(ctx, func(p *model.UserProfile) {
		p.Actions = append(p.Actions, prepared...)
	})
}

// Remove deletes an action by ID. Removing a nonexistent action is a no-op.
func (s *ActionStore) Remove(ctx context.Context, id string) error {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	actions := s.profile.profile.Actions
	kept := actions[:0]
	found := false
	for _, a := range actions {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return nil
	}

	s.profile.profile.Actions = kept
	return s.profile.saveLocked(ctx)
}

// Complete transitions an action from pending to completed. Completing an
// already-completed action is a no-op; the transition never reverses.
func (s *ActionStore) Complete(ctx context.Context, id string) error {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	for i := range s.profile.profile.Actions {
		a := &s.profile.profile.Actions[i]
		if a.ID != id {
			continue
		}
		if a.Status == model.ActionStatusCompleted {
			return nil
		}
		a.Complete()
		return s.profile.saveLocked(ctx)
	}
	return fmt.Errorf("action %s not found", id)
}

// Get returns the action with the given ID.
func (s *ActionStore) Get(id string) (model.Action, error) {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	for _, a := range s.profile.profile.Actions {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Action{}, fmt.Errorf("action %s not found", id)
}

// All returns a copy of the action collection in insertion order.
func (s *ActionStore) All() []model.Action {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()
	return append([]model.Action(nil), s.profile.profile.Actions...)
}

// Tasks returns the actions classified as plain tasks.
func (s *ActionStore) Tasks() []model.Action {
	return s.filter(func(a model.Action) bool { return a.Type == model.ActionTypeTask })
}

// Reminders returns the actions classified as reminders.
func (s *ActionStore) Reminders() []model.Action {
	return s.filter(func(a model.Action) bool { return a.Type == model.ActionTypeReminder })
}

// Overdue returns the pending actions whose due date has passed.
func (s *ActionStore) Overdue() []model.Action {
	now := s.now()
	return s.filter(func(a model.Action) bool { return a.IsOverdue(now) })
}

// DueSoon returns the pending actions due within the next 24 hours.
func (s *ActionStore) DueSoon() []model.Action {
	now := s.now()
	return s.filter(func(a model.Action) bool { return a.IsDueSoon(now) })
}

func (s *ActionStore) withDefaults(action model.Action) model.Action {
	if action.ID == "" {
		action.ID = uuid.New().String()
	}
	if action.Type == "" {
		action.Type = model.ActionTypeTask
	}
	if action.Status == "" {
		action.Status = model.ActionStatusPending
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = s.now().UTC()
	}
	return action
}

func (s *ActionStore) filter(keep func(model.Action) bool) []model.Action {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	var matched []model.Action
	for _, a := range s.profile.profile.Actions {
		if keep(a) {
			matched = append(matched, a)
		}
	}
	return matched
}
