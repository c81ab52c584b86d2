package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/ai-manager/internal/model"
)

// Sort keys for task read views.
const (
	SortByDueDate  = "due_date"
	SortByPriority = "priority"
	SortByStatus   = "status"
	SortByAssignee = "assigned_to"
)

// TaskStore provides CRUD and filtered read views over the aggregate's
// task collection. Every mutation persists the whole aggregate.
type TaskStore struct {
	profile *ProfileStore
	now     func() time.Time
}

// NewTaskStore creates a TaskStore over the given profile aggregate.
func NewTaskStore(profile *ProfileStore) *TaskStore {
	return &TaskStore{profile: profile, now: time.Now}
}

// Add inserts a new task. Generates a UUID if ID is empty and fills
// defaults for status, priority, reminder, and recurrence.
func (s *TaskStore) Add(ctx context.Context, task model.Task) (model.Task, error) {
	if strings.TrimSpace(task.Name) == "" {
		return model.Task{}, fmt.Errorf("task name must not be empty")
	}

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = s.now().UTC()

	if task.Status == "" {
		task.Status = model.TaskStatusPending
	}
	if !model.ValidPriority(task.Priority) {
		task.Priority = model.PriorityMedium
	}
	if task.Reminder == "" {
		task.Reminder = "none"
	}
	if task.Recurring == "" {
		task.Recurring = "none"
	}

	// Completion timestamp is tied to the completed status.
	if task.Status == model.TaskStatusCompleted {
		if task.CompletedAt == nil {
			completed := s.now().UTC()
			task.CompletedAt = &completed
		}
	} else {
		task.CompletedAt = nil
	}

	err := s.profile.mutate(ctx, func(p *model.UserProfile) {
		p.Tasks = append(p.Tasks, task)
	})
	if err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// TaskPatch carries a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Name        *string
	Description *string
	DueDate     *time.Time
	ClearDue    bool
	Priority    *string
	AssignedTo  *string
	Status      *string
	Reminder    *string
	Recurring   *string
	Notes       *string
}

// Update merges the patch into the task with the given ID and saves.
// The completion timestamp follows the status: transitioning to completed
// stamps it, transitioning away clears it.
func (s *TaskStore) Update(ctx context.Context, id string, patch TaskPatch) error {
	if patch.Status != nil && !model.ValidTaskStatus(*patch.Status) {
		return fmt.Errorf("invalid task status %q", *patch.Status)
	}
	if patch.Priority != nil && !model.ValidPriority(*patch.Priority) {
		return fmt.Errorf("invalid task priority %q", *patch.Priority)
	}

	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	idx := -1
	for i := range s.profile.profile.Tasks {
		if s.profile.profile.Tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("task %s not found", id)
	}

	task := &s.profile.profile.Tasks[idx]
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return fmt.Errorf("task name must not be empty")
		}
		task.Name = *patch.Name
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.ClearDue {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		due := *patch.DueDate
		task.DueDate = &due
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = *patch.AssignedTo
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Reminder != nil {
		task.Reminder = *patch.Reminder
	}
	if patch.Recurring != nil {
		task.Recurring = *patch.Recurring
	}
	if patch.Notes != nil {
		task.Notes = *patch.Notes
	}

	// Auto-manage the completion timestamp based on status.
	if task.Status == model.TaskStatusCompleted {
		if task.CompletedAt == nil {
			completed := s.now().UTC()
			task.CompletedAt = &completed
		}
	} else {
		task.CompletedAt = nil
	}

	return s.profile.saveLocked(ctx)
}

// Remove deletes a task by ID. Removing a nonexistent task is a no-op.
func (s *TaskStore) Remove(ctx context.Context, id string) error {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	tasks := s.profile.profile.Tasks
	kept := tasks[:0]
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return nil
	}

	s.profile.profile.Tasks = kept
	return s.profile.saveLocked(ctx)
}

// MarkCompleted sets the task's status to completed and stamps the
// completion time. The transition is one-way through this method.
func (s *TaskStore) MarkCompleted(ctx context.Context, id string) error {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	for i := range s.profile.profile.Tasks {
		if s.profile.profile.Tasks[i].ID != id {
			continue
		}
		s.profile.profile.Tasks[i].MarkCompleted(s.now())
		return s.profile.saveLocked(ctx)
	}
	return fmt.Errorf("task %s not found", id)
}

// Get returns the task with the given ID.
func (s *TaskStore) Get(id string) (model.Task, error) {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	for _, t := range s.profile.profile.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, fmt.Errorf("task %s not found", id)
}

// All returns a copy of the task collection in insertion order.
func (s *TaskStore) All() []model.Task {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()
	return append([]model.Task(nil), s.profile.profile.Tasks...)
}

// ByStatus returns the tasks with the given status.
func (s *TaskStore) ByStatus(status string) []model.Task {
	return s.filter(func(t model.Task) bool { return t.Status == status })
}

// ByPriority returns the tasks with the given priority.
func (s *TaskStore) ByPriority(priority string) []model.Task {
	return s.filter(func(t model.Task) bool { return t.Priority == priority })
}

// ByAssignee returns the tasks assigned to the given name.
func (s *TaskStore) ByAssignee(assignee string) []model.Task {
	return s.filter(func(t model.Task) bool { return t.AssignedTo == assignee })
}

// Overdue returns the tasks whose due date has passed and which are not
// completed.
func (s *TaskStore) Overdue() []model.Task {
	now := s.now()
	return s.filter(func(t model.Task) bool { return t.IsOverdue(now) })
}

// DueSoon returns the incomplete tasks due within the next 24 hours.
func (s *TaskStore) DueSoon() []model.Task {
	now := s.now()
	return s.filter(func(t model.Task) bool { return t.IsDueSoon(now) })
}

// Search returns tasks whose name, description, or assignee contains the
// query, case-insensitively.
func (s *TaskStore) Search(query string) []model.Task {
	q := strings.ToLower(query)
	return s.filter(func(t model.Task) bool {
		return strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(strings.ToLower(t.AssignedTo), q)
	})
}

// Sorted returns a copy of the tasks ordered by the given sort key.
// Due-date ordering is ascending with absent due dates sorted last;
// priority ordering is descending by rank (urgent first); status and
// assignee are lexicographic. Unknown keys return insertion order.
func (s *TaskStore) Sorted(key string) []model.Task {
	tasks := s.All()

	switch key {
	case SortByDueDate:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].DueDate, tasks[j].DueDate
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	case SortByPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return model.PriorityRank(tasks[i].Priority) > model.PriorityRank(tasks[j].Priority)
		})
	case SortByStatus:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Status < tasks[j].Status
		})
	case SortByAssignee:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].AssignedTo < tasks[j].AssignedTo
		})
	}

	return tasks
}

func (s *TaskStore) filter(keep func(model.Task) bool) []model.Task {
	s.profile.mu.Lock()
	defer s.profile.mu.Unlock()

	var matched []model.Task
	for _, t := range s.profile.profile.Tasks {
		if keep(t) {
			matched = append(matched, t)
		}
	}
	return matched
}
