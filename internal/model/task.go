package model

import "time"

// Task status constants.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
	TaskStatusOnHold     = "on-hold"
)

// Task priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// dueSoonWindow is how far ahead a due date counts as "due soon".
const dueSoonWindow = 24 * time.Hour

// PriorityRank maps a priority name to its numeric rank for sorting.
// Higher rank means more urgent. Unknown priorities rank below low.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ValidPriority reports whether priority is one of the known levels.
func ValidPriority(priority string) bool {
	return PriorityRank(priority) > 0
}

// ValidTaskStatus reports whether status is one of the known task statuses.
func ValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOnHold:
		return true
	}
	return false
}

// Task is a user-created work item with scheduling and assignment metadata.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`

	// Name is the short display name of the task.
	Name string `json:"name"`

	// Description is the full body text.
	Description string `json:"description"`

	// DueDate is the optional calendar date the task is due.
	DueDate *time.Time `json:"due_date,omitempty"`

	// Priority is one of the Priority* constants.
	Priority string `json:"priority"`

	// AssignedTo is the free-text name of the person responsible.
	AssignedTo string `json:"assigned_to"`

	// Status is one of the TaskStatus* constants.
	Status string `json:"status"`

	// Reminder is a free-text reminder note, or "none".
	Reminder string `json:"reminder"`

	// Recurring is a free-text recurrence note, or "none".
	Recurring string `json:"recurring"`

	// Notes holds additional free-text notes.
	Notes string `json:"notes"`

	// CreatedAt is when this task was created.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is set when the task is completed, nil otherwise.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// IsOverdue reports whether the task's due date has passed at the given
// moment. Completed tasks and tasks without a due date are never overdue.
func (t Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted {
		return false
	}
	return t.DueDate.Before(now)
}

// IsDueSoon reports whether the task's due date falls within the next
// 24 hours of the given moment. Completed tasks are never due soon.
// Overdue and due-soon are mutually exclusive.
func (t Task) IsDueSoon(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted {
		return false
	}
	remaining := t.DueDate.Sub(now)
	return remaining >= 0 && remaining <= dueSoonWindow
}

// MarkCompleted transitions the task to completed and stamps the
// completion time. The transition is not reversed by this method.
func (t *Task) MarkCompleted(now time.Time) {
	t.Status = TaskStatusCompleted
	completed := now.UTC()
	t.CompletedAt = &completed
}

// FormattedDueDate renders the due date for display.
func (t Task) FormattedDueDate() string {
	if t.DueDate == nil {
		return "No due date"
	}
	return t.DueDate.Format("Mon, Jan 2, 2006")
}
