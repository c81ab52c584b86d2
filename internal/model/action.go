package model

import "time"

// Action type constants. The type is fixed at creation.
const (
	ActionTypeTask     = "task"
	ActionTypeReminder = "reminder"
)

// Action status constants. The only transition is pending -> completed.
const (
	ActionStatusPending   = "pending"
	ActionStatusCompleted = "completed"
)

// Action is a normalized task or reminder record produced by converting
// free text. Unlike Task it carries only the fields the parser can fill.
type Action struct {
	// ID is the unique identifier for this action.
	ID string `json:"id"`

	// TaskName is the display text derived from the parsed sentence.
	TaskName string `json:"task_name"`

	// DueDate is the optional calendar date extracted from the text.
	DueDate *time.Time `json:"due_date,omitempty"`

	// Reminder is the extracted time string ("HH:MM") when present,
	// otherwise the symbolic date label ("tomorrow", a weekday name).
	Reminder string `json:"reminder"`

	// Type is either ActionTypeTask or ActionTypeReminder.
	Type string `json:"type"`

	// Status is either ActionStatusPending or ActionStatusCompleted.
	Status string `json:"status"`

	// CreatedAt is when this action was produced.
	CreatedAt time.Time `json:"created_at"`
}

// IsOverdue reports whether the action's due date has passed at the given
// moment. Completed actions and actions without a due date are never overdue.
func (a Action) IsOverdue(now time.Time) bool {
	if a.DueDate == nil || a.Status == ActionStatusCompleted {
		return false
	}
	return a.DueDate.Before(now)
}

// IsDueSoon reports whether the action's due date falls within the next
// 24 hours of the given moment.
func (a Action) IsDueSoon(now time.Time) bool {
	if a.DueDate == nil || a.Status == ActionStatusCompleted {
		return false
	}
	remaining := a.DueDate.Sub(now)
	return remaining >= 0 && remaining <= dueSoonWindow
}

// Complete transitions the action to completed. The transition is one-way.
func (a *Action) Complete() {
	a.Status = ActionStatusCompleted
}

// FormattedDueDate renders the due date for display.
func (a Action) FormattedDueDate() string {
	if a.DueDate == nil {
		return "No due date"
	}
	return a.DueDate.Format("Mon, Jan 2, 2006")
}

// FormattedReminder renders the reminder for display.
func (a Action) FormattedReminder() string {
	if a.Reminder == "" {
		return "No reminder set"
	}
	return a.Reminder
}
