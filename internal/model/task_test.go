package model

import (
	"testing"
	"time"
)

var now = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func withDue(offset time.Duration, status string) Task {
	due := now.Add(offset)
	return Task{Name: "t", Status: status, DueDate: &due}
}

func TestTask_OverdueDueSoonExclusive(t *testing.T) {
	tests := []struct {
		name        string
		offset      time.Duration
		wantOverdue bool
		wantSoon    bool
	}{
		{"well past due", -48 * time.Hour, true, false},
		{"just past due", -time.Minute, true, false},
		{"due this moment", 0, false, true},
		{"due in an hour", time.Hour, false, true},
		{"due in 24h", 24 * time.Hour, false, true},
		{"due beyond window", 25 * time.Hour, false, false},
		{"due next week", 7 * 24 * time.Hour, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := withDue(tt.offset, TaskStatusPending)
			if got := task.IsOverdue(now); got != tt.wantOverdue {
				t.Errorf("IsOverdue = %v, want %v", got, tt.wantOverdue)
			}
			if got := task.IsDueSoon(now); got != tt.wantSoon {
				t.Errorf("IsDueSoon = %v, want %v", got, tt.wantSoon)
			}
			if task.IsOverdue(now) && task.IsDueSoon(now) {
				t.Error("overdue and due-soon must be mutually exclusive")
			}
		})
	}
}

func TestTask_CompletedNeverDue(t *testing.T) {
	for _, offset := range []time.Duration{-48 * time.Hour, time.Hour} {
		task := withDue(offset, TaskStatusCompleted)
		if task.IsOverdue(now) {
			t.Errorf("completed task with offset %v reported overdue", offset)
		}
		if task.IsDueSoon(now) {
			t.Errorf("completed task with offset %v reported due soon", offset)
		}
	}
}

func TestTask_NoDueDate(t *testing.T) {
	task := Task{Name: "t", Status: TaskStatusPending}
	if task.IsOverdue(now) || task.IsDueSoon(now) {
		t.Error("task without due date must be neither overdue nor due soon")
	}
	if got := task.FormattedDueDate(); got != "No due date" {
		t.Errorf("FormattedDueDate = %q", got)
	}
}

func TestTask_MarkCompleted(t *testing.T) {
	task := withDue(-time.Hour, TaskStatusPending)
	task.MarkCompleted(now)

	if task.Status != TaskStatusCompleted {
		t.Errorf("Status = %q, want %q", task.Status, TaskStatusCompleted)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", task.CompletedAt, now)
	}
}

func TestPriorityRank(t *testing.T) {
	ranks := []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	for i := 1; i < len(ranks); i++ {
		if PriorityRank(ranks[i]) <= PriorityRank(ranks[i-1]) {
			t.Errorf("PriorityRank(%s) should exceed PriorityRank(%s)", ranks[i], ranks[i-1])
		}
	}
	if PriorityRank("bogus") != 0 {
		t.Errorf("PriorityRank(bogus) = %d, want 0", PriorityRank("bogus"))
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name@example.com"}
	invalid := []string{"", "plain", "a@b", "a b@c.com", "@x.com"}

	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("ValidEmail(%q) = true, want false", e)
		}
	}
}
