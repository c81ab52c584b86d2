package parser

import (
	"testing"
	"time"

	"github.com/nhle/ai-manager/internal/model"
)

// fixedNow is a Wednesday.
var fixedNow = time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)

func newFixedParser() *Parser {
	return &Parser{Now: func() time.Time { return fixedNow }}
}

func TestParse_SentenceCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "   ", 0},
		{"single sentence", "Buy milk", 1},
		{"trailing terminator", "Buy milk.", 1},
		{"three sentences", "One. Two! Three?", 3},
		{"repeated terminators", "One... Two!!", 2},
		{"blank fragments dropped", "One. . ! Two.", 2},
	}

	p := newFixedParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := p.Parse(tt.text)
			if len(actions) != tt.want {
				t.Errorf("Parse(%q) returned %d actions, want %d", tt.text, len(actions), tt.want)
			}
		})
	}
}

func TestParse_ReminderWithDate(t *testing.T) {
	p := newFixedParser()

	actions := p.Parse("Remember to call mom tomorrow")
	if len(actions) != 1 {
		t.Fatalf("Parse returned %d actions, want 1", len(actions))
	}

	a := actions[0]
	if a.Type != model.ActionTypeReminder {
		t.Errorf("Type = %q, want %q", a.Type, model.ActionTypeReminder)
	}
	if a.Reminder != "tomorrow" {
		t.Errorf("Reminder = %q, want %q", a.Reminder, "tomorrow")
	}
	if a.TaskName != "call mom" {
		t.Errorf("TaskName = %q, want %q", a.TaskName, "call mom")
	}
	if a.Status != model.ActionStatusPending {
		t.Errorf("Status = %q, want %q", a.Status, model.ActionStatusPending)
	}
	if a.ID == "" {
		t.Error("ID should be generated")
	}

	wantDue := time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)
	if a.DueDate == nil || !a.DueDate.Equal(wantDue) {
		t.Errorf("DueDate = %v, want %v", a.DueDate, wantDue)
	}
}

func TestParse_TimeExtraction(t *testing.T) {
	p := newFixedParser()

	actions := p.Parse("Meeting at 2pm")
	if len(actions) != 1 {
		t.Fatalf("Parse returned %d actions, want 1", len(actions))
	}

	a := actions[0]
	if a.Type != model.ActionTypeTask {
		t.Errorf("Type = %q, want %q", a.Type, model.ActionTypeTask)
	}
	if a.Reminder != "14:00" {
		t.Errorf("Reminder = %q, want %q", a.Reminder, "14:00")
	}
	if a.TaskName != "Meeting at" {
		t.Errorf("TaskName = %q, want %q", a.TaskName, "Meeting at")
	}
	if a.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", a.DueDate)
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		sentence string
		want     string
	}{
		{"at 2pm", "14:00"},
		{"at 2:30pm", "14:30"},
		{"at 2:30 PM", "14:30"},
		{"at 9am", "09:00"},
		{"at 12am", "00:00"},
		{"at 12pm", "12:00"},
		{"at 14:00", "14:00"},
		{"meet at 5", "05:00"},
		{"no time here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			if got := extractTime(tt.sentence); got != tt.want {
				t.Errorf("extractTime(%q) = %q, want %q", tt.sentence, got, tt.want)
			}
		})
	}
}

func TestExtractDate_RulePrecedence(t *testing.T) {
	// "tomorrow" must win over a later weekday mention.
	got := extractDate("Dentist tomorrow or friday", fixedNow)
	if got.label != "tomorrow" {
		t.Errorf("label = %q, want %q", got.label, "tomorrow")
	}

	got = extractDate("next week on monday", fixedNow)
	if got.label != "next week" {
		t.Errorf("label = %q, want %q", got.label, "next week")
	}
}

func TestExtractDate_Weekdays(t *testing.T) {
	tests := []struct {
		sentence string
		wantDay  time.Time
	}{
		// fixedNow is Wednesday 2024-05-15.
		{"lunch on friday", time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)},
		{"lunch on monday", time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
		{"lunch on sunday", time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC)},
		// Today's weekday resolves to today, not next week.
		{"lunch on wednesday", time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			got := extractDate(tt.sentence, fixedNow)
			if got.date == nil {
				t.Fatalf("extractDate(%q) found no date", tt.sentence)
			}
			if !got.date.Equal(tt.wantDay) {
				t.Errorf("date = %v, want %v", got.date, tt.wantDay)
			}
		})
	}
}

func TestExtractDate_NextMonth(t *testing.T) {
	got := extractDate("review next month", fixedNow)
	want := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if got.date == nil || !got.date.Equal(want) {
		t.Errorf("date = %v, want %v", got.date, want)
	}
	if got.label != "next month" {
		t.Errorf("label = %q, want %q", got.label, "next month")
	}
}

func TestExtractDate_NoMatch(t *testing.T) {
	got := extractDate("just buy milk", fixedNow)
	if got.date != nil || got.label != "" {
		t.Errorf("extractDate = %+v, want empty match", got)
	}
}

func TestCleanActionName(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     string
	}{
		{"reminder lead stripped", "Remember to call mom tomorrow", "call mom"},
		{"time stripped", "Meeting at 2pm", "Meeting at"},
		{"all removed falls back", "tomorrow 2pm", "Untitled task"},
		{"commas trimmed", "Remind me to water plants, tomorrow", "water plants"},
		{"plain text untouched", "Walk the dog", "Walk the dog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanActionName(tt.sentence)
			if got != tt.want {
				t.Errorf("cleanActionName(%q) = %q, want %q", tt.sentence, got, tt.want)
			}
		})
	}
}

func TestCleanActionName_Idempotent(t *testing.T) {
	inputs := []string{
		"Remember to call mom tomorrow",
		"Meeting at 2:30pm on friday",
		"tomorrow 2pm",
		"Walk the dog",
	}

	for _, in := range inputs {
		once := cleanActionName(in)
		twice := cleanActionName(once)
		if once != twice {
			t.Errorf("cleanActionName not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestParse_UnparseableSentence(t *testing.T) {
	p := newFixedParser()

	actions := p.Parse("Walk the dog")
	if len(actions) != 1 {
		t.Fatalf("Parse returned %d actions, want 1", len(actions))
	}

	a := actions[0]
	if a.Type != model.ActionTypeTask {
		t.Errorf("Type = %q, want %q", a.Type, model.ActionTypeTask)
	}
	if a.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", a.DueDate)
	}
	if a.Reminder != "" {
		t.Errorf("Reminder = %q, want empty", a.Reminder)
	}
	if a.TaskName != "Walk the dog" {
		t.Errorf("TaskName = %q, want %q", a.TaskName, "Walk the dog")
	}
}

func TestParse_OrderPreserved(t *testing.T) {
	p := newFixedParser()

	actions := p.Parse("Buy milk. Remember to call mom. Clean desk.")
	if len(actions) != 3 {
		t.Fatalf("Parse returned %d actions, want 3", len(actions))
	}

	wantNames := []string{"Buy milk", "call mom", "Clean desk"}
	for i, want := range wantNames {
		if actions[i].TaskName != want {
			t.Errorf("actions[%d].TaskName = %q, want %q", i, actions[i].TaskName, want)
		}
	}
}

func TestParse_ReminderKeywordVariants(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Remember to stretch", model.ActionTypeReminder},
		{"Please remind me about the invoice", model.ActionTypeReminder},
		{"Don't forget the keys", model.ActionTypeReminder},
		{"Make sure the door is locked", model.ActionTypeReminder},
		{"Ensure the backup ran", model.ActionTypeReminder},
		{"Write the report", model.ActionTypeTask},
	}

	p := newFixedParser()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			actions := p.Parse(tt.text)
			if len(actions) != 1 {
				t.Fatalf("Parse returned %d actions, want 1", len(actions))
			}
			if actions[0].Type != tt.want {
				t.Errorf("Type = %q, want %q", actions[0].Type, tt.want)
			}
		})
	}
}
