// Package parser converts free-form text into normalized actions by
// extracting dates, times, and intent from each sentence.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/ai-manager/internal/model"
)

// sentenceSplit breaks input text on runs of sentence terminators.
var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// timePattern matches a clock time: 1-2 digit hour, optional :minutes,
// optional meridiem. The first match in a sentence wins.
var timePattern = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)

// weekdayRules maps weekday keywords to time.Weekday in match order.
// Order matters: earlier entries are checked first.
var weekdayRules = []struct {
	keyword string
	day     time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

// reminderKeywords classify a sentence as a reminder when any is present.
var reminderKeywords = []string{"remember", "remind", "don't forget", "make sure", "ensure"}

// cleanPatterns are removed (case-insensitive, globally) from a sentence
// to produce the action name: date keywords first, then the time pattern,
// then reminder lead phrases.
var (
	dateWordPatterns = compileWords(
		"tomorrow", "next week", "next month",
		"monday", "tuesday", "wednesday", "thursday",
		"friday", "saturday", "sunday",
	)
	reminderLeadPatterns = compileWords(
		"remember to", "remind me to", "don't forget to",
		"make sure to", "ensure to",
	)
)

func compileWords(words ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		patterns[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(w))
	}
	return patterns
}

// Parser converts free text into actions. The zero value is not usable;
// construct with New. Now is injectable for deterministic tests.
type Parser struct {
	Now func() time.Time
}

// New returns a Parser using the wall clock.
func New() *Parser {
	return &Parser{Now: time.Now}
}

// Parse splits text into sentences and produces one action per non-empty
// sentence, preserving input order. It never fails: sentences with no
// extractable date, time, or intent still yield a plain task action.
func (p *Parser) Parse(text string) []model.Action {
	var actions []model.Action

	for _, sentence := range sentenceSplit.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		now := p.Now()
		date := extractDate(sentence, now)
		clock := extractTime(sentence)

		kind := model.ActionTypeTask
		if isReminderText(sentence) {
			kind = model.ActionTypeReminder
		}

		reminder := clock
		if reminder == "" {
			reminder = date.label
		}

		actions = append(actions, model.Action{
			ID:        uuid.New().String(),
			TaskName:  cleanActionName(sentence),
			DueDate:   date.date,
			Reminder:  reminder,
			Type:      kind,
			Status:    model.ActionStatusPending,
			CreatedAt: now.UTC(),
		})
	}

	return actions
}

// dateMatch is the result of date extraction: the resolved calendar date
// and the symbolic keyword that produced it.
type dateMatch struct {
	date  *time.Time
	label string
}

// extractDate scans the sentence against the ordered date rule set.
// Only the first matching rule applies.
func extractDate(sentence string, now time.Time) dateMatch {
	lower := strings.ToLower(sentence)

	if strings.Contains(lower, "tomorrow") {
		return dateMatch{date: dateOnly(now.AddDate(0, 0, 1)), label: "tomorrow"}
	}
	if strings.Contains(lower, "next week") {
		return dateMatch{date: dateOnly(now.AddDate(0, 0, 7)), label: "next week"}
	}
	if strings.Contains(lower, "next month") {
		return dateMatch{date: dateOnly(now.AddDate(0, 1, 0)), label: "next month"}
	}

	for _, rule := range weekdayRules {
		if !strings.Contains(lower, rule.keyword) {
			continue
		}
		// Yields 0 days ahead when today already is the target weekday,
		// meaning "today" rather than "next occurrence". Kept on purpose
		// to match the established conversion behavior.
		ahead := (int(rule.day) - int(now.Weekday()) + 7) % 7
		return dateMatch{date: dateOnly(now.AddDate(0, 0, ahead)), label: rule.keyword}
	}

	return dateMatch{}
}

// extractTime returns the first clock time in the sentence as "HH:MM"
// in 24-hour form, or "" when no digits are present.
func extractTime(sentence string) string {
	m := timePattern.FindStringSubmatch(sentence)
	if m == nil {
		return ""
	}

	hours, _ := strconv.Atoi(m[1])
	minutes := 0
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}

	switch strings.ToLower(m[3]) {
	case "pm":
		if hours != 12 {
			hours += 12
		}
	case "am":
		if hours == 12 {
			hours = 0
		}
	}

	return padTwo(hours) + ":" + padTwo(minutes)
}

// isReminderText reports whether any reminder keyword appears in the sentence.
func isReminderText(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, keyword := range reminderKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// cleanActionName strips date keywords, clock times, and reminder lead
// phrases from the sentence, then normalizes whitespace and trims stray
// commas. Empty results fall back to "Untitled task". Idempotent.
func cleanActionName(sentence string) string {
	cleaned := sentence

	for _, pattern := range dateWordPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}
	cleaned = timePattern.ReplaceAllString(cleaned, "")
	for _, pattern := range reminderLeadPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	cleaned = strings.Join(strings.Fields(cleaned), " ")
	cleaned = strings.Trim(cleaned, ", ")

	if cleaned == "" {
		return "Untitled task"
	}
	return cleaned
}

// dateOnly truncates t to midnight in its location.
func dateOnly(t time.Time) *time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return &day
}

func padTwo(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
