package model

import "time"

// CalendarEvent is a dated entry on the user's calendar.
type CalendarEvent struct {
	// ID is the unique identifier for this event.
	ID string `json:"id"`

	// Name is the display name of the event.
	Name string `json:"name"`

	// Date is the calendar day the event occurs on.
	Date time.Time `json:"date"`

	// Time is the clock time as entered by the user ("HH:MM").
	Time string `json:"time"`

	// Description is the free-text event body.
	Description string `json:"description"`

	// Type is a free-text category label (meeting, deadline, ...).
	Type string `json:"type"`

	// CreatedAt is when this event was created.
	CreatedAt time.Time `json:"created_at"`
}

// SameDay reports whether the event falls on the given calendar day.
func (e CalendarEvent) SameDay(day time.Time) bool {
	ey, em, ed := e.Date.Date()
	dy, dm, dd := day.Date()
	return ey == dy && em == dm && ed == dd
}

// FormattedDate renders the event date for display.
func (e CalendarEvent) FormattedDate() string {
	return e.Date.Format("Mon, Jan 2")
}
