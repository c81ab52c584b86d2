package model

import "time"

// TextInput is a raw text submission kept for conversion history.
type TextInput struct {
	// ID is the unique identifier for this input.
	ID string `json:"id"`

	// Text is the submitted free text.
	Text string `json:"text"`

	// CreatedAt is when the text was submitted.
	CreatedAt time.Time `json:"created_at"`
}
