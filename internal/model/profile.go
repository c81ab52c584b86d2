package model

import "regexp"

// Preferences holds the user's boolean notification and feature toggles.
type Preferences struct {
	EmailNotifications bool `json:"emailNotifications"`
	PushNotifications  bool `json:"pushNotifications"`
	AISuggestions      bool `json:"aiSuggestions"`
	Analytics          bool `json:"analytics"`
}

// Settings holds the user's string-valued preference enums.
type Settings struct {
	ProfileVisibility string `json:"profileVisibility"`
	DataSharing       string `json:"dataSharing"`
	Theme             string `json:"theme"`
	Language          string `json:"language"`
	Timezone          string `json:"timezone"`
	AIModel           string `json:"aiModel"`
	ResponseLength    string `json:"responseLength"`
}

// UserProfile is the single persisted aggregate: the user's identity,
// preferences, and every owned collection. It serializes as one JSON
// document; unknown fields in stored data are ignored and missing fields
// keep their in-memory values on load.
type UserProfile struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Bio         string          `json:"bio"`
	Avatar      string          `json:"avatar"`
	Preferences Preferences     `json:"preferences"`
	Settings    Settings        `json:"settings"`
	Events      []CalendarEvent `json:"events"`
	TextInputs  []TextInput     `json:"textInputs"`
	Actions     []Action        `json:"actions"`
	Tasks       []Task          `json:"tasks"`
}

// DefaultProfile returns the compiled-in profile defaults used before any
// saved state exists.
func DefaultProfile() UserProfile {
	return UserProfile{
		Preferences: Preferences{},
		Settings: Settings{
			ProfileVisibility: "public",
			DataSharing:       "standard",
			Theme:             "light",
			Language:          "en",
			Timezone:          "UTC",
			AIModel:           "gpt-4",
			ResponseLength:    "medium",
		},
		Events:     []CalendarEvent{},
		TextInputs: []TextInput{},
		Actions:    []Action{},
		Tasks:      []Task{},
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether the address has the expected user@host.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
