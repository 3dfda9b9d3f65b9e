// Package domain contains core domain types for the TemberaNawe USSD service.
package domain

import (
	"time"
)

const saveDateLayout = "2006-01-02"

// PlaceRef is a session-owned reference to a catalog place.
type PlaceRef struct {
	PlaceID string  `json:"place_id"`
	Name    string  `json:"name"`
	Price   int     `json:"price"`
	Rating  float64 `json:"rating"`
}

// Booking is a scheduled visit to a catalog place.
type Booking struct {
	ID    string    `json:"id"`
	Place PlaceRef  `json:"place"`
	Date  time.Time `json:"date"`
}

// WizardField is one captured slot of an in-progress wizard.
type WizardField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// WizardState tracks a multi-turn free-form capture flow. It exists only
// while such a flow is in progress and is discarded on completion or
// cancellation.
type WizardState struct {
	Flow       string        `json:"flow"`
	Fields     []WizardField `json:"fields"`
	Slot       int           `json:"slot"`
	ReturnPath []string      `json:"return_path"`
}

// Value returns the captured value for a slot name.
func (w *WizardState) Value(name string) string {
	for _, f := range w.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Session is the per-caller record spanning turns until termination or
// eviction. It is owned by the session store; the dialog engine borrows it
// for the duration of one turn.
type Session struct {
	CallerID     string       `json:"caller_id"`
	Language     Language     `json:"language,omitempty"`
	Favorites    []PlaceRef   `json:"favorites,omitempty"`
	Bookings     []Booking    `json:"bookings,omitempty"`
	Goals        []Goal       `json:"goals,omitempty"`
	SavingsTotal int          `json:"savings_total"`
	Points       int          `json:"points"`
	Streak       int          `json:"streak"`
	LastSaveDate string       `json:"last_save_date,omitempty"`
	Wizard       *WizardState `json:"wizard,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	LastActivity time.Time    `json:"last_activity"`
}

// NewSession creates a session with default field values.
func NewSession(callerID string, now time.Time) *Session {
	return &Session{
		CallerID:     callerID,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// ApplySave records a savings deposit and returns the reward points earned.
// A deposit on the day after the previous one extends the streak; a repeat
// deposit on the same day leaves it unchanged; a gap of two or more days
// (or a first deposit) resets it to 1. Points are amount/100, doubled once
// the updated streak reaches 7.
func (s *Session) ApplySave(amount int, now time.Time) int {
	today := now.Format(saveDateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(saveDateLayout)

	switch s.LastSaveDate {
	case today:
		// streak unchanged
	case yesterday:
		s.Streak++
	default:
		s.Streak = 1
	}
	s.LastSaveDate = today

	points := amount / 100
	if s.Streak >= 7 {
		points *= 2
	}
	s.Points += points
	s.SavingsTotal += amount
	return points
}
