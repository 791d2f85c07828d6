package models

import "time"

// Wisp is a completed Written Information Security Plan questionnaire.
// It is created once, when the last wizard step is submitted, and holds
// every answer collected along the way.
type Wisp struct {
	// ID is the unique identifier for the plan (UUID format).
	ID string

	// CompanyName is the display name of the plan. Never empty once stored.
	CompanyName string

	// Answers holds every accepted field from all wizard steps.
	Answers Answers

	// CreatedAt is when the plan was first persisted.
	CreatedAt time.Time

	// UpdatedAt is when the answers were last replaced.
	// Equal to CreatedAt until the first update.
	UpdatedAt time.Time
}
