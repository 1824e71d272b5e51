package domain

import "time"

// Checkin one follow-up contact attempt (checkins table).
// Append-only history: rows belong to exactly one person and are never
// updated or deleted, except for completed_at. A check-in carrying a
// next_followup_date represents a scheduled appointment; completing it
// (PATCH .../complete) appends a new check-in with the appointment's
// outcome and stamps completed_at on this row to close it.
type Checkin struct {
	CheckinID string `db:"checkin_id"` // UUID, PRIMARY KEY

	MinistryID string `db:"ministry_id"` // UUID, NOT NULL
	PersonID   string `db:"person_id"`   // UUID, NOT NULL

	// Outcome token recorded by the leader (vocabulary depends on the
	// person's kind).
	Outcome string `db:"outcome"` // VARCHAR(50), NOT NULL

	Notes       string    `db:"notes"`        // TEXT, nullable
	CheckinDate time.Time `db:"checkin_date"` // DATE, NOT NULL

	// Next appointment carried by this check-in, if any.
	NextFollowupDate *time.Time `db:"next_followup_date"` // DATE, nullable
	NextFollowupTime string     `db:"next_followup_time"` // VARCHAR(10), nullable
	VideoLink        string     `db:"video_link"`         // TEXT, nullable

	RecordedBy  string     `db:"recorded_by"` // UUID, nullable (leader user)
	CompletedAt *time.Time `db:"completed_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

// Pending reports whether this check-in carries a scheduled appointment
// that has not been completed yet.
func (c *Checkin) Pending() bool {
	return c.NextFollowupDate != nil && c.CompletedAt == nil
}
