package domain

import (
	"encoding/json"
	"time"
)

// Person trackable person model (people table).
// One row per convert / new member (guest) / member tracked through the
// follow-up lifecycle. Rows are never hard-deleted; removing someone
// from a ministry is an archive action on the ministry side.
type Person struct {
	PersonID string `db:"person_id"` // UUID, PRIMARY KEY

	MinistryID string `db:"ministry_id"` // UUID, NOT NULL

	// convert / new_member / member (see status.PersonKind)
	Kind string `db:"kind"` // VARCHAR(20), NOT NULL

	FirstName string `db:"first_name"` // VARCHAR(100), NOT NULL
	LastName  string `db:"last_name"`  // VARCHAR(100), nullable
	Email     string `db:"email"`      // VARCHAR(200), nullable
	Phone     string `db:"phone"`      // VARCHAR(50), nullable

	// Persisted lifecycle status token. New rows always start at NEW;
	// later values come from the outcome transition table. Dashboards
	// normalize this onto the canonical four via status.Canonical.
	Status string `db:"status"` // VARCHAR(50), NOT NULL, DEFAULT 'NEW'

	// Leader responsible for follow-up (users table), nullable for
	// self-registered people awaiting assignment.
	AssignedLeaderID string `db:"assigned_leader_id"` // UUID, nullable

	// Outstanding scheduled follow-up. At most one per person: recording
	// a check-in either clears these or replaces them.
	NextFollowupDate *time.Time `db:"next_followup_date"` // DATE, nullable
	NextFollowupTime string     `db:"next_followup_time"` // VARCHAR(10), nullable ("19:30")

	// self_form / leader_entered
	Source string `db:"source"` // VARCHAR(20), NOT NULL

	Metadata  json.RawMessage `db:"metadata"` // JSONB, nullable
	CreatedAt time.Time       `db:"created_at"`
}

const (
	PersonSourceSelfForm      = "self_form"
	PersonSourceLeaderEntered = "leader_entered"
)
