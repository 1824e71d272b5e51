package repository

import (
	"context"
	"time"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
)

// PeopleRepo trackable people + check-in history repository interface.
// Check-ins live here rather than in their own repo because recording
// one must update the person row in the same transaction.
type PeopleRepo interface {
	// GetPerson fetches one person scoped to a ministry.
	GetPerson(ctx context.Context, ministryID, personID string) (*domain.Person, error)

	// ListPeople lists people with paging, kind/status filters and name
	// search.
	ListPeople(ctx context.Context, ministryID string, filter PersonFilters, page, size int) ([]*domain.Person, int, error)

	// CreatePerson inserts a new person and returns its ID.
	CreatePerson(ctx context.Context, p *domain.Person) (string, error)

	// RecordCheckin appends a check-in and applies its status/schedule
	// result to the person row atomically. The person row is locked for
	// the duration so concurrent check-ins for the same person
	// serialize instead of racing on next_followup_date.
	RecordCheckin(ctx context.Context, rec CheckinRecord) (*domain.Person, *domain.Checkin, error)

	// GetCheckin fetches one check-in scoped to a ministry.
	GetCheckin(ctx context.Context, ministryID, checkinID string) (*domain.Checkin, error)

	// ListCheckins returns a person's check-in history, newest first.
	ListCheckins(ctx context.Context, ministryID, personID string) ([]*domain.Checkin, error)

	// CountByStatus returns raw persisted status -> person count for a
	// ministry (dashboard source data; normalization happens above).
	CountByStatus(ctx context.Context, ministryID string) (map[string]int, error)
}

// PersonFilters list query filters.
type PersonFilters struct {
	Kind   string // optional: convert / new_member / member
	Status string // optional: raw persisted status token
	Search string // optional: first/last name substring match
}

// CheckinRecord everything one check-in write changes, applied in a
// single transaction by RecordCheckin.
type CheckinRecord struct {
	MinistryID string
	PersonID   string

	// Row to append.
	Checkin *domain.Checkin

	// New person status token (from the outcome transition).
	NewStatus string

	// Outstanding follow-up to set on the person; both nil/empty clears
	// it (a person has at most one outstanding follow-up).
	NextFollowupDate *time.Time
	NextFollowupTime string

	// If set, this prior scheduled check-in is closed (completed_at
	// stamped) as part of the same transaction.
	CompletesCheckinID string
}
