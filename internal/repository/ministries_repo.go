package repository

import (
	"context"
	"errors"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
)

// ErrNotFound is returned by every repo when the requested row does not
// exist (or belongs to another ministry).
var ErrNotFound = errors.New("not found")

// MinistriesRepo ministry (tenant) repository interface.
// Strongly typed domain models; data access only, no business rules.
type MinistriesRepo interface {
	// GetMinistry fetches one ministry by ID.
	GetMinistry(ctx context.Context, ministryID string) (*domain.Ministry, error)

	// ListMinistries lists ministries with paging, status filter and
	// name search (platform admin console).
	ListMinistries(ctx context.Context, filter MinistryFilters, page, size int) ([]*domain.Ministry, int, error)

	// CreateMinistry inserts a new ministry and returns its ID.
	// Domain uniqueness is enforced by the database.
	CreateMinistry(ctx context.Context, m *domain.Ministry) (string, error)

	// UpdateMinistry updates name/contact/metadata fields.
	UpdateMinistry(ctx context.Context, ministryID string, m *domain.Ministry) error

	// SetMinistryStatus flips active/archived. Archival is the only
	// removal path; ministries are never hard-deleted.
	SetMinistryStatus(ctx context.Context, ministryID string, status string) error
}

// MinistryFilters list query filters.
type MinistryFilters struct {
	Status string // optional: active / archived
	Search string // optional: ministry_name substring match
}
