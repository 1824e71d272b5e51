package repository

import (
	"context"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
)

// UsersRepo staff accounts repository interface.
type UsersRepo interface {
	// GetUser fetches one user scoped to a ministry.
	GetUser(ctx context.Context, ministryID, userID string) (*domain.User, error)

	// LeaderEmail resolves a leader's contact email (reminder dispatch).
	LeaderEmail(ctx context.Context, ministryID, leaderID string) (string, error)

	// ListUsers lists a ministry's staff accounts, optionally filtered
	// by role (leader dropdowns on assignment forms).
	ListUsers(ctx context.Context, ministryID, role string) ([]*domain.User, error)

	// CreateUser inserts a staff account and returns its ID.
	CreateUser(ctx context.Context, u *domain.User) (string, error)
}
