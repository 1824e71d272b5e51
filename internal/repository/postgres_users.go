package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
)

// PostgresUsersRepo staff accounts backed by Postgres.
type PostgresUsersRepo struct {
	db *sql.DB
}

func NewPostgresUsersRepo(db *sql.DB) *PostgresUsersRepo {
	return &PostgresUsersRepo{db: db}
}

var _ UsersRepo = (*PostgresUsersRepo)(nil)

func (r *PostgresUsersRepo) GetUser(ctx context.Context, ministryID, userID string) (*domain.User, error) {
	if ministryID == "" || userID == "" {
		return nil, fmt.Errorf("ministry_id and user_id are required")
	}

	var u domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id::text, ministry_id::text, nickname, email, role, COALESCE(status, 'active')
		 FROM users WHERE ministry_id = $1::uuid AND user_id = $2::uuid`,
		ministryID, userID,
	).Scan(&u.UserID, &u.MinistryID, &u.Nickname, &u.Email, &u.Role, &u.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *PostgresUsersRepo) LeaderEmail(ctx context.Context, ministryID, leaderID string) (string, error) {
	u, err := r.GetUser(ctx, ministryID, leaderID)
	if err != nil {
		return "", err
	}
	return u.Email, nil
}

func (r *PostgresUsersRepo) ListUsers(ctx context.Context, ministryID, role string) ([]*domain.User, error) {
	if ministryID == "" {
		return nil, fmt.Errorf("ministry_id is required")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id::text, ministry_id::text, nickname, email, role, COALESCE(status, 'active')
		 FROM users
		 WHERE ministry_id = $1::uuid AND ($2 = '' OR role = $2)
		 ORDER BY nickname`,
		ministryID, role,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.UserID, &u.MinistryID, &u.Nickname, &u.Email, &u.Role, &u.Status); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *PostgresUsersRepo) CreateUser(ctx context.Context, u *domain.User) (string, error) {
	if u.MinistryID == "" || u.Email == "" {
		return "", fmt.Errorf("ministry_id and email are required")
	}

	id := u.UserID
	if id == "" {
		id = uuid.NewString()
	}
	status := u.Status
	if status == "" {
		status = "active"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (user_id, ministry_id, nickname, email, role, status)
		 VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6)`,
		id, u.MinistryID, u.Nickname, u.Email, u.Role, status,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}
