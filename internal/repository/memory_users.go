package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
)

// MemoryUsersRepo staff accounts for DB-less dev and unit tests.
type MemoryUsersRepo struct {
	mu    sync.RWMutex
	users map[string]domain.User // userID -> User
}

func NewMemoryUsersRepo() *MemoryUsersRepo {
	return &MemoryUsersRepo{users: map[string]domain.User{}}
}

var _ UsersRepo = (*MemoryUsersRepo)(nil)

func (r *MemoryUsersRepo) GetUser(_ context.Context, ministryID, userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok || u.MinistryID != ministryID {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return &u, nil
}

func (r *MemoryUsersRepo) LeaderEmail(ctx context.Context, ministryID, leaderID string) (string, error) {
	u, err := r.GetUser(ctx, ministryID, leaderID)
	if err != nil {
		return "", err
	}
	return u.Email, nil
}

func (r *MemoryUsersRepo) ListUsers(_ context.Context, ministryID, role string) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []*domain.User
	for _, u := range r.users {
		if u.MinistryID != ministryID {
			continue
		}
		if role != "" && u.Role != role {
			continue
		}
		copied := u
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].Nickname < users[j].Nickname
	})
	return users, nil
}

func (r *MemoryUsersRepo) CreateUser(_ context.Context, u *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := u.UserID
	if id == "" {
		id = uuid.NewString()
	}
	stored := *u
	stored.UserID = id
	if stored.Status == "" {
		stored.Status = "active"
	}
	r.users[id] = stored
	return id, nil
}
