package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
)

// MemoryMinistriesRepo backs ministry management when DB is disabled
// (local dev) and in unit tests.
// NOTE: this is platform-level data, not per-ministry.
type MemoryMinistriesRepo struct {
	mu         sync.RWMutex
	ministries map[string]domain.Ministry // ministryID -> Ministry
}

func NewMemoryMinistriesRepo() *MemoryMinistriesRepo {
	return &MemoryMinistriesRepo{
		ministries: map[string]domain.Ministry{},
	}
}

var _ MinistriesRepo = (*MemoryMinistriesRepo)(nil)

func (r *MemoryMinistriesRepo) GetMinistry(_ context.Context, ministryID string) (*domain.Ministry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.ministries[ministryID]
	if !ok {
		return nil, fmt.Errorf("ministry %s: %w", ministryID, ErrNotFound)
	}
	return &m, nil
}

func (r *MemoryMinistriesRepo) ListMinistries(_ context.Context, filter MinistryFilters, page, size int) ([]*domain.Ministry, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Ministry, 0, len(r.ministries))
	for _, m := range r.ministries {
		if filter.Status != "" && m.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(m.MinistryName), strings.ToLower(filter.Search)) {
			continue
		}
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].MinistryName < all[j].MinistryName
	})

	total := len(all)
	start, end := pageBounds(total, page, size)

	out := make([]*domain.Ministry, 0, end-start)
	for i := start; i < end; i++ {
		m := all[i]
		out = append(out, &m)
	}
	return out, total, nil
}

func (r *MemoryMinistriesRepo) CreateMinistry(_ context.Context, m *domain.Ministry) (string, error) {
	if m.MinistryName == "" {
		return "", fmt.Errorf("ministry_name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := m.MinistryID
	if id == "" {
		id = uuid.NewString()
	}
	stored := *m
	stored.MinistryID = id
	if stored.Status == "" {
		stored.Status = domain.MinistryStatusActive
	}
	r.ministries[id] = stored
	return id, nil
}

func (r *MemoryMinistriesRepo) UpdateMinistry(_ context.Context, ministryID string, m *domain.Ministry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.ministries[ministryID]
	if !ok {
		return fmt.Errorf("ministry %s: %w", ministryID, ErrNotFound)
	}

	existing.MinistryName = m.MinistryName
	existing.Domain = m.Domain
	existing.Email = m.Email
	existing.Phone = m.Phone
	existing.Metadata = m.Metadata
	r.ministries[ministryID] = existing
	return nil
}

func (r *MemoryMinistriesRepo) SetMinistryStatus(_ context.Context, ministryID string, status string) error {
	if status != domain.MinistryStatusActive && status != domain.MinistryStatusArchived {
		return fmt.Errorf("invalid ministry status: %s", status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.ministries[ministryID]
	if !ok {
		return fmt.Errorf("ministry %s: %w", ministryID, ErrNotFound)
	}
	existing.Status = status
	r.ministries[ministryID] = existing
	return nil
}

func pageBounds(total, page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 50
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}
