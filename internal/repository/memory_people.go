package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
)

// MemoryPeopleRepo backs people/check-in flows when DB is disabled and
// in unit tests. One mutex covers people and check-ins together, which
// gives RecordCheckin the same per-person write serialization the
// Postgres repo gets from its row lock.
type MemoryPeopleRepo struct {
	mu       sync.RWMutex
	people   map[string]domain.Person    // personID -> Person
	checkins map[string][]domain.Checkin // personID -> history (append order)
}

func NewMemoryPeopleRepo() *MemoryPeopleRepo {
	return &MemoryPeopleRepo{
		people:   map[string]domain.Person{},
		checkins: map[string][]domain.Checkin{},
	}
}

var _ PeopleRepo = (*MemoryPeopleRepo)(nil)

func (r *MemoryPeopleRepo) GetPerson(_ context.Context, ministryID, personID string) (*domain.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.people[personID]
	if !ok || p.MinistryID != ministryID {
		return nil, fmt.Errorf("person %s: %w", personID, ErrNotFound)
	}
	return &p, nil
}

func (r *MemoryPeopleRepo) ListPeople(_ context.Context, ministryID string, filter PersonFilters, page, size int) ([]*domain.Person, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]domain.Person, 0, len(r.people))
	for _, p := range r.people {
		if p.MinistryID != ministryID {
			continue
		}
		if filter.Kind != "" && p.Kind != filter.Kind {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			s := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.FirstName), s) &&
				!strings.Contains(strings.ToLower(p.LastName), s) {
				continue
			}
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	start, end := pageBounds(total, page, size)

	out := make([]*domain.Person, 0, end-start)
	for i := start; i < end; i++ {
		p := all[i]
		out = append(out, &p)
	}
	return out, total, nil
}

func (r *MemoryPeopleRepo) CreatePerson(_ context.Context, p *domain.Person) (string, error) {
	if p.MinistryID == "" {
		return "", fmt.Errorf("ministry_id is required")
	}
	if p.FirstName == "" {
		return "", fmt.Errorf("first_name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := p.PersonID
	if id == "" {
		id = uuid.NewString()
	}
	stored := *p
	stored.PersonID = id
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.people[id] = stored
	return id, nil
}

func (r *MemoryPeopleRepo) RecordCheckin(_ context.Context, rec CheckinRecord) (*domain.Person, *domain.Checkin, error) {
	if rec.Checkin == nil {
		return nil, nil, fmt.Errorf("checkin is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.people[rec.PersonID]
	if !ok || p.MinistryID != rec.MinistryID {
		return nil, nil, fmt.Errorf("person %s: %w", rec.PersonID, ErrNotFound)
	}

	if rec.CompletesCheckinID != "" {
		closed := false
		history := r.checkins[rec.PersonID]
		for i := range history {
			if history[i].CheckinID == rec.CompletesCheckinID && history[i].CompletedAt == nil {
				now := time.Now()
				history[i].CompletedAt = &now
				closed = true
				break
			}
		}
		if !closed {
			return nil, nil, fmt.Errorf("scheduled checkin %s: %w", rec.CompletesCheckinID, ErrNotFound)
		}
	}

	c := *rec.Checkin
	if c.CheckinID == "" {
		c.CheckinID = uuid.NewString()
	}
	c.MinistryID = rec.MinistryID
	c.PersonID = rec.PersonID
	if c.CheckinDate.IsZero() {
		c.CheckinDate = time.Now()
	}
	c.NextFollowupDate = rec.NextFollowupDate
	c.NextFollowupTime = rec.NextFollowupTime
	c.CreatedAt = time.Now()
	r.checkins[rec.PersonID] = append(r.checkins[rec.PersonID], c)

	p.Status = rec.NewStatus
	p.NextFollowupDate = rec.NextFollowupDate
	p.NextFollowupTime = rec.NextFollowupTime
	r.people[rec.PersonID] = p

	return &p, &c, nil
}

func (r *MemoryPeopleRepo) GetCheckin(_ context.Context, ministryID, checkinID string) (*domain.Checkin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, history := range r.checkins {
		for i := range history {
			if history[i].CheckinID == checkinID && history[i].MinistryID == ministryID {
				c := history[i]
				return &c, nil
			}
		}
	}
	return nil, fmt.Errorf("checkin %s: %w", checkinID, ErrNotFound)
}

func (r *MemoryPeopleRepo) ListCheckins(_ context.Context, ministryID, personID string) ([]*domain.Checkin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.people[personID]
	if !ok || p.MinistryID != ministryID {
		return nil, fmt.Errorf("person %s: %w", personID, ErrNotFound)
	}

	history := r.checkins[personID]
	out := make([]*domain.Checkin, 0, len(history))
	// newest first
	for i := len(history) - 1; i >= 0; i-- {
		c := history[i]
		out = append(out, &c)
	}
	return out, nil
}

func (r *MemoryPeopleRepo) CountByStatus(_ context.Context, ministryID string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[string]int{}
	for _, p := range r.people {
		if p.MinistryID != ministryID {
			continue
		}
		counts[p.Status]++
	}
	return counts, nil
}
