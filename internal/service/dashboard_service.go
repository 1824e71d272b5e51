package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/execsgroup/zowehlife-sub005/internal/events"
	"github.com/execsgroup/zowehlife-sub005/internal/repository"
	"github.com/execsgroup/zowehlife-sub005/internal/status"
	"github.com/execsgroup/zowehlife-sub005/internal/store"
)

const dashboardCacheTTL = 5 * time.Minute

// DashboardStats canonical lifecycle counts for one ministry.
type DashboardStats struct {
	MinistryID   string `json:"ministry_id"`
	Total        int    `json:"total"`
	New          int    `json:"new"`
	Scheduled    int    `json:"scheduled"`
	Completed    int    `json:"completed"`
	NotConnected int    `json:"not_connected"`
}

// DashboardService aggregates person counts onto the canonical four
// statuses, cached in Redis. It registers as a status-change listener
// so the cache is dropped as soon as any person in the ministry moves.
type DashboardService struct {
	people repository.PeopleRepo
	kv     store.KV
	logger *zap.Logger
}

func NewDashboardService(people repository.PeopleRepo, kv store.KV, logger *zap.Logger) *DashboardService {
	return &DashboardService{people: people, kv: kv, logger: logger}
}

var _ events.StatusListener = (*DashboardService)(nil)

func dashboardCacheKey(ministryID string) string {
	return "dashboard:stats:" + ministryID
}

// Stats returns the ministry's lifecycle counts, from cache when fresh.
// A raw status the display table does not know fails the whole read:
// a dashboard silently dropping people would hide data corruption.
func (s *DashboardService) Stats(ctx context.Context, ministryID string) (*DashboardStats, error) {
	key := dashboardCacheKey(ministryID)

	if cached, err := s.kv.Get(ctx, key); err == nil {
		var stats DashboardStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
		// Unreadable cache entry: fall through and recompute.
	}

	counts, err := s.people.CountByStatus(ctx, ministryID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{MinistryID: ministryID}
	for raw, n := range counts {
		canonical, err := status.ToCanonical(raw)
		if err != nil {
			s.logger.Error("Dashboard hit unknown status token",
				zap.String("ministry_id", ministryID),
				zap.String("token", raw),
				zap.Error(err),
			)
			return nil, fmt.Errorf("dashboard stats: %w", err)
		}
		stats.Total += n
		switch canonical {
		case status.New:
			stats.New += n
		case status.Scheduled:
			stats.Scheduled += n
		case status.Completed:
			stats.Completed += n
		case status.NotConnected:
			stats.NotConnected += n
		}
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.kv.Set(ctx, key, string(payload), dashboardCacheTTL); err != nil {
			s.logger.Warn("Failed to cache dashboard stats", zap.Error(err))
		}
	}

	return stats, nil
}

// OnStatusChange invalidates the ministry's cached stats.
func (s *DashboardService) OnStatusChange(ctx context.Context, change events.StatusChange) {
	if err := s.kv.Del(ctx, dashboardCacheKey(change.MinistryID)); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache",
			zap.String("ministry_id", change.MinistryID),
			zap.Error(err),
		)
	}
}
