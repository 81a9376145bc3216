package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/perfhub/performance-system/internal/api/metrics"
	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

// SnapshotCache abstracts the dashboard snapshot store (Redis).
type SnapshotCache interface {
	// Get returns the cached snapshot, or (nil, nil) on a miss.
	Get(ctx context.Context) (*ports.DashboardSnapshot, error)
	Set(ctx context.Context, snap *ports.DashboardSnapshot) error
}

type statsService struct {
	goals ports.GoalRepository
	cache SnapshotCache
	log   zerolog.Logger
}

// NewStatsService returns a StatsService implementation backed by the given
// cache. The cache covers only the global (admin) snapshot; scoped views are
// cheap enough to compute per request.
func NewStatsService(goals ports.GoalRepository, cache SnapshotCache, log zerolog.Logger) ports.StatsService {
	return &statsService{goals: goals, cache: cache, log: log}
}

// Dashboard serves the snapshot for the actor's scope. Cache failures degrade
// to a recompute, never to an error.
func (s *statsService) Dashboard(ctx context.Context, actor domain.Actor) (*ports.DashboardSnapshot, error) {
	if actor.Role == domain.RoleAdmin {
		snap, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("snapshot cache read failed, recomputing")
		} else if snap != nil {
			return snap, nil
		}

		snap, err = s.compute(ctx, actor)
		if err != nil {
			return nil, err
		}
		if cacheErr := s.cache.Set(ctx, snap); cacheErr != nil {
			s.log.Warn().Err(cacheErr).Msg("snapshot cache write failed")
		}
		return snap, nil
	}

	return s.compute(ctx, actor)
}

// Refresh recomputes the global snapshot and stores it. Invoked by the
// background poller every refresh interval.
func (s *statsService) Refresh(ctx context.Context) error {
	start := time.Now()

	snap, err := s.compute(ctx, domain.Actor{Role: domain.RoleAdmin})
	if err != nil {
		return fmt.Errorf("refresh snapshot: %w", err)
	}
	if err := s.cache.Set(ctx, snap); err != nil {
		return fmt.Errorf("refresh snapshot: cache write: %w", err)
	}

	metrics.SnapshotRefreshDuration.Observe(time.Since(start).Seconds())
	s.log.Debug().Int("total_goals", snap.All.Total).Msg("dashboard snapshot refreshed")
	return nil
}

func (s *statsService) compute(ctx context.Context, actor domain.Actor) (*ports.DashboardSnapshot, error) {
	goals, err := s.goals.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute snapshot: %w", err)
	}

	goals = scopeGoals(actor, goals)
	employee, approval := domain.SplitByOwnership(goals)

	return &ports.DashboardSnapshot{
		All:             domain.Aggregate(goals),
		EmployeeGoals:   domain.Aggregate(employee),
		ApprovalProcess: domain.Aggregate(approval),
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// scopeGoals narrows the collection to what the actor may see: everything for
// admins, own-or-managed goals for managers, own goals for employees.
func scopeGoals(actor domain.Actor, goals []*domain.Goal) []*domain.Goal {
	switch actor.Role {
	case domain.RoleAdmin:
		return goals
	case domain.RoleManager:
		out := make([]*domain.Goal, 0, len(goals))
		for _, g := range goals {
			if g.ManagerID == actor.ID || g.EmployeeID == actor.ID {
				out = append(out, g)
			}
		}
		return out
	default:
		return domain.ApplyFilters(goals, domain.ByEmployee(actor.ID))
	}
}
