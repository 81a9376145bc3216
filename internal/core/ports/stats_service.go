package ports

import (
	"context"
	"time"

	"github.com/perfhub/performance-system/internal/core/domain"
)

// DashboardSnapshot is the aggregated view served to every dashboard.
// EmployeeGoals and ApprovalProcess partition the collection by ownership
// kind; All covers the whole collection.
type DashboardSnapshot struct {
	All             domain.Stats `json:"all"`
	EmployeeGoals   domain.Stats `json:"employeeGoals"`
	ApprovalProcess domain.Stats `json:"approvalProcess"`
	GeneratedAt     time.Time    `json:"generatedAt"`
}

// StatsService computes and caches dashboard statistics.
type StatsService interface {
	// Dashboard returns the current snapshot, serving a cached copy when one
	// is fresh enough. Managers receive stats scoped to their reports;
	// employees to their own goals; admins see everything.
	Dashboard(ctx context.Context, actor domain.Actor) (*DashboardSnapshot, error)
	// Refresh recomputes and caches the global snapshot. Called by the
	// background poller.
	Refresh(ctx context.Context) error
}
