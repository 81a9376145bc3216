package ports

import (
	"context"
	"time"

	"github.com/perfhub/performance-system/internal/core/domain"
)

// ListGoalsFilter carries all query parameters for listing goals.
// EmployeeIDs is the RBAC scope resolved by the service layer.
type ListGoalsFilter struct {
	EmployeeIDs []string // nil = no scope (admin); non-nil = restrict to these owners
	Status      string   // optional: filter by goal status
	Category    string   // optional: filter by category
	Search      string   // optional: partial match on title or description
	Page        int      // 1-based
	Limit       int      // max rows per page (capped at 100 by service)
}

// TransitionUpdate describes a single status transition to persist. From
// guards the write: the update only applies while the stored status still
// equals From, so concurrent transitions lose the race cleanly.
type TransitionUpdate struct {
	From            domain.GoalStatus
	To              domain.GoalStatus
	ActorID         string
	Timestamp       time.Time
	ManagerComments *string    // set on review transitions (may point at "")
	ReviewedAt      *time.Time // set on approve/reject
	DeletedAt       *time.Time // set on soft delete
	DeletedByID     string
}

// GoalRepository defines persistence operations for goals.
type GoalRepository interface {
	Create(ctx context.Context, g *domain.Goal) error
	FindByID(ctx context.Context, goalID string) (*domain.Goal, error)
	// List returns a page of goals matching filter and the total count.
	List(ctx context.Context, filter ListGoalsFilter) ([]*domain.Goal, int64, error)
	// FindAll returns every goal; used by the statistics aggregator.
	FindAll(ctx context.Context) ([]*domain.Goal, error)
	// UpdateDetails persists the editable fields (title, description,
	// category, due date) and bumps updated_at.
	UpdateDetails(ctx context.Context, g *domain.Goal) error
	// ApplyTransition atomically applies upd to the goal and appends a
	// status-history entry. Returns domain.ErrInvalidTransition when the
	// stored status no longer matches upd.From.
	ApplyTransition(ctx context.Context, goalID string, upd TransitionUpdate) (*domain.Goal, error)
}
