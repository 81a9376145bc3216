package ports

import (
	"context"
	"time"

	"github.com/perfhub/performance-system/internal/core/domain"
)

// CreateGoalInput carries all data needed to create a new goal. The goal
// starts in DRAFT; ManagerID defaults to the employee's assigned manager
// when empty.
type CreateGoalInput struct {
	Title       string
	Description string
	Category    string
	DueDate     time.Time
	EmployeeID  string
	ManagerID   string
}

// UpdateGoalInput carries the editable fields of a goal. Nil pointers leave
// the field untouched.
type UpdateGoalInput struct {
	Title       *string
	Description *string
	Category    *string
	DueDate     *time.Time
}

// ReviewInput carries a manager's review decision payload.
type ReviewInput struct {
	GoalID   string
	Comments string
}

// ListGoalsInput carries all parameters for the list endpoint. RBAC scoping
// is derived from the actor by the service layer.
type ListGoalsInput struct {
	Status     string // optional; "all" or empty = no filter
	Category   string // optional
	EmployeeID string // optional; admins and managers may scope to one employee
	Search     string // optional: case-insensitive match on title or description
	Rated      string // optional: "rated" or "unrated" by self-rating presence
	Page       int    // 1-based
	Limit      int    // capped at 100 by the service
}

// ListGoalsResult is returned by ListGoals.
type ListGoalsResult struct {
	Items      []*domain.Goal
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// GoalService defines the use-case operations of the goal lifecycle engine.
// Every operation takes the acting principal explicitly.
type GoalService interface {
	CreateGoal(ctx context.Context, actor domain.Actor, input CreateGoalInput) (*domain.Goal, error)
	GetGoal(ctx context.Context, actor domain.Actor, goalID string) (*domain.Goal, error)
	ListGoals(ctx context.Context, actor domain.Actor, input ListGoalsInput) (*ListGoalsResult, error)
	UpdateGoal(ctx context.Context, actor domain.Actor, goalID string, input UpdateGoalInput) (*domain.Goal, error)

	// Lifecycle transitions. Each validates the edge and the actor through
	// the transition authorizer and persists nothing on failure.
	Submit(ctx context.Context, actor domain.Actor, goalID string) (*domain.Goal, error)
	Approve(ctx context.Context, actor domain.Actor, input ReviewInput) (*domain.Goal, error)
	Reject(ctx context.Context, actor domain.Actor, input ReviewInput) (*domain.Goal, error)
	RequestChanges(ctx context.Context, actor domain.Actor, input ReviewInput) (*domain.Goal, error)
	Complete(ctx context.Context, actor domain.Actor, goalID string) (*domain.Goal, error)
	Delete(ctx context.Context, actor domain.Actor, goalID string) (*domain.Goal, error)
}
