package ports

import (
	"context"

	"github.com/perfhub/performance-system/internal/core/domain"
)

// RatingRepository defines persistence operations for ratings. A goal holds
// at most one rating per kind; Upsert is keyed by (goal_id, kind).
type RatingRepository interface {
	Upsert(ctx context.Context, r *domain.Rating) (*domain.Rating, error)
	ListByGoal(ctx context.Context, goalID string) ([]domain.Rating, error)
	// SelfRatedGoalIDs reports which of the given goals carry a self-rating,
	// feeding the rated/unrated dashboard filter.
	SelfRatedGoalIDs(ctx context.Context, goalIDs []string) (map[string]bool, error)
}
