package ports

import (
	"context"

	"github.com/perfhub/performance-system/internal/core/domain"
)

// SubmitRatingInput carries a rating submission.
type SubmitRatingInput struct {
	GoalID   string
	Score    int
	Comments string
}

// GoalRatings bundles a goal's rating records with their formatted average.
type GoalRatings struct {
	Ratings []domain.Rating
	Average string // one-decimal string, "0.0" when no ratings exist
}

// RatingService handles self- and manager-rating submissions.
type RatingService interface {
	// SubmitSelfRating upserts the employee's rating of their own goal.
	SubmitSelfRating(ctx context.Context, actor domain.Actor, input SubmitRatingInput) (*domain.Rating, error)
	// SubmitManagerRating upserts the assigned manager's rating of the goal.
	SubmitManagerRating(ctx context.Context, actor domain.Actor, input SubmitRatingInput) (*domain.Rating, error)
	ListGoalRatings(ctx context.Context, actor domain.Actor, goalID string) (*GoalRatings, error)
}
