package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/perfhub/performance-system/internal/api/metrics"
	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

type RatingService struct {
	ratings ports.RatingRepository
	goals   ports.GoalRepository
	logger  zerolog.Logger
}

func NewRatingService(ratings ports.RatingRepository, goals ports.GoalRepository, logger zerolog.Logger) *RatingService {
	return &RatingService{ratings: ratings, goals: goals, logger: logger}
}

// SubmitSelfRating upserts the owning employee's rating of their goal.
// Only the employee themselves may author it, regardless of role.
func (s *RatingService) SubmitSelfRating(ctx context.Context, actor domain.Actor, input ports.SubmitRatingInput) (*domain.Rating, error) {
	return s.submit(ctx, actor, input, domain.RatingSelf)
}

// SubmitManagerRating upserts the assigned manager's rating of the goal.
func (s *RatingService) SubmitManagerRating(ctx context.Context, actor domain.Actor, input ports.SubmitRatingInput) (*domain.Rating, error) {
	return s.submit(ctx, actor, input, domain.RatingManager)
}

func (s *RatingService) submit(ctx context.Context, actor domain.Actor, input ports.SubmitRatingInput, kind domain.RatingKind) (*domain.Rating, error) {
	if !domain.ValidScore(input.Score) {
		return nil, fmt.Errorf("%w: score must be between %d and %d", domain.ErrValidation, domain.MinScore, domain.MaxScore)
	}

	goal, err := s.goals.FindByID(ctx, input.GoalID)
	if err != nil {
		return nil, err
	}
	if goal.Status == domain.StatusDeleted {
		return nil, fmt.Errorf("%w: cannot rate a deleted goal", domain.ErrInvalidState)
	}

	switch kind {
	case domain.RatingSelf:
		if actor.ID != goal.EmployeeID {
			return nil, domain.ErrForbidden
		}
	case domain.RatingManager:
		if actor.ID != goal.ManagerID {
			return nil, domain.ErrForbidden
		}
	}

	rating := &domain.Rating{
		ID:        uuid.NewString(),
		GoalID:    goal.ID,
		Kind:      kind,
		Score:     input.Score,
		Comments:  input.Comments,
		AuthorID:  actor.ID,
		UpdatedAt: time.Now().UTC(),
	}

	saved, err := s.ratings.Upsert(ctx, rating)
	if err != nil {
		s.logger.Error().Err(err).Str("goal_id", goal.ID).Str("kind", string(kind)).Msg("failed to upsert rating")
		return nil, err
	}

	metrics.RatingsSubmittedTotal.WithLabelValues(string(kind)).Inc()
	s.logger.Info().Str("goal_id", goal.ID).Str("kind", string(kind)).Int("score", input.Score).Msg("rating submitted")

	return saved, nil
}

// ListGoalRatings returns a goal's rating records with their formatted
// average, visible to the owner, the assigned manager, and admins.
func (s *RatingService) ListGoalRatings(ctx context.Context, actor domain.Actor, goalID string) (*ports.GoalRatings, error) {
	goal, err := s.goals.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && actor.ID != goal.EmployeeID && actor.ID != goal.ManagerID {
		return nil, domain.ErrForbidden
	}

	ratings, err := s.ratings.ListByGoal(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	return &ports.GoalRatings{
		Ratings: ratings,
		Average: domain.AverageScore(ratings),
	}, nil
}
