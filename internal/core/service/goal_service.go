package service

import (
	"fmt"
	"strings"
	"time"

	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/perfhub/performance-system/internal/api/metrics"
	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// editableStatuses are the states in which a goal's fields may still be edited.
var editableStatuses = map[domain.GoalStatus]bool{
	domain.StatusDraft:    true,
	domain.StatusRejected: true,
	domain.StatusModified: true,
}

type GoalService struct {
	goals   ports.GoalRepository
	users   ports.UserRepository
	ratings ports.RatingRepository
	logger  zerolog.Logger
}

func NewGoalService(goals ports.GoalRepository, users ports.UserRepository, ratings ports.RatingRepository, logger zerolog.Logger) *GoalService {
	return &GoalService{goals: goals, users: users, ratings: ratings, logger: logger}
}

// CreateGoal creates a new goal in DRAFT. The ownership kind is decided here,
// once, and never recomputed.
func (s *GoalService) CreateGoal(ctx context.Context, actor domain.Actor, input ports.CreateGoalInput) (*domain.Goal, error) {
	if err := validateGoalFields(input.Title, input.Category, input.DueDate); err != nil {
		return nil, err
	}

	employeeID := input.EmployeeID
	if employeeID == "" {
		employeeID = actor.ID
	}
	if actor.Role == domain.RoleEmployee && employeeID != actor.ID {
		return nil, domain.ErrForbidden
	}

	employee, err := s.users.FindByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	if actor.Role == domain.RoleManager && employeeID != actor.ID {
		if employee.Manager == nil || employee.Manager.ID != actor.ID {
			return nil, domain.ErrForbidden
		}
	}

	managerID := input.ManagerID
	if managerID == "" && employee.Manager != nil {
		managerID = employee.Manager.ID
	}
	if managerID == "" {
		// No assigned manager: the goal reviews itself (approval-process track).
		managerID = employeeID
	}

	ownership := domain.DecideOwnership(employeeID, managerID, employee.Role)
	now := time.Now().UTC()
	goal := &domain.Goal{
		ID:                uuid.NewString(),
		Title:             strings.TrimSpace(input.Title),
		Description:       input.Description,
		Status:            domain.StatusDraft,
		Category:          domain.GoalCategory(input.Category),
		DueDate:           input.DueDate,
		EmployeeID:        employeeID,
		ManagerID:         managerID,
		OwnershipKind:     ownership,
		IsApprovalProcess: ownership == domain.SelfAssigned,
		CreatedAt:         now,
		UpdatedAt:         now,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusDraft, Timestamp: now, ActorID: actor.ID},
		},
	}

	if err := s.goals.Create(ctx, goal); err != nil {
		s.logger.Error().Err(err).Str("employee_id", employeeID).Msg("failed to create goal")
		return nil, err
	}

	metrics.GoalsCreatedTotal.WithLabelValues(string(goal.Category)).Inc()
	s.logger.Info().Str("goal_id", goal.ID).Str("employee_id", employeeID).Str("ownership", string(ownership)).Msg("goal created")

	return goal, nil
}

// GetGoal retrieves a single goal, enforcing visibility: the owning employee,
// the assigned manager, and admins may see it.
func (s *GoalService) GetGoal(ctx context.Context, actor domain.Actor, goalID string) (*domain.Goal, error) {
	goal, err := s.goals.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if !canSee(actor, goal) {
		return nil, domain.ErrForbidden
	}
	return goal, nil
}

// ListGoals returns a page of goals visible to the actor. Employees see their
// own, managers see their own plus their reports', admins see everything.
func (s *GoalService) ListGoals(ctx context.Context, actor domain.Actor, input ports.ListGoalsInput) (*ports.ListGoalsResult, error) {
	scope, err := s.resolveScope(ctx, actor, input.EmployeeID)
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	page := input.Page
	if page <= 0 {
		page = 1
	}

	filter := ports.ListGoalsFilter{
		EmployeeIDs: scope,
		Status:      normalizeAll(input.Status),
		Category:    normalizeAll(input.Category),
		Search:      input.Search,
		Page:        page,
		Limit:       limit,
	}

	items, total, err := s.goals.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	// Rating presence is resolved against the ratings collection and applied
	// to the returned page; the total still counts the unfiltered match.
	if mode := domain.RatingPresence(normalizeAll(input.Rated)); mode == domain.PresenceRated || mode == domain.PresenceUnrated {
		ids := make([]string, 0, len(items))
		for _, g := range items {
			ids = append(ids, g.ID)
		}
		selfRated, err := s.ratings.SelfRatedGoalIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list goals: %w", err)
		}
		items = domain.ApplyFilters(items, domain.ByRatingPresence(mode, selfRated))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListGoalsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateGoal edits a goal's fields while it is still in an editable state
// (DRAFT, REJECTED, or MODIFIED).
func (s *GoalService) UpdateGoal(ctx context.Context, actor domain.Actor, goalID string, input ports.UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.goals.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && actor.ID != goal.EmployeeID {
		return nil, domain.ErrForbidden
	}
	if !editableStatuses[goal.Status] {
		return nil, fmt.Errorf("%w: goal in status %s cannot be edited", domain.ErrInvalidState, goal.Status)
	}

	if input.Title != nil {
		goal.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.Category != nil {
		goal.Category = domain.GoalCategory(*input.Category)
	}
	if input.DueDate != nil {
		goal.DueDate = *input.DueDate
	}
	if err := validateGoalFields(goal.Title, string(goal.Category), goal.DueDate); err != nil {
		return nil, err
	}

	goal.UpdatedAt = time.Now().UTC()
	if err := s.goals.UpdateDetails(ctx, goal); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}

	s.logger.Info().Str("goal_id", goal.ID).Msg("goal updated")
	return goal, nil
}

// Submit moves a goal from DRAFT (or MODIFIED, on resubmission) to PENDING.
func (s *GoalService) Submit(ctx context.Context, actor domain.Actor, goalID string) (*domain.Goal, error) {
	return s.transition(ctx, actor, goalID, domain.StatusPending, nil)
}

// Approve records the assigned manager's approval. Comments may be empty but
// the field is always persisted.
func (s *GoalService) Approve(ctx context.Context, actor domain.Actor, input ports.ReviewInput) (*domain.Goal, error) {
	return s.transition(ctx, actor, input.GoalID, domain.StatusApproved, &input.Comments)
}

// Reject records the assigned manager's rejection. Rejections require a
// non-empty explanation.
func (s *GoalService) Reject(ctx context.Context, actor domain.Actor, input ports.ReviewInput) (*domain.Goal, error) {
	if strings.TrimSpace(input.Comments) == "" {
		return nil, fmt.Errorf("%w: rejection requires manager comments", domain.ErrValidation)
	}
	return s.transition(ctx, actor, input.GoalID, domain.StatusRejected, &input.Comments)
}

// RequestChanges moves a PENDING goal to MODIFIED so the employee can revise
// and resubmit it.
func (s *GoalService) RequestChanges(ctx context.Context, actor domain.Actor, input ports.ReviewInput) (*domain.Goal, error) {
	return s.transition(ctx, actor, input.GoalID, domain.StatusModified, &input.Comments)
}

// Complete marks an APPROVED goal as done. Terminal.
func (s *GoalService) Complete(ctx context.Context, actor domain.Actor, goalID string) (*domain.Goal, error) {
	return s.transition(ctx, actor, goalID, domain.StatusCompleted, nil)
}

// Delete soft-deletes a goal from any non-terminal state. Irreversible.
func (s *GoalService) Delete(ctx context.Context, actor domain.Actor, goalID string) (*domain.Goal, error) {
	return s.transition(ctx, actor, goalID, domain.StatusDeleted, nil)
}

// transition is the single path every status change goes through: load,
// authorize, build the guarded update, persist. Nothing is written when any
// step fails.
func (s *GoalService) transition(ctx context.Context, actor domain.Actor, goalID string, to domain.GoalStatus, comments *string) (*domain.Goal, error) {
	goal, err := s.goals.FindByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanTransition(actor, goal, to); err != nil {
		reason := "forbidden"
		if err == domain.ErrInvalidTransition {
			reason = "invalid_transition"
			err = fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, goal.Status, to)
		}
		metrics.TransitionsRejectedTotal.WithLabelValues(reason).Inc()
		return nil, err
	}

	now := time.Now().UTC()
	upd := ports.TransitionUpdate{
		From:      goal.Status,
		To:        to,
		ActorID:   actor.ID,
		Timestamp: now,
	}
	switch to {
	case domain.StatusApproved, domain.StatusRejected:
		upd.ReviewedAt = &now
		upd.ManagerComments = comments
	case domain.StatusModified:
		upd.ManagerComments = comments
	case domain.StatusDeleted:
		upd.DeletedAt = &now
		upd.DeletedByID = actor.ID
	}

	updated, err := s.goals.ApplyTransition(ctx, goalID, upd)
	if err != nil {
		s.logger.Error().Err(err).
			Str("goal_id", goalID).
			Str("from", string(goal.Status)).
			Str("to", string(to)).
			Msg("transition failed")
		return nil, err
	}

	metrics.TransitionsAppliedTotal.WithLabelValues(string(goal.Status), string(to)).Inc()
	s.logger.Info().
		Str("goal_id", goalID).
		Str("from", string(goal.Status)).
		Str("to", string(to)).
		Str("actor_id", actor.ID).
		Msg("goal transitioned")

	return updated, nil
}

// resolveScope returns the employee ids the actor may list, nil meaning
// unrestricted (admin). requestedEmployee narrows the scope when permitted.
func (s *GoalService) resolveScope(ctx context.Context, actor domain.Actor, requestedEmployee string) ([]string, error) {
	requestedEmployee = normalizeAll(requestedEmployee)

	switch actor.Role {
	case domain.RoleAdmin:
		if requestedEmployee != "" {
			return []string{requestedEmployee}, nil
		}
		return nil, nil

	case domain.RoleManager:
		reports, err := s.users.ListByManager(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve scope: %w", err)
		}
		scope := []string{actor.ID}
		for _, r := range reports {
			scope = append(scope, r.ID)
		}
		if requestedEmployee == "" {
			return scope, nil
		}
		for _, id := range scope {
			if id == requestedEmployee {
				return []string{requestedEmployee}, nil
			}
		}
		return nil, domain.ErrForbidden

	default:
		if requestedEmployee != "" && requestedEmployee != actor.ID {
			return nil, domain.ErrForbidden
		}
		return []string{actor.ID}, nil
	}
}

func canSee(actor domain.Actor, g *domain.Goal) bool {
	return actor.Role == domain.RoleAdmin || actor.ID == g.EmployeeID || actor.ID == g.ManagerID
}

// normalizeAll maps the UI's "all" sentinel to the repository's empty filter.
func normalizeAll(v string) string {
	if v == domain.FilterAll {
		return ""
	}
	return v
}

func validateGoalFields(title, category string, dueDate time.Time) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be blank", domain.ErrValidation)
	}
	if !domain.GoalCategory(category).IsValid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}
	if dueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", domain.ErrValidation)
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if dueDate.Before(today) {
		return fmt.Errorf("%w: due date must be today or later", domain.ErrValidation)
	}
	return nil
}
