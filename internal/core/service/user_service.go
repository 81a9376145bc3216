package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
)

type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// ListUsers returns accounts matching the filter. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor domain.Actor, filter ports.ListUsersFilter) ([]*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx, filter)
}

// CreateUser provisions a new account. Admin only.
func (s *UserService) CreateUser(ctx context.Context, actor domain.Actor, input ports.CreateUserInput) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	if !domain.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var manager *domain.UserRef
	if input.ManagerID != "" {
		m, err := s.users.FindByID(ctx, input.ManagerID)
		if err != nil {
			return nil, fmt.Errorf("create user: manager lookup: %w", err)
		}
		ref := m.Ref()
		manager = &ref
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        strings.ToLower(input.Email),
		PasswordHash: string(hash),
		Role:         input.Role,
		Status:       domain.UserActive,
		Manager:      manager,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

// UpdateUser edits an existing account. Admin only.
func (s *UserService) UpdateUser(ctx context.Context, actor domain.Actor, userID string, input ports.UpdateUserInput) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = strings.ToLower(*input.Email)
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, *input.Role)
		}
		user.Role = *input.Role
	}
	if input.Status != nil {
		if *input.Status != domain.UserActive && *input.Status != domain.UserInactive {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *input.Status)
		}
		user.Status = *input.Status
	}
	if input.ManagerID != nil {
		if *input.ManagerID == "" {
			user.Manager = nil
		} else {
			m, err := s.users.FindByID(ctx, *input.ManagerID)
			if err != nil {
				return nil, fmt.Errorf("update user: manager lookup: %w", err)
			}
			ref := m.Ref()
			user.Manager = &ref
		}
	}

	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}

// DeactivateUser marks the account INACTIVE. Accounts are never hard-deleted;
// their goals and ratings stay attributable.
func (s *UserService) DeactivateUser(ctx context.Context, actor domain.Actor, userID string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Status = domain.UserInactive
	user.UpdatedAt = time.Now().UTC()

	if _, err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("user deactivated")
	return nil
}

// ListEmployees returns the active directory (all roles) for people pickers.
func (s *UserService) ListEmployees(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	return s.users.List(ctx, ports.ListUsersFilter{Status: domain.UserActive})
}

// ListAssigned returns the calling manager's active direct reports, with the
// reports attached so dashboards can render the team without extra lookups.
func (s *UserService) ListAssigned(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if actor.Role != domain.RoleManager && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.users.ListByManager(ctx, actor.ID)
}
