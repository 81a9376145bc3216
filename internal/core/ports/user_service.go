package ports

import (
	"context"

	"github.com/perfhub/performance-system/internal/core/domain"
)

// CreateUserInput carries the fields for an admin-created account.
type CreateUserInput struct {
	Name      string
	Email     string
	Password  string
	Role      string
	ManagerID string // optional; stored as a snapshot reference
}

// UpdateUserInput carries the editable account fields. Nil pointers leave the
// field untouched.
type UpdateUserInput struct {
	Name      *string
	Email     *string
	Role      *string
	Status    *string
	ManagerID *string
}

// UserService handles user administration and the employee directory.
type UserService interface {
	ListUsers(ctx context.Context, actor domain.Actor, filter ListUsersFilter) ([]*domain.User, error)
	CreateUser(ctx context.Context, actor domain.Actor, input CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, actor domain.Actor, userID string, input UpdateUserInput) (*domain.User, error)
	// DeactivateUser soft-deactivates the account (status INACTIVE); accounts
	// are never hard-deleted.
	DeactivateUser(ctx context.Context, actor domain.Actor, userID string) error
	// ListEmployees returns the active employee directory visible to the actor.
	ListEmployees(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
	// ListAssigned returns the direct reports of the calling manager.
	ListAssigned(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
}

// SettingsService reads and writes the display configuration.
type SettingsService interface {
	// GetSettings is tolerant: a missing document returns defaults.
	GetSettings(ctx context.Context) (*domain.Settings, error)
	SaveSettings(ctx context.Context, actor domain.Actor, s domain.Settings) (*domain.Settings, error)
}

// SettingsRepository persists the single settings document.
type SettingsRepository interface {
	// Get returns (nil, nil) when no document has been saved yet.
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, s *domain.Settings) error
}
