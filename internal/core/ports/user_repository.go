package ports

import (
	"context"

	"github.com/perfhub/performance-system/internal/core/domain"
)

// ListUsersFilter carries query parameters for the admin user list.
type ListUsersFilter struct {
	Role   string // optional: filter by role
	Status string // optional: ACTIVE or INACTIVE
	Search string // optional: partial match on name or email
}

// UserRepository defines persistence operations for users. It serves both
// authentication and user administration.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	// ListByManager returns the active direct reports of the given manager.
	ListByManager(ctx context.Context, managerID string) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}
