package ports

import (
	"context"

	"github.com/perfhub/performance-system/internal/core/domain"
)

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role, managerID string) (*domain.User, error)
	// Login returns a signed session token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
