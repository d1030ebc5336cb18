package ports

import (
	"context"

	"github.com/zerowaste/connect-share/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Create stores user, returning domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
