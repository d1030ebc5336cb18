package ports

import (
	"context"

	"github.com/zerowaste/connect-share/internal/core/domain"
)

// RegisterInput carries a new account's details.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role
	Phone    string
	Location *domain.Location
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
