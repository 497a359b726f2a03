package ports

import (
	"context"

	"github.com/expenseops/ticketing-system/internal/core/domain"
)

// AuthService implements registration and login, returning the user record
// alongside a freshly issued bearer token.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}
