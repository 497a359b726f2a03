package ports

import (
	"context"

	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/validation"
)

// UserService exposes the manager-facing user CRUD surface. It carries no
// business rule beyond field validation and uniqueness-by-username.
type UserService interface {
	Get(ctx context.Context, pkey string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, username, password, role string) (*domain.User, error)
	Update(ctx context.Context, pkey string, updates []validation.Update) (*domain.User, error)
	// Delete is not supported.
	Delete(ctx context.Context, pkey string) error
}
