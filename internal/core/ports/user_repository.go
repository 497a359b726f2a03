package ports

import (
	"context"

	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/validation"
)

// UserRepository defines the persistence interface for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByPkey(ctx context.Context, pkey string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	// ApplyUpdates persists a validated update batch against the user
	// identified by pkey and returns the updated record.
	ApplyUpdates(ctx context.Context, pkey string, updates []validation.Update) (*domain.User, error)
}
