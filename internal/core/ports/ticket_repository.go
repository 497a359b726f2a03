package ports

import (
	"context"

	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/validation"
)

// TicketRepository defines the persistence interface for tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	FindByPkey(ctx context.Context, pkey string) (*domain.Ticket, error)
	FindByOwner(ctx context.Context, owner string) ([]domain.Ticket, error)
	// FindByStatus lists tickets carrying the given status. StatusAll
	// means unfiltered.
	FindByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error)
	// UpdateUnprocessed persists a validated update batch against the
	// ticket identified by pkey, but only while its processor is still
	// unset. The write is a single conditional update: when the ticket has
	// been claimed between the caller's read and this write, the store
	// rejects it with domain.ErrTicketProcessed instead of clobbering the
	// earlier claim.
	UpdateUnprocessed(ctx context.Context, pkey string, updates []validation.Update) (*domain.Ticket, error)
}
