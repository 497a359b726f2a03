package ports

import (
	"context"

	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/validation"
)

// CreateTicketInput carries the caller-controllable fields of a new ticket.
// Status and processor are never accepted from callers; creation always
// starts a ticket at pending with no processor.
type CreateTicketInput struct {
	Owner       string
	Amount      float64
	Description string
	Type        string
}

// TicketService orchestrates validation, the workflow guard, and
// persistence for tickets.
type TicketService interface {
	Get(ctx context.Context, pkey string) (*domain.Ticket, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.Ticket, error)
	ListByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error)
	Create(ctx context.Context, in CreateTicketInput) (*domain.Ticket, error)
	// Update applies a validated update batch to a still-pending ticket.
	// The acting caller is always recorded as the processor.
	Update(ctx context.Context, pkey, callerID string, updates []validation.Update) (*domain.Ticket, error)
	// Delete is not supported; tickets are immutable-by-removal.
	Delete(ctx context.Context, pkey string) error
}
