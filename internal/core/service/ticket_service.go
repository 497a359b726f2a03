package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/ports"
	"github.com/expenseops/ticketing-system/internal/core/validation"
	"github.com/expenseops/ticketing-system/internal/pkg/metrics"
)

// TicketService implements the ticket workflow: creation, lookup, and the
// guarded single-shot processing transition.
type TicketService struct {
	repo ports.TicketRepository
	log  zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, log zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, log: log}
}

// Get fetches a single ticket by pkey.
func (s *TicketService) Get(ctx context.Context, pkey string) (*domain.Ticket, error) {
	if !validation.ValidUUID(pkey) {
		return nil, fmt.Errorf("%w: ticket key is not a valid UUID", domain.ErrValidation)
	}
	return s.repo.FindByPkey(ctx, pkey)
}

// ListByOwner returns every ticket owned by the given user.
func (s *TicketService) ListByOwner(ctx context.Context, owner string) ([]domain.Ticket, error) {
	if !validation.ValidUUID(owner) {
		return nil, fmt.Errorf("%w: owner is not a valid UUID", domain.ErrValidation)
	}
	return s.repo.FindByOwner(ctx, owner)
}

// ListByStatus returns tickets filtered by status. StatusAll is the
// query-only sentinel for an unfiltered listing.
func (s *TicketService) ListByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	if !status.Filter() {
		return nil, fmt.Errorf("%w: invalid status filter %q", domain.ErrValidation, status)
	}
	return s.repo.FindByStatus(ctx, status)
}

// Create opens a new ticket. Status and processor are never taken from the
// caller: every ticket starts pending and unclaimed.
func (s *TicketService) Create(ctx context.Context, in ports.CreateTicketInput) (*domain.Ticket, error) {
	if !validation.ValidUUID(in.Owner) {
		return nil, fmt.Errorf("%w: owner is not a valid UUID", domain.ErrValidation)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be strictly positive", domain.ErrValidation)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", domain.ErrValidation)
	}

	ticketType := in.Type
	if ticketType == "" {
		ticketType = domain.DefaultTicketType
	}

	ticket := &domain.Ticket{
		Pkey:        uuid.NewString(),
		Status:      domain.StatusPending,
		Type:        ticketType,
		Amount:      in.Amount,
		Description: in.Description,
		Owner:       in.Owner,
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		s.log.Error().Err(err).Str("owner", in.Owner).Msg("failed to create ticket")
		return nil, err
	}

	metrics.TicketsCreatedTotal.Inc()
	s.log.Info().Str("ticket", ticket.Pkey).Str("owner", ticket.Owner).Msg("ticket created")
	return ticket, nil
}

// Update applies a validated update batch to a still-pending ticket.
//
// The caller id is appended as a forced {processor, callerID} edit before
// validation runs, so the actor transitioning the ticket is always recorded
// and no batch can assign the processor to anyone but the acting caller.
// The claim guard rejects any ticket whose processor is already set, and
// the repository write is conditional on the processor still being unset,
// so two racing managers cannot both process the same ticket.
func (s *TicketService) Update(ctx context.Context, pkey, callerID string, updates []validation.Update) (*domain.Ticket, error) {
	if !validation.ValidUUID(pkey) {
		return nil, fmt.Errorf("%w: ticket key is not a valid UUID", domain.ErrValidation)
	}
	for _, u := range updates {
		if u.Property == "pkey" {
			return nil, fmt.Errorf("%w: pkey is immutable", domain.ErrValidation)
		}
	}

	updates = append(updates, validation.Update{Property: "processor", Value: callerID})
	if err := validation.ValidateUpdates(validation.EntityTicket, updates); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByPkey(ctx, pkey)
	if err != nil {
		return nil, err
	}
	if current.Processed() {
		metrics.TicketConflictsTotal.Inc()
		return nil, domain.ErrTicketProcessed
	}

	for _, u := range updates {
		if u.Property != "status" {
			continue
		}
		next := domain.TicketStatus(u.Value.(string))
		if !current.Status.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: status %s cannot transition to %s", domain.ErrValidation, current.Status, next)
		}
	}

	updated, err := s.repo.UpdateUnprocessed(ctx, pkey, updates)
	if err != nil {
		if errors.Is(err, domain.ErrTicketProcessed) {
			// Lost the race: another caller claimed the ticket between our
			// read and the conditional write.
			metrics.TicketConflictsTotal.Inc()
		}
		return nil, err
	}

	metrics.TicketsProcessedTotal.WithLabelValues(string(updated.Status)).Inc()
	s.log.Info().
		Str("ticket", updated.Pkey).
		Str("processor", callerID).
		Str("status", string(updated.Status)).
		Msg("ticket processed")
	return updated, nil
}

// Delete always reports the operation as unsupported: tickets are
// append-only history.
func (s *TicketService) Delete(ctx context.Context, pkey string) error {
	return domain.ErrNotSupported
}
