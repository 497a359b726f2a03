package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/ports"
	"github.com/expenseops/ticketing-system/internal/core/validation"
)

const (
	ownerID   = "0a6f9d1e-3b52-4d8a-8a6f-6f2f1b3c9d01"
	managerID = "7c1d2e3f-4a5b-4c6d-8e9f-0a1b2c3d4e5f"
)

func newTicketService(repo *stubTicketRepo) *TicketService {
	return NewTicketService(repo, zerolog.Nop())
}

func TestTicketService_Create_Defaults(t *testing.T) {
	svc := newTicketService(newStubTicketRepo())

	ticket, err := svc.Create(context.Background(), ports.CreateTicketInput{
		Owner:       ownerID,
		Amount:      2.99,
		Description: "lunch",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ticket.Status != domain.StatusPending {
		t.Fatalf("expected pending, got %s", ticket.Status)
	}
	if ticket.Processed() {
		t.Fatalf("new ticket must have no processor")
	}
	if ticket.Type != domain.DefaultTicketType {
		t.Fatalf("expected default type, got %s", ticket.Type)
	}
	if !validation.ValidUUID(ticket.Pkey) {
		t.Fatalf("expected generated pkey to be a UUID, got %q", ticket.Pkey)
	}
}

func TestTicketService_Create_Invalid(t *testing.T) {
	svc := newTicketService(newStubTicketRepo())

	cases := []ports.CreateTicketInput{
		{Owner: "not-a-uuid", Amount: 1, Description: "x"},
		{Owner: ownerID, Amount: 0, Description: "x"},
		{Owner: ownerID, Amount: -5, Description: "x"},
		{Owner: ownerID, Amount: 1, Description: ""},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("input %+v: expected ErrValidation, got %v", in, err)
		}
	}
}

func TestTicketService_Update_RecordsProcessor(t *testing.T) {
	repo := newStubTicketRepo()
	svc := newTicketService(repo)

	ticket, _ := svc.Create(context.Background(), ports.CreateTicketInput{
		Owner: ownerID, Amount: 2.99, Description: "lunch",
	})

	updated, err := svc.Update(context.Background(), ticket.Pkey, managerID, []validation.Update{
		{Property: "status", Value: "approved"},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.StatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}
	if updated.Processor != managerID {
		t.Fatalf("expected processor %s, got %s", managerID, updated.Processor)
	}
}

func TestTicketService_Update_SecondAttemptRejected(t *testing.T) {
	repo := newStubTicketRepo()
	svc := newTicketService(repo)

	ticket, _ := svc.Create(context.Background(), ports.CreateTicketInput{
		Owner: ownerID, Amount: 2.99, Description: "lunch",
	})

	updates := []validation.Update{{Property: "status", Value: "approved"}}
	if _, err := svc.Update(context.Background(), ticket.Pkey, managerID, updates); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	// The identical batch is rejected the second time: the first set the
	// processor and the ticket is closed to further mutation.
	if _, err := svc.Update(context.Background(), ticket.Pkey, managerID, updates); !errors.Is(err, domain.ErrTicketProcessed) {
		t.Fatalf("expected ErrTicketProcessed, got %v", err)
	}
}

func TestTicketService_Update_RejectedByAnyRole(t *testing.T) {
	repo := newStubTicketRepo()
	svc := newTicketService(repo)

	ticket, _ := svc.Create(context.Background(), ports.CreateTicketInput{
		Owner: ownerID, Amount: 10, Description: "taxi",
	})
	if _, err := svc.Update(context.Background(), ticket.Pkey, managerID, []validation.Update{
		{Property: "status", Value: "denied"},
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// A different caller fares no better once the ticket is claimed.
	if _, err := svc.Update(context.Background(), ticket.Pkey, ownerID, []validation.Update{
		{Property: "amount", Value: 1.0},
	}); !errors.Is(err, domain.ErrTicketProcessed) {
		t.Fatalf("expected ErrTicketProcessed, got %v", err)
	}
}

func TestTicketService_Update_InvalidBatch(t *testing.T) {
	repo := newStubTicketRepo()
	svc := newTicketService(repo)

	ticket, _ := svc.Create(context.Background(), ports.CreateTicketInput{
		Owner: ownerID, Amount: 5, Description: "parking",
	})

	cases := [][]validation.Update{
		{{Property: "priority", Value: "high"}},
		{{Property: "amount", Value: "1.00"}},
		{{Property: "status", Value: "all"}},
		{{Property: "status", Value: "pending"}}, // pending → pending is not a transition
		{{Property: "type", Value: "travel"}},    // type is fixed at creation
		{{Property: "pkey", Value: ticket.Pkey}}, // pkey is immutable, even re-asserted
	}
	for _, updates := range cases {
		if _, err := svc.Update(context.Background(), ticket.Pkey, managerID, updates); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("updates %+v: expected ErrValidation, got %v", updates, err)
		}
	}

	// Nothing was persisted by the rejected batches.
	current, _ := svc.Get(context.Background(), ticket.Pkey)
	if current.Processed() || current.Status != domain.StatusPending {
		t.Fatalf("rejected batches must leave the ticket untouched, got %+v", current)
	}
}

func TestTicketService_Update_NotFound(t *testing.T) {
	svc := newTicketService(newStubTicketRepo())

	_, err := svc.Update(context.Background(), managerID, managerID, []validation.Update{
		{Property: "status", Value: "approved"},
	})
	if !errors.Is(err, domain.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestTicketService_Update_BadKey(t *testing.T) {
	svc := newTicketService(newStubTicketRepo())

	if _, err := svc.Update(context.Background(), "nope", managerID, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestTicketService_ListByStatus(t *testing.T) {
	repo := newStubTicketRepo()
	svc := newTicketService(repo)

	a, _ := svc.Create(context.Background(), ports.CreateTicketInput{Owner: ownerID, Amount: 1, Description: "a"})
	_, _ = svc.Create(context.Background(), ports.CreateTicketInput{Owner: ownerID, Amount: 2, Description: "b"})
	_, _ = svc.Update(context.Background(), a.Pkey, managerID, []validation.Update{{Property: "status", Value: "approved"}})

	pending, err := svc.ListByStatus(context.Background(), domain.StatusPending)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending ticket, got %d", len(pending))
	}

	all, err := svc.ListByStatus(context.Background(), domain.StatusAll)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(all))
	}

	if _, err := svc.ListByStatus(context.Background(), "bogus"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for bogus filter, got %v", err)
	}
}

func TestTicketService_Delete_NotSupported(t *testing.T) {
	svc := newTicketService(newStubTicketRepo())

	if err := svc.Delete(context.Background(), ownerID); !errors.Is(err, domain.ErrNotSupported) {
		t.Fatalf("expected ErrNotSupported, got %v", err)
	}
}
