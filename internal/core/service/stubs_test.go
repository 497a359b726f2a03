package service

import (
	"context"

	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/validation"
)

// stubUserRepo is an in-memory UserRepository for service tests.
type stubUserRepo struct {
	users map[string]*domain.User // keyed by pkey
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.Pkey] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByPkey(_ context.Context, pkey string) (*domain.User, error) {
	if u, ok := r.users[pkey]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *stubUserRepo) ApplyUpdates(_ context.Context, pkey string, updates []validation.Update) (*domain.User, error) {
	u, ok := r.users[pkey]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, upd := range updates {
		switch upd.Property {
		case "username":
			u.Username = upd.Value.(string)
		case "password":
			u.PasswordHash = upd.Value.(string)
		case "role":
			u.Role = upd.Value.(string)
		}
	}
	return cloneUser(u), nil
}

// stubTicketRepo is an in-memory TicketRepository honouring the
// conditional-update contract.
type stubTicketRepo struct {
	tickets map[string]*domain.Ticket
}

func newStubTicketRepo() *stubTicketRepo {
	return &stubTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func cloneTicket(t *domain.Ticket) *domain.Ticket {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.tickets[ticket.Pkey] = cloneTicket(ticket)
	return nil
}

func (r *stubTicketRepo) FindByPkey(_ context.Context, pkey string) (*domain.Ticket, error) {
	if t, ok := r.tickets[pkey]; ok {
		return cloneTicket(t), nil
	}
	return nil, domain.ErrTicketNotFound
}

func (r *stubTicketRepo) FindByOwner(_ context.Context, owner string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range r.tickets {
		if t.Owner == owner {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTicketRepo) FindByStatus(_ context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, t := range r.tickets {
		if status == domain.StatusAll || t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTicketRepo) UpdateUnprocessed(_ context.Context, pkey string, updates []validation.Update) (*domain.Ticket, error) {
	t, ok := r.tickets[pkey]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	if t.Processed() {
		return nil, domain.ErrTicketProcessed
	}
	for _, upd := range updates {
		switch upd.Property {
		case "status":
			t.Status = domain.TicketStatus(upd.Value.(string))
		case "processor":
			t.Processor = upd.Value.(string)
		case "amount":
			t.Amount = upd.Value.(float64)
		case "description":
			t.Description = upd.Value.(string)
		case "owner":
			t.Owner = upd.Value.(string)
		}
	}
	return cloneTicket(t), nil
}

// stubLimiter is a LoginLimiter with a controllable trip switch.
type stubLimiter struct {
	failures map[string]int
	limit    int
}

func newStubLimiter(limit int) *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), limit: limit}
}

func (l *stubLimiter) TooManyFailures(_ context.Context, username string) (bool, error) {
	return l.failures[username] >= l.limit, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, username string) error {
	l.failures[username]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, username string) error {
	delete(l.failures, username)
	return nil
}
