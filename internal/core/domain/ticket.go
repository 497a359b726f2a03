package domain

import "errors"

// TicketStatus represents the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusPending  TicketStatus = "pending"
	StatusApproved TicketStatus = "approved"
	StatusDenied   TicketStatus = "denied"

	// StatusAll is a query-only sentinel meaning "no status filter".
	// It is never a valid stored status.
	StatusAll TicketStatus = "all"
)

// DefaultTicketType is applied when a ticket is created without a type.
const DefaultTicketType = "reimbursement"

// validTransitions defines the allowed state machine transitions.
// A ticket leaves pending exactly once; approved and denied are terminal.
var validTransitions = map[TicketStatus][]TicketStatus{
	StatusPending: {StatusApproved, StatusDenied},
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketProcessed    = errors.New("ticket already processed")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotSupported       = errors.New("operation not supported")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Stored reports whether s is a status a ticket may actually carry,
// as opposed to the query-only "all" sentinel.
func (s TicketStatus) Stored() bool {
	return s == StatusPending || s == StatusApproved || s == StatusDenied
}

// Filter reports whether s is usable as a list filter.
func (s TicketStatus) Filter() bool {
	return s.Stored() || s == StatusAll
}

// Ticket is the core aggregate root. Processor is empty until a manager
// claims the ticket by transitioning it out of pending; once set, the
// ticket is closed to further mutation through the normal update path.
type Ticket struct {
	Pkey        string       `json:"pkey"`
	Status      TicketStatus `json:"status"`
	Type        string       `json:"type"`
	Processor   string       `json:"processor,omitempty"`
	Amount      float64      `json:"amount"`
	Description string       `json:"description"`
	Owner       string       `json:"owner"`
}

// Processed reports whether the ticket has already been claimed.
func (t *Ticket) Processed() bool {
	return t.Processor != ""
}
