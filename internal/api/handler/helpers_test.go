package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/expenseops/ticketing-system/internal/api/middleware"
	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/ports"
	"github.com/expenseops/ticketing-system/internal/core/validation"
)

const (
	testOwnerID   = "07a1ad8e-6cb5-4f9f-8a44-9ad0c2bb27de"
	testManagerID = "c2de91b7-5f3a-4f0d-9c0c-3f2ce9cf01ab"
)

// newTestContext builds an echo context with the request validator wired,
// mimicking what the router sets up in production.
func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asCaller injects the identity the Auth middleware would have set.
func asCaller(c echo.Context, id, role string) {
	c.Set(middleware.CtxUserID, id)
	c.Set(middleware.CtxRole, role)
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

// stubAuthService returns canned results for the auth endpoints.
type stubAuthService struct {
	user  *domain.User
	token string
	err   error
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*domain.User, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.user, s.token, nil
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.user, s.token, nil
}

// stubTicketService records calls and returns canned results.
type stubTicketService struct {
	ticket  *domain.Ticket
	tickets []domain.Ticket
	err     error

	gotOwner   string
	gotStatus  domain.TicketStatus
	gotPkey    string
	gotCaller  string
	gotCreate  ports.CreateTicketInput
	gotUpdates []validation.Update
}

func (s *stubTicketService) Get(ctx context.Context, pkey string) (*domain.Ticket, error) {
	s.gotPkey = pkey
	if s.err != nil {
		return nil, s.err
	}
	return s.ticket, nil
}

func (s *stubTicketService) ListByOwner(ctx context.Context, owner string) ([]domain.Ticket, error) {
	s.gotOwner = owner
	return s.tickets, s.err
}

func (s *stubTicketService) ListByStatus(ctx context.Context, status domain.TicketStatus) ([]domain.Ticket, error) {
	s.gotStatus = status
	return s.tickets, s.err
}

func (s *stubTicketService) Create(ctx context.Context, in ports.CreateTicketInput) (*domain.Ticket, error) {
	s.gotCreate = in
	if s.err != nil {
		return nil, s.err
	}
	return s.ticket, nil
}

func (s *stubTicketService) Update(ctx context.Context, pkey, callerID string, updates []validation.Update) (*domain.Ticket, error) {
	s.gotPkey = pkey
	s.gotCaller = callerID
	s.gotUpdates = updates
	if s.err != nil {
		return nil, s.err
	}
	return s.ticket, nil
}

func (s *stubTicketService) Delete(ctx context.Context, pkey string) error {
	return domain.ErrNotSupported
}
