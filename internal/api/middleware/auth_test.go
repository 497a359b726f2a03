package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/expenseops/ticketing-system/internal/core/credentials"
	"github.com/expenseops/ticketing-system/internal/core/domain"
)

const testSecret = "middleware-test-secret"

func callAuth(t *testing.T, signer *credentials.TokenSigner, header string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ticket", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	err := Auth(signer)(next)(c)
	return rec, c, err
}

func TestAuth_ValidToken(t *testing.T) {
	signer := credentials.NewTokenSigner(testSecret, time.Minute)
	token, err := signer.Sign(credentials.Claims{ID: "user-123", Role: domain.RoleManager})
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	rec, c, err := callAuth(t, signer, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected pass-through, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got, _ := c.Get(CtxUserID).(string); got != "user-123" {
		t.Fatalf("expected user id in context, got %q", got)
	}
	if got, _ := c.Get(CtxRole).(string); got != domain.RoleManager {
		t.Fatalf("expected role in context, got %q", got)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	signer := credentials.NewTokenSigner(testSecret, time.Minute)

	_, _, err := callAuth(t, signer, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestAuth_RejectedTokens(t *testing.T) {
	signer := credentials.NewTokenSigner(testSecret, time.Minute)
	claims := credentials.Claims{ID: "user-123", Role: domain.RoleEmployee}
	token, _ := signer.Sign(claims)

	other := credentials.NewTokenSigner("another-secret", time.Minute)
	foreign, _ := other.Sign(claims)

	expSigner := credentials.NewTokenSigner(testSecret, time.Millisecond)
	expired, _ := expSigner.Sign(claims)
	time.Sleep(10 * time.Millisecond)

	cases := map[string]string{
		"no scheme":      token,
		"wrong scheme":   "Basic " + token,
		"garbage":        "Bearer not.a.token",
		"foreign secret": "Bearer " + foreign,
		"expired":        "Bearer " + expired,
	}
	for name, header := range cases {
		_, _, err := callAuth(t, signer, header)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", name, err)
		}
	}
}
