package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/expenseops/ticketing-system/internal/core/credentials"
	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/ports"
	"github.com/expenseops/ticketing-system/internal/core/validation"
	"github.com/expenseops/ticketing-system/internal/pkg/metrics"
)

// LoginLimiter abstracts the failed-login throttle store (Redis).
type LoginLimiter interface {
	TooManyFailures(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements registration and login.
type AuthService struct {
	users   ports.UserRepository
	signer  *credentials.TokenSigner
	limiter LoginLimiter
	log     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, signer *credentials.TokenSigner, limiter LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, signer: signer, limiter: limiter, log: log}
}

// Register creates a new employee account and issues a first token.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, string, error) {
	if !validation.ValidUsername(username) {
		return nil, "", fmt.Errorf("%w: invalid username", domain.ErrValidation)
	}
	if !validation.ValidPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid password", domain.ErrValidation)
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, "", domain.ErrUserExists
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Pkey:         uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleEmployee,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.signer.Sign(credentials.Claims{ID: created.Pkey, Role: created.Role})
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user", created.Pkey).Msg("account registered")
	return created, token, nil
}

// Login authenticates a user by username and password and issues a token.
// Failed attempts feed the throttle; a tripped throttle rejects before the
// password is even checked.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if !validation.ValidUsername(username) || !validation.ValidPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid login payload", domain.ErrValidation)
	}

	if s.limiter != nil {
		throttled, err := s.limiter.TooManyFailures(ctx, username)
		if err != nil {
			// Throttle store trouble never locks users out.
			s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, proceeding")
		} else if throttled {
			metrics.LoginThrottledTotal.Inc()
			return nil, "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("unknown_user").Inc()
		return nil, "", err
	}

	if !credentials.CheckPassword(user.PasswordHash, password) {
		metrics.AuthFailuresTotal.WithLabelValues("bad_password").Inc()
		if s.limiter != nil {
			if err := s.limiter.RecordFailure(ctx, username); err != nil {
				s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
			}
		}
		return nil, "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
		}
	}

	token, err := s.signer.Sign(credentials.Claims{ID: user.Pkey, Role: user.Role})
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user", user.Pkey).Msg("login succeeded")
	return user, token, nil
}
