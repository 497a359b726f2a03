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
)

// UserService implements the manager-facing user CRUD surface.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) Get(ctx context.Context, pkey string) (*domain.User, error) {
	if !validation.ValidUUID(pkey) {
		return nil, fmt.Errorf("%w: user key is not a valid UUID", domain.ErrValidation)
	}
	return s.repo.FindByPkey(ctx, pkey)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if !validation.ValidUsername(username) {
		return nil, fmt.Errorf("%w: invalid username", domain.ErrValidation)
	}
	return s.repo.FindByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// Create adds a user with an explicit role. An empty role defaults to
// employee.
func (s *UserService) Create(ctx context.Context, username, password, role string) (*domain.User, error) {
	if !validation.ValidUsername(username) {
		return nil, fmt.Errorf("%w: invalid username", domain.ErrValidation)
	}
	if !validation.ValidPassword(password) {
		return nil, fmt.Errorf("%w: invalid password", domain.ErrValidation)
	}
	if role == "" {
		role = domain.RoleEmployee
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: invalid role %q", domain.ErrValidation, role)
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Pkey:         uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user", created.Pkey).Str("role", created.Role).Msg("user created")
	return created, nil
}

// Update applies a validated update batch to a user record. Password edits
// are validated against the plaintext rule and then re-hashed before they
// reach the store; the raw value is never persisted.
func (s *UserService) Update(ctx context.Context, pkey string, updates []validation.Update) (*domain.User, error) {
	if !validation.ValidUUID(pkey) {
		return nil, fmt.Errorf("%w: user key is not a valid UUID", domain.ErrValidation)
	}
	for _, u := range updates {
		if u.Property == "pkey" {
			return nil, fmt.Errorf("%w: pkey is immutable", domain.ErrValidation)
		}
	}
	if err := validation.ValidateUpdates(validation.EntityUser, updates); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByPkey(ctx, pkey); err != nil {
		return nil, err
	}

	persisted := make([]validation.Update, len(updates))
	copy(persisted, updates)
	for i, u := range persisted {
		if u.Property != "password" {
			continue
		}
		hash, err := credentials.HashPassword(u.Value.(string))
		if err != nil {
			return nil, err
		}
		persisted[i].Value = hash
	}

	updated, err := s.repo.ApplyUpdates(ctx, pkey, persisted)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user", updated.Pkey).Msg("user updated")
	return updated, nil
}

// Delete is not supported.
func (s *UserService) Delete(ctx context.Context, pkey string) error {
	return domain.ErrNotSupported
}
