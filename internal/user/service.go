package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JeanDev-10/hotel-booking-backend/internal/auth"
	"github.com/JeanDev-10/hotel-booking-backend/internal/pkg/apperror"
)

const minPasswordLength = 8

// ErrPasswordTooShort is raised when a password fails the length policy.
var ErrPasswordTooShort = apperror.New(http.StatusUnprocessableEntity,
	fmt.Sprintf("La contraseña debe tener al menos %d caracteres", minPasswordLength))

type RegisterRequest struct {
	Name     string
	Lastname string
	Email    string
	Password string
}

type Service interface {
	// Register creates a client account. Administrator accounts are only
	// created through seeding.
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
}

func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Name:         strings.ToLower(strings.TrimSpace(req.Name)),
		Lastname:     strings.ToLower(strings.TrimSpace(req.Lastname)),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         auth.RoleClient,
		Active:       true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.Active {
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(u.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// authRole maps a stored role string to its capability tag, defaulting to
// client for anything unknown.
func authRole(role string) auth.Role {
	r := auth.Role(role)
	if !r.Valid() {
		return auth.RoleClient
	}
	return r
}
