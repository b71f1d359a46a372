package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"noteful/internal/domain"
)

const (
	usernameMin = 3
	usernameMax = 20
	passwordMin = 8
	passwordMax = 30

	// Interactive-login work factor.
	passwordCost = 10
)

// AccountService handles registration and credential verification.
type AccountService struct {
	accounts domain.AccountRepository
}

// NewAccountService creates an AccountService backed by the given repository.
func NewAccountService(accounts domain.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// Register validates the supplied fields, hashes the password and stores a
// new account. The plaintext password is never persisted.
func (s *AccountService) Register(ctx context.Context, username, password, displayName string) (*domain.Account, error) {
	if err := validateCredentialFields(username, password); err != nil {
		return nil, err
	}

	count, err := s.accounts.CountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.accounts.Create(ctx, domain.Account{
		ID:           uuid.NewString(),
		Username:     username,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Authenticate verifies a username/password pair. Every failure mode maps to
// ErrUnauthorized so callers cannot probe which usernames exist.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil || account == nil {
		return nil, ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrUnauthorized
	}
	return account, nil
}

// GetByUsername returns the account for a verified identity, or ErrNotFound.
func (s *AccountService) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}
	return account, nil
}

// EnsureAccount returns the account for an externally authenticated username,
// provisioning one on first sight. SSO accounts carry no usable password
// hash, so credential login stays impossible for them.
func (s *AccountService) EnsureAccount(ctx context.Context, username, displayName string) (*domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return account, nil
	}

	now := time.Now().UTC()
	return s.accounts.Create(ctx, domain.Account{
		ID:          uuid.NewString(),
		Username:    username,
		DisplayName: strings.TrimSpace(displayName),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func validateCredentialFields(username, password string) error {
	fields := []struct {
		location string
		value    string
		min, max int
	}{
		{"username", username, usernameMin, usernameMax},
		{"password", password, passwordMin, passwordMax},
	}

	for _, f := range fields {
		if f.value != strings.TrimSpace(f.value) {
			return &FieldError{Location: f.location, Message: msgUntrimmed}
		}
		if len(f.value) < f.min {
			return fieldTooShort(f.location, f.min)
		}
		if len(f.value) > f.max {
			return fieldTooLong(f.location, f.max)
		}
	}
	return nil
}
