package app

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"noteful/internal/domain"
)

// TokenConfig is the process-wide signing configuration, loaded once at
// startup and immutable thereafter.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}

// Identity is the account snapshot embedded in a token. It never carries the
// password hash.
type Identity struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// IdentityOf snapshots an account for embedding in a token.
func IdentityOf(a *domain.Account) Identity {
	return Identity{ID: a.ID, Username: a.Username, DisplayName: a.DisplayName}
}

type authClaims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-bound bearer tokens. Tokens
// are never stored server-side; a valid signature is the only proof of
// authenticity.
type TokenService struct {
	cfg TokenConfig
	log zerolog.Logger
}

// NewTokenService creates a TokenService with the given signing config.
func NewTokenService(cfg TokenConfig, log zerolog.Logger) *TokenService {
	return &TokenService{cfg: cfg, log: log}
}

// Issue mints a token for the identity with subject set to the username and
// expiry set to now plus the configured TTL.
func (s *TokenService) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := authClaims{
		User: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
}

// Refresh re-issues a token with a fresh expiry for an identity already
// authenticated by a prior valid token. No password is required.
func (s *TokenService) Refresh(id Identity) (string, error) {
	return s.Issue(id)
}

// Verify checks the signature and expiry of a raw token and returns the
// embedded identity. Every failure surfaces as ErrUnauthorized; the precise
// cause is only logged.
func (s *TokenService) Verify(raw string) (Identity, error) {
	var claims authClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			s.log.Debug().Msg("rejected expired token")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			s.log.Debug().Msg("rejected token with invalid signature")
		default:
			s.log.Debug().Err(err).Msg("rejected malformed token")
		}
		return Identity{}, ErrUnauthorized
	}
	if !token.Valid || claims.User.Username == "" {
		return Identity{}, ErrUnauthorized
	}
	return claims.User, nil
}
