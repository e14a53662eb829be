package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService issues and validates the two signed token kinds the API
// hands out: short-lived access tokens checked on every authenticated
// request, and longer-lived refresh tokens exchanged for fresh pairs.
type JWTService interface {
	// GenerateToken signs an access token for the user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken parses and verifies an access token, returning its
	// claims. A refresh token presented here fails with
	// ErrWrongTokenType.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken signs a refresh token for the user.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken parses and verifies a refresh token,
	// returning its claims. Failures map to the refresh-specific
	// sentinel errors so the handler can report them distinctly.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded payload of a token, combining the registered
// JWT claims with this service's own fields.
type Claims struct {
	// UserID identifies the account the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType is "access" or "refresh". Validation rejects a token
	// presented to the wrong endpoint kind.
	TokenType string `json:"type,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
