package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeBearer is the only token type issued by the API.
const TokenTypeBearer = "bearer"

// Token is the response body of the login and token endpoints.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`

	// ExpiresAt is kept server-side for logging; it is not part of the
	// response contract.
	ExpiresAt time.Time `json:"-"`
}

// NewBearerToken wraps a signed token string into a [Token] response.
func NewBearerToken(signed string, expiresAt time.Time) Token {
	return Token{
		AccessToken: signed,
		TokenType:   TokenTypeBearer,
		ExpiresAt:   expiresAt,
	}
}

// Claims is the JWT claim set issued by the token service. The subject is
// the username of the authenticated user.
type Claims struct {
	jwt.RegisteredClaims
}
