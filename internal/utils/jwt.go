package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-lead-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrUnsupportedSigningMethod is returned for algorithms other than the HMAC family.
var ErrUnsupportedSigningMethod = errors.New("unsupported signing method")

// SigningMethod resolves an algorithm name (HS256, HS384, HS512) to its
// HMAC signing method.
func SigningMethod(alg string) (*jwt.SigningMethodHMAC, error) {
	switch alg {
	case jwt.SigningMethodHS256.Alg():
		return jwt.SigningMethodHS256, nil
	case jwt.SigningMethodHS384.Alg():
		return jwt.SigningMethodHS384, nil
	case jwt.SigningMethodHS512.Alg():
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSigningMethod, alg)
	}
}

// GenerateJWTToken creates a signed HMAC JWT token with the given parameters.
//
// The token includes the following standard claims:
//   - Subject   (sub): the username the token is issued for
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - Issuer    (iss): only when issuer is not empty
//
// Subject, duration and sign key are required.
//
// Returns the signed token string and its expiry time.
//
// Example usage:
//
//	signed, exp, err := utils.GenerateJWTToken(jwt.SigningMethodHS256, "", "alice", time.Hour, "secret")
func GenerateJWTToken(method *jwt.SigningMethodHMAC, issuer, subject string, tokenDuration time.Duration, signKey string) (string, time.Time, error) {
	if method == nil || subject == "" || tokenDuration == 0 || signKey == "" {
		return "", time.Time{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	expiresAt := now.Add(tokenDuration)
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tokenString, err := jwt.NewWithClaims(method, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and returns
// its subject.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Algorithm check: only method is accepted
//   - Expiration (exp) claim presence and check
//   - Issuer (iss) claim check when tokenIssuer is not empty
//   - Subject (sub) claim presence
//
// Example usage:
//
//	subject, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "", jwt.SigningMethodHS256)
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, method *jwt.SigningMethodHMAC) (string, error) {
	if method == nil {
		return "", ErrUnsupportedSigningMethod
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if tokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(tokenIssuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return "", errors.New("empty subject error")
	}

	return subject, nil
}

// ParseBearerToken extracts the token from an Authorization header value of
// the form "Bearer <token>". The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
