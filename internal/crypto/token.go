// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-lead-keeper/internal/config"
	"github.com/MKhiriev/go-lead-keeper/internal/utils"
	"github.com/MKhiriev/go-lead-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

// tokenService is the private implementation of [TokenService].
type tokenService struct {
	signKey  string
	issuer   string
	duration time.Duration
	method   *jwt.SigningMethodHMAC
}

// NewTokenService builds a [TokenService] from the application config.
// Returns an error for an unsupported signing algorithm.
func NewTokenService(cfg config.App) (TokenService, error) {
	method, err := utils.SigningMethod(cfg.TokenAlgorithm)
	if err != nil {
		return nil, err
	}

	return &tokenService{
		signKey:  cfg.TokenSignKey,
		issuer:   cfg.TokenIssuer,
		duration: cfg.TokenDuration,
		method:   method,
	}, nil
}

// Issue implements [TokenService].
func (s *tokenService) Issue(subject string, ttl time.Duration) (models.Token, error) {
	if ttl <= 0 {
		ttl = s.duration
	}

	signed, expiresAt, err := utils.GenerateJWTToken(s.method, s.issuer, subject, ttl, s.signKey)
	if err != nil {
		return models.Token{}, err
	}

	return models.NewBearerToken(signed, expiresAt), nil
}

// Validate implements [TokenService].
func (s *tokenService) Validate(token string) (string, error) {
	subject, err := utils.ValidateAndParseJWTToken(token, s.signKey, s.issuer, s.method)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return subject, nil
}
