// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrNoUserInContext is returned when a protected handler runs without
	// the user stored by the auth middleware.
	ErrNoUserInContext = errors.New("no authenticated user in request context")

	// ErrInvalidJSON is returned when the request body is not well-formed
	// JSON.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidForm is returned when a form-encoded body cannot be parsed.
	ErrInvalidForm = errors.New("invalid form data was passed")
)
