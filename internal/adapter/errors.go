package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrValidation          = errors.New("request validation failed")
	ErrInternalServerError = errors.New("internal server error")
	ErrInvalidBaseURL      = errors.New("invalid base url")
)
