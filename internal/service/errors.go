package service

import "errors"

var (
	// ErrInvalidCredentials is returned by the auth gate for a missing,
	// invalid or expired token, or a token whose subject no longer exists.
	ErrInvalidCredentials = errors.New("could not validate credentials")

	// ErrIncorrectCredentials is returned by login for an unknown username
	// or a wrong password.
	ErrIncorrectCredentials = errors.New("invalid username or password")

	ErrPasswordHashing     = errors.New("password hashing failed")
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrEmptyBatch is returned when an explicit empty list is submitted.
	ErrEmptyBatch = errors.New("empty list provided")

	// ErrBulkInsertFailed wraps the cause of a failed list insert.
	ErrBulkInsertFailed = errors.New("bulk insert failed")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)
