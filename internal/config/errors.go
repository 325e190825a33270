package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid token or application settings
	// (for example, a missing sign key or an unsupported algorithm).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidStorageConfigs indicates invalid database or cache settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates that no listen address is configured.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
