// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"
)

// StructuredConfig is the top-level configuration of the CRM server. It is
// populated by merging environment variables, command-line flags, an
// optional JSON file and finally the built-in defaults.
//
// The value is built once at startup and passed by value or pointer to
// constructors; nothing reads it as global state.
type StructuredConfig struct {
	// App holds token and versioning settings.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database and the dashboard cache settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and the request timeout.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// TokenSignKey is the HMAC secret used to sign and verify bearer tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenAlgorithm is one of HS256, HS384 or HS512.
	// Env: APP_TOKEN_ALGORITHM
	TokenAlgorithm string `env:"TOKEN_ALGORITHM"`

	// TokenIssuer is the optional "iss" claim. When set, tokens carrying a
	// different issuer are rejected.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of an issued token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via GET /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups the persistence backends.
type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Cache Cache `envPrefix:"CACHE_"`
}

// DB holds relational database connection settings.
type DB struct {
	// DSN selects the driver by its scheme: postgres:// and postgresql://
	// open PostgreSQL through pgx, anything else is handed to SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns and MaxIdleConns size the connection pool.
	// Env: STORAGE_DB_MAX_OPEN_CONNS, STORAGE_DB_MAX_IDLE_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`
	MaxIdleConns int `env:"MAX_IDLE_CONNS"`

	// SkipMigrations disables applying migrations at startup.
	// Env: STORAGE_DB_SKIP_MIGRATIONS
	SkipMigrations bool `env:"SKIP_MIGRATIONS"`
}

// Driver names registered by the pgx stdlib and go-sqlite3 packages.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// Driver returns the database/sql driver name matching the DSN.
func (d DB) Driver() string {
	dsn := strings.ToLower(strings.TrimSpace(d.DSN))
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// Cache holds the Redis settings of the dashboard cache. An empty Address
// disables caching.
type Cache struct {
	// Env: STORAGE_CACHE_ADDRESS
	Address string `env:"ADDRESS"`
	// Env: STORAGE_CACHE_PASSWORD
	Password string `env:"PASSWORD"`
	// Env: STORAGE_CACHE_DB
	DB int `env:"DB"`
	// Env: STORAGE_CACHE_TTL
	TTL time.Duration `env:"TTL"`
}

// Server holds inbound transport settings.
type Server struct {
	// HTTPAddress is the host:port the HTTP API listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress enables the gRPC health endpoint when set.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds the handling time of one HTTP request. Zero
	// disables the timeout middleware.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges and validates the configuration. Sources
// are consulted in this order and the first non-zero value of a field wins:
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
