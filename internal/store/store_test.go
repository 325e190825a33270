package store

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lead-keeper/internal/config"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
)

// newTestDB wraps a sqlmock connection into a [DB] of the given driver.
func newTestDB(t *testing.T, driver string) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return newDB(sqlx.NewDb(conn, "sqlmock"), driver, logger.Nop()), mock
}

func newTestPostgresDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	return newTestDB(t, config.DriverPostgres)
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

// nullable turns an optional model field into a row value.
func nullable[T any](p *T) driver.Value {
	if p == nil {
		return nil
	}
	return *p
}
