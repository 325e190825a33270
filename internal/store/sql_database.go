package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/MKhiriev/go-lead-keeper/internal/config"
	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/migrations"
)

// DB is a connection pool shared by all repositories. It carries the
// squirrel statement builder and the error classifier matching its driver.
type DB struct {
	*sqlx.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database selected by the DSN scheme of cfg.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if cfg.Driver() == config.DriverPostgres {
		return NewConnectPostgres(ctx, cfg, log)
	}
	return NewConnectSQLite(ctx, cfg, log)
}

// newDB wraps an open pool. Postgres gets $N placeholders, SQLite gets ?.
func newDB(conn *sqlx.DB, driver string, log *logger.Logger) *DB {
	db := &DB{
		DB:                 conn,
		driver:             driver,
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Question),
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
	}

	if driver == config.DriverPostgres {
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	}

	return db
}

// Driver returns the database/sql driver name of the pool.
func (db *DB) Driver() string {
	return db.driver
}

// Migrate applies the embedded migrations of the pool's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB.DB, db.driver)
}
