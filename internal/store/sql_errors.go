package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result type returned by [ErrorClassificator.Classify].
type ErrorClassification int

const (
	// Unclassified is any error that is not a constraint violation.
	Unclassified ErrorClassification = iota

	// IntegrityViolation is a unique, foreign key, not null or check
	// constraint violation. It is reported to clients as a conflict.
	IntegrityViolation
)

// ErrorClassificator maps driver errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Class 23 codes are integrity
// violations; see https://www.postgresql.org/docs/current/errcodes-appendix.html.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if pgerrcode.IsIntegrityConstraintViolation(postgresError(err)) {
		return IntegrityViolation
	}
	return Unclassified
}

// SQLiteErrorClassifier implements [ErrorClassificator] for go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Every SQLITE_CONSTRAINT extended
// code is an integrity violation.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return IntegrityViolation
	}
	return Unclassified
}

// postgresError returns the SQLSTATE of a pgx error or "".
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// writeError wraps a failed INSERT/UPDATE: integrity violations become
// [ErrConflict], everything else [ErrExecutingStatement].
func (db *DB) writeError(err error) error {
	if db.errorClassificator.Classify(err) == IntegrityViolation {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}
