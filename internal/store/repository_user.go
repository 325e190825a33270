package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/models"
)

// userRepository is the SQL implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with the server-assigned id.
//
// Error handling:
//   - integrity violation (unique username or email) → [ErrUserAlreadyExists].
//   - Any other driver-level error → [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.User
	if err = r.db.QueryRowxContext(ctx, query, args...).StructScan(&created); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("error creating user")

		if r.db.errorClassificator.Classify(err) == IntegrityViolation {
			return models.User{}, ErrUserAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// FindUserByUsername retrieves the user whose username matches exactly.
//
// Error handling:
//   - no row → [ErrUserNotFound].
//   - Any other driver-level error → [ErrExecutingQuery].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByUsernameQuery(r.db.builder, username)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.User
	if err = r.db.GetContext(ctx, &found, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Str("username", username).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// UpdatePasswordHash stores a re-hashed password. Returns [ErrUserNotFound]
// when no row was updated.
func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePasswordHashQuery(r.db.builder, userID, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasswordHash").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasswordHash").Int64("user_id", userID).Msg("error updating password hash")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
