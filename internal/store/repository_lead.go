package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-lead-keeper/internal/logger"
	"github.com/MKhiriev/go-lead-keeper/models"
)

// leadRepository is the SQL implementation of [LeadRepository] over the
// "leads" table.
type leadRepository struct {
	*DB
	logger *logger.Logger
}

// NewLeadRepository constructs a [LeadRepository] backed by db.
func NewLeadRepository(db *DB, logger *logger.Logger) LeadRepository {
	logger.Debug().Msg("creating lead repository")
	return &leadRepository{
		DB:     db,
		logger: logger,
	}
}

// SearchLeads returns the active leads matching filter, newest first.
func (l *leadRepository) SearchLeads(ctx context.Context, filter models.LeadFilter) ([]models.Lead, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSearchLeadsQuery(l.builder, filter)
	if err != nil {
		log.Err(err).Str("func", "leadRepository.SearchLeads").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	leads := make([]models.Lead, 0, filter.Size)
	if err = l.SelectContext(ctx, &leads, query, args...); err != nil {
		log.Err(err).
			Str("func", "leadRepository.SearchLeads").
			Uint64("page", filter.Page).
			Uint64("size", filter.Size).
			Msg("failed to execute lead search")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return leads, nil
}

// CreateLeads inserts every lead inside one transaction. The first failing
// insert rolls back the whole batch; integrity violations are reported as
// [ErrConflict].
func (l *leadRepository) CreateLeads(ctx context.Context, leads []models.LeadCreate, now time.Time) ([]models.Lead, error) {
	log := logger.FromContext(ctx)

	tx, err := l.BeginTxx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "leadRepository.CreateLeads").
			Int("count", len(leads)).
			Msg("failed to begin transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	created := make([]models.Lead, 0, len(leads))
	for idx, lead := range leads {
		query, args, buildErr := buildInsertLeadQuery(l.builder, lead, now)
		if buildErr != nil {
			log.Err(buildErr).
				Str("func", "leadRepository.CreateLeads").
				Int("iteration", idx+1).
				Msg("failed to build query")
			return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
		}

		var saved models.Lead
		if scanErr := tx.QueryRowxContext(ctx, query, args...).StructScan(&saved); scanErr != nil {
			log.Err(scanErr).
				Str("func", "leadRepository.CreateLeads").
				Int("iteration", idx+1).
				Int("total", len(leads)).
				Msg("failed to insert lead in transaction")
			return nil, l.writeError(scanErr)
		}

		created = append(created, saved)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "leadRepository.CreateLeads").
			Int("count", len(leads)).
			Msg("failed to commit transaction")
		return nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return created, nil
}

// GetLead returns an active lead or [ErrLeadNotFound].
func (l *leadRepository) GetLead(ctx context.Context, leadID int64) (models.Lead, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetLeadQuery(l.builder, leadID)
	if err != nil {
		log.Err(err).Str("func", "leadRepository.GetLead").Msg("failed to build query")
		return models.Lead{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var lead models.Lead
	if err = l.GetContext(ctx, &lead, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Lead{}, ErrLeadNotFound
		}
		log.Err(err).Str("func", "leadRepository.GetLead").Int64("lead_id", leadID).Msg("failed to get lead")
		return models.Lead{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return lead, nil
}

// UpdateLead applies update to an active lead and returns the stored row.
func (l *leadRepository) UpdateLead(ctx context.Context, leadID int64, update models.LeadUpdate, now time.Time) (models.Lead, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateLeadQuery(l.builder, leadID, update, now)
	if err != nil {
		log.Err(err).Str("func", "leadRepository.UpdateLead").Msg("failed to build query")
		return models.Lead{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := l.BeginTxx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "leadRepository.UpdateLead").Int64("lead_id", leadID).Msg("failed to begin transaction")
		return models.Lead{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var updated models.Lead
	if err = tx.QueryRowxContext(ctx, query, args...).StructScan(&updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Lead{}, ErrLeadNotFound
		}
		log.Err(err).Str("func", "leadRepository.UpdateLead").Int64("lead_id", leadID).Msg("failed to update lead")
		return models.Lead{}, l.writeError(err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "leadRepository.UpdateLead").Int64("lead_id", leadID).Msg("failed to commit transaction")
		return models.Lead{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return updated, nil
}

// DeleteLead soft-deletes an active lead. Returns [ErrLeadNotFound] when
// nothing was updated.
func (l *leadRepository) DeleteLead(ctx context.Context, leadID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteLeadQuery(l.builder, leadID)
	if err != nil {
		log.Err(err).Str("func", "leadRepository.DeleteLead").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := l.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "leadRepository.DeleteLead").Int64("lead_id", leadID).Msg("failed to soft-delete lead")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrLeadNotFound
	}

	return nil
}
