package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/models"
)

// sessionRepository is the SQLite-backed implementation of
// [SessionRepository].
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database handle and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession stores a newly issued session record. Token values are
// random UUIDs, so a primary key conflict is not an expected outcome and is
// reported as a plain execution error.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	record, err := sessionCodec.Encode(session)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: encoding session record")
		return err
	}

	err = r.db.InWriteTx(ctx, func(tx *sql.Tx) error {
		if _, execErr := tx.ExecContext(ctx, insertSession,
			session.Token, dbID(session.UserID), session.ExpiresAt, sessionCodec.TypeName(), record,
		); execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.CreateSession").
			Uint64("user_id", session.UserID).
			Msg("session creation failed")
		return err
	}

	return nil
}

// GetSession returns the session addressed by token. Expiry is deliberately
// not checked here; validation decides whether an expired record is deleted.
func (r *sessionRepository) GetSession(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var recordType string
	var record []byte

	err := r.db.InReadTx(ctx, func(tx *sql.Tx) error {
		scanErr := tx.QueryRowContext(ctx, selectSession, token).Scan(&recordType, &record)
		switch {
		case errors.Is(scanErr, sql.ErrNoRows):
			return ErrSessionNotFound
		case scanErr != nil:
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.Err(err).Str("func", "*sessionRepository.GetSession").Msg("session lookup failed")
		}
		return models.Session{}, err
	}

	session, err := sessionCodec.Decode(recordType, record)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.GetSession").Msg("stored session record is corrupt")
		return models.Session{}, err
	}

	return session, nil
}

// DeleteSession removes the session addressed by token.
func (r *sessionRepository) DeleteSession(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	err := r.db.InWriteTx(ctx, func(tx *sql.Tx) error {
		res, execErr := tx.ExecContext(ctx, deleteSession, token)
		if execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		affected, raErr := res.RowsAffected()
		if raErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, raErr)
		}
		if affected == 0 {
			return ErrSessionNotFound
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("session deletion failed")
		}
		return err
	}

	return nil
}

// PurgeExpired removes every session expired as of now and reports how many
// rows were removed. Called periodically by the session cleanup worker.
func (r *sessionRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildPurgeSessionsQuery(now.Unix())
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.PurgeExpired").Msg("failed to create query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var purged int64

	err = r.db.InWriteTx(ctx, func(tx *sql.Tx) error {
		res, execErr := tx.ExecContext(ctx, query, args...)
		if execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		affected, raErr := res.RowsAffected()
		if raErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, raErr)
		}
		purged = affected

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.PurgeExpired").Msg("session purge failed")
		return 0, err
	}

	return purged, nil
}
