package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/utils"
	"github.com/MKhiriev/go-card-keeper/models"
)

// userRepository is the SQLite-backed implementation of [UserRepository].
// It handles account creation, lookup, password re-persistence and cascading
// deletion against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database handle and logger.
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
// [models.User] with store-assigned fields (UserID, SignupTime).
//
// The derived id check runs inside the same write transaction as the insert,
// so the uniqueness decisions cannot race with a concurrent registration:
//   - username already present                → [ErrUsernameAlreadyExists]
//   - derived id taken by another username   → [ErrIdentifierCollision]
//   - email already addressing an account    → [ErrEmailAlreadyExists]
//
// The UNIQUE constraints on the table back these checks as a last line of
// defence; a constraint violation slipping past them maps the same way.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.UserID = utils.DeriveID(user.Username)
	user.SignupTime = time.Now().Unix()

	record, err := userCodec.Encode(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: encoding user record")
		return models.User{}, err
	}

	err = r.db.InWriteTx(ctx, func(tx *sql.Tx) error {
		// username taken?
		var occupied string
		scanErr := tx.QueryRowContext(ctx, selectUserByUserID, dbID(user.UserID)).Scan(&occupied)
		switch {
		case scanErr == nil && occupied == user.Username:
			return ErrUsernameAlreadyExists
		case scanErr == nil:
			// a different username already hashed to this id
			return ErrIdentifierCollision
		case !errors.Is(scanErr, sql.ErrNoRows):
			return fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
		}

		if _, execErr := tx.ExecContext(ctx, insertUser,
			user.Username, dbID(user.UserID), user.Email, userCodec.TypeName(), record,
		); execErr != nil {
			if isConstraintViolation(execErr) {
				// the only constraint left to trip is the email index
				return ErrEmailAlreadyExists
			}
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("user creation failed")
		return models.User{}, err
	}

	return user, nil
}

// FindUserByEmail retrieves the account addressed by email.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Undecodable stored bytes → [ErrCorruptRecord].
//   - Any other driver-level error → wrapped as [ErrExecutingQuery].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, selectUserByEmail, email)
}

// FindUserByUsername retrieves the account owning username. Errors as in
// [userRepository.FindUserByEmail].
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, selectUserByUsername, username)
}

func (r *userRepository) findUser(ctx context.Context, query string, key string) (models.User, error) {
	log := logger.FromContext(ctx)

	var recordType string
	var record []byte

	err := r.db.InReadTx(ctx, func(tx *sql.Tx) error {
		scanErr := tx.QueryRowContext(ctx, query, key).Scan(&recordType, &record)
		switch {
		case errors.Is(scanErr, sql.ErrNoRows):
			return ErrUserNotFound
		case scanErr != nil:
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*userRepository.findUser").Msg("user lookup failed")
		}
		return models.User{}, err
	}

	user, err := userCodec.Decode(recordType, record)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUser").Msg("stored user record is corrupt")
		return models.User{}, err
	}

	return user, nil
}

// UpdateUser re-persists the record of an existing user. Only the record
// blob changes; username, derived id and email columns are immutable.
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	record, err := userCodec.Encode(user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error: encoding user record")
		return err
	}

	return r.db.InWriteTx(ctx, func(tx *sql.Tx) error {
		res, execErr := tx.ExecContext(ctx, updateUserRecord, record, user.Username)
		if execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		affected, raErr := res.RowsAffected()
		if raErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, raErr)
		}
		if affected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}

// DeleteUser removes the user record together with every deck and session
// owned by its user id. All three deletions share one write transaction, so
// an account can never lose its user record while keeping orphaned decks.
func (r *userRepository) DeleteUser(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	decksQuery, decksArgs, err := buildDeleteUserDecksQuery(user.UserID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	sessionsQuery, sessionsArgs, err := buildDeleteUserSessionsQuery(user.UserID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.InWriteTx(ctx, func(tx *sql.Tx) error {
		if _, execErr := tx.ExecContext(ctx, decksQuery, decksArgs...); execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		if _, execErr := tx.ExecContext(ctx, sessionsQuery, sessionsArgs...); execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		res, execErr := tx.ExecContext(ctx, deleteUserByUsername, user.Username)
		if execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		affected, raErr := res.RowsAffected()
		if raErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, raErr)
		}
		if affected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Uint64("user_id", user.UserID).Msg("account deletion failed")
		return err
	}

	return nil
}
