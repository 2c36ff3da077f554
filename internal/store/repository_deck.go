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

// deckRepository is the SQLite-backed implementation of [DeckRepository].
// It executes all deck CRUD against the "decks" table and owns the
// read-modify-write protocol used by card-level mutations.
type deckRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDeckRepository constructs a [DeckRepository] backed by the provided
// database handle and logger.
func NewDeckRepository(db *DB, logger *logger.Logger) DeckRepository {
	logger.Debug().Msg("creating deck repository")
	return &deckRepository{
		db:     db,
		logger: logger,
	}
}

// CreateDeck stores a new empty deck under the id derived from deckName.
//
// The occupancy check runs inside the write transaction: an occupied slot
// whose deck carries the same name is an ordinary duplicate
// ([ErrDeckAlreadyExists]); a different name means two names hashed to one
// id ([ErrIdentifierCollision]) and the second writer is rejected.
func (r *deckRepository) CreateDeck(ctx context.Context, userID uint64, deckName string) (models.CardDeck, uint64, error) {
	return r.createDeck(ctx, userID, deckName, []models.Card{})
}

// CreateDeckWithCards stores a new deck pre-filled with cards. The insert
// carries the full card slice, so the deck and its initial cards commit or
// fail as one unit; an import can never leave an empty shell behind.
func (r *deckRepository) CreateDeckWithCards(ctx context.Context, userID uint64, deckName string, cards []models.Card) (models.CardDeck, uint64, error) {
	if cards == nil {
		cards = []models.Card{}
	}
	return r.createDeck(ctx, userID, deckName, cards)
}

func (r *deckRepository) createDeck(ctx context.Context, userID uint64, deckName string, cards []models.Card) (models.CardDeck, uint64, error) {
	log := logger.FromContext(ctx)

	deckID := utils.DeriveID(deckName)
	deck := models.CardDeck{
		CreationTime: time.Now().Unix(),
		Name:         deckName,
		Cards:        cards,
	}

	record, err := deckCodec.Encode(deck)
	if err != nil {
		log.Err(err).Str("func", "*deckRepository.createDeck").Msg("error: encoding deck record")
		return models.CardDeck{}, 0, err
	}

	err = r.db.InWriteTx(ctx, func(tx *sql.Tx) error {
		var occupantType string
		var occupantRecord []byte

		scanErr := tx.QueryRowContext(ctx, selectDeck, dbID(userID), dbID(deckID)).
			Scan(&occupantType, &occupantRecord)
		switch {
		case scanErr == nil:
			occupant, decodeErr := deckCodec.Decode(occupantType, occupantRecord)
			if decodeErr != nil {
				return decodeErr
			}
			if occupant.Name == deckName {
				return ErrDeckAlreadyExists
			}
			return ErrIdentifierCollision
		case !errors.Is(scanErr, sql.ErrNoRows):
			return fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
		}

		if _, execErr := tx.ExecContext(ctx, insertDeck,
			dbID(userID), dbID(deckID), deckCodec.TypeName(), record,
		); execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "*deckRepository.createDeck").
			Uint64("user_id", userID).
			Uint64("deck_id", deckID).
			Msg("deck creation failed")
		return models.CardDeck{}, 0, err
	}

	return deck, deckID, nil
}

// GetDeck returns an independent copy of the deck stored under
// (userID, deckID). Mutating the returned value does not alias storage;
// changes must be re-persisted through [deckRepository.MutateDeck].
func (r *deckRepository) GetDeck(ctx context.Context, userID, deckID uint64) (models.CardDeck, error) {
	log := logger.FromContext(ctx)

	var recordType string
	var record []byte

	err := r.db.InReadTx(ctx, func(tx *sql.Tx) error {
		scanErr := tx.QueryRowContext(ctx, selectDeck, dbID(userID), dbID(deckID)).
			Scan(&recordType, &record)
		switch {
		case errors.Is(scanErr, sql.ErrNoRows):
			return ErrDeckNotFound
		case scanErr != nil:
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrDeckNotFound) {
			log.Err(err).Str("func", "*deckRepository.GetDeck").Uint64("user_id", userID).Msg("deck lookup failed")
		}
		return models.CardDeck{}, err
	}

	deck, err := deckCodec.Decode(recordType, record)
	if err != nil {
		log.Err(err).Str("func", "*deckRepository.GetDeck").Uint64("deck_id", deckID).Msg("stored deck record is corrupt")
		return models.CardDeck{}, err
	}

	return deck, nil
}

// ListDecks returns a summary of every deck owned by userID, ordered by deck
// id. The whole listing is read inside one read transaction, so it reflects
// a single snapshot even while decks are being created concurrently.
//
// Returns an empty slice when the user owns no decks.
func (r *deckRepository) ListDecks(ctx context.Context, userID uint64) ([]models.DeckSummary, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListDecksQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*deckRepository.ListDecks").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	summaries := make([]models.DeckSummary, 0, 8)

	err = r.db.InReadTx(ctx, func(tx *sql.Tx) error {
		rows, queryErr := tx.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
		}
		defer rows.Close()

		for rows.Next() {
			var deckID int64
			var recordType string
			var record []byte

			if scanErr := rows.Scan(&deckID, &recordType, &record); scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
			}

			deck, decodeErr := deckCodec.Decode(recordType, record)
			if decodeErr != nil {
				return decodeErr
			}

			summaries = append(summaries, models.DeckSummary{
				DeckID:   storeID(deckID),
				Name:     deck.Name,
				NumCards: len(deck.Cards),
			})
		}

		if rowsErr := rows.Err(); rowsErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*deckRepository.ListDecks").Uint64("user_id", userID).Msg("deck listing failed")
		return nil, err
	}

	return summaries, nil
}

// DeleteDeck removes the deck stored under (userID, deckID).
func (r *deckRepository) DeleteDeck(ctx context.Context, userID, deckID uint64) error {
	log := logger.FromContext(ctx)

	err := r.db.InWriteTx(ctx, func(tx *sql.Tx) error {
		res, execErr := tx.ExecContext(ctx, deleteDeck, dbID(userID), dbID(deckID))
		if execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		affected, raErr := res.RowsAffected()
		if raErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, raErr)
		}
		if affected == 0 {
			return ErrDeckNotFound
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrDeckNotFound) {
			log.Err(err).Str("func", "*deckRepository.DeleteDeck").Uint64("deck_id", deckID).Msg("deck deletion failed")
		}
		return err
	}

	return nil
}

// MutateDeck implements the card mutation protocol: read the deck record,
// apply mutate to the in-memory copy, write the record back — all inside one
// write transaction. Writers serialize on the single-connection write pool,
// so two concurrent mutations of the same key always observe each other's
// committed effect; the lost-update anomaly of a naive read-then-write pair
// of transactions cannot occur.
//
// mutate runs exactly once. Any error it returns aborts the transaction and
// is returned to the caller unwrapped; card index validation happens inside
// mutate, under the same exclusive scope as the write.
func (r *deckRepository) MutateDeck(ctx context.Context, userID, deckID uint64, mutate func(deck *models.CardDeck) error) (models.CardDeck, error) {
	log := logger.FromContext(ctx)

	var deck models.CardDeck

	err := r.db.InWriteTx(ctx, func(tx *sql.Tx) error {
		var recordType string
		var record []byte

		scanErr := tx.QueryRowContext(ctx, selectDeck, dbID(userID), dbID(deckID)).
			Scan(&recordType, &record)
		switch {
		case errors.Is(scanErr, sql.ErrNoRows):
			return ErrDeckNotFound
		case scanErr != nil:
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		var decodeErr error
		deck, decodeErr = deckCodec.Decode(recordType, record)
		if decodeErr != nil {
			return decodeErr
		}

		if mutateErr := mutate(&deck); mutateErr != nil {
			return mutateErr
		}

		updated, encodeErr := deckCodec.Encode(deck)
		if encodeErr != nil {
			return encodeErr
		}

		if _, execErr := tx.ExecContext(ctx, updateDeckRecord, updated, dbID(userID), dbID(deckID)); execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrDeckNotFound) && !errors.Is(err, ErrCardNotFound) {
			log.Err(err).
				Str("func", "*deckRepository.MutateDeck").
				Uint64("user_id", userID).
				Uint64("deck_id", deckID).
				Msg("deck mutation failed")
		}
		return models.CardDeck{}, err
	}

	return deck, nil
}
