package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-card-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mocks.go -package=mock

// UserRepository provides access to the users table. Derived user ids are
// computed inside the repository from the username, so callers never supply
// them at creation time.
type UserRepository interface {
	// CreateUser persists a new user record and returns it with the derived
	// UserID and SignupTime populated. Fails with ErrUsernameAlreadyExists,
	// ErrEmailAlreadyExists or ErrIdentifierCollision.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the account addressed by email, or
	// ErrUserNotFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByUsername returns the account owning username, or
	// ErrUserNotFound.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// UpdateUser re-persists the record of an existing user (password
	// change). The username and derived id are immutable.
	UpdateUser(ctx context.Context, user models.User) error

	// DeleteUser removes the user record together with every deck and
	// session owned by its user id, atomically with respect to each other.
	DeleteUser(ctx context.Context, user models.User) error
}

// DeckRepository provides access to the decks table.
type DeckRepository interface {
	// CreateDeck stores a new empty deck under the id derived from deckName
	// and returns the stored record with its derived id. Fails with
	// ErrDeckAlreadyExists when the slot holds a deck of the same name and
	// ErrIdentifierCollision when it holds a deck of a different name.
	CreateDeck(ctx context.Context, userID uint64, deckName string) (models.CardDeck, uint64, error)

	// CreateDeckWithCards stores a new deck pre-filled with cards, under the
	// same occupancy rules as CreateDeck. The insert carries the full card
	// slice in one write transaction: after a failure the deck does not
	// exist at all, never as an empty shell.
	CreateDeckWithCards(ctx context.Context, userID uint64, deckName string, cards []models.Card) (models.CardDeck, uint64, error)

	// GetDeck returns the deck stored under (userID, deckID), or
	// ErrDeckNotFound.
	GetDeck(ctx context.Context, userID, deckID uint64) (models.CardDeck, error)

	// ListDecks returns a summary of every deck owned by userID. An empty
	// result is not an error.
	ListDecks(ctx context.Context, userID uint64) ([]models.DeckSummary, error)

	// DeleteDeck removes the deck stored under (userID, deckID), or fails
	// with ErrDeckNotFound.
	DeleteDeck(ctx context.Context, userID, deckID uint64) error

	// MutateDeck runs the read-modify-write protocol for card mutations:
	// the deck record is read, passed to mutate, and written back inside a
	// single write transaction, so two concurrent mutations of the same key
	// can never both observe the same prior state. An error from mutate
	// aborts the transaction and is returned unwrapped, which is how index
	// re-validation surfaces ErrCardNotFound.
	MutateDeck(ctx context.Context, userID, deckID uint64, mutate func(deck *models.CardDeck) error) (models.CardDeck, error)
}

// SessionRepository provides access to the sessions table.
type SessionRepository interface {
	// CreateSession stores a newly issued session.
	CreateSession(ctx context.Context, session models.Session) error

	// GetSession returns the session addressed by token, or
	// ErrSessionNotFound. Expiry is not checked here; that is the caller's
	// decision point.
	GetSession(ctx context.Context, token string) (models.Session, error)

	// DeleteSession removes the session addressed by token, or fails with
	// ErrSessionNotFound.
	DeleteSession(ctx context.Context, token string) error

	// PurgeExpired removes every session expired as of now and reports how
	// many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
