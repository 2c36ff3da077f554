package service

import (
	"context"

	"github.com/MKhiriev/go-card-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mocks.go -package=mock

// AuthService owns the account and session lifecycle.
type AuthService interface {
	// Register creates a new account. Fails with ErrInvalidDataProvided on
	// empty fields and passes through the store's uniqueness errors.
	Register(ctx context.Context, username, email, password string) (models.User, error)

	// Login verifies the password of the account addressed by email and
	// issues a new session. Fails with ErrWrongPassword on a digest
	// mismatch.
	Login(ctx context.Context, email, password string) (models.Session, error)

	// ChangePassword re-derives the stored digest under a fresh salt after
	// verifying the old password.
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error

	// DeleteAccount removes the account and everything it owns after
	// verifying the password.
	DeleteAccount(ctx context.Context, email, password string) error

	// ValidateToken resolves an access token to the owning user id.
	// Expired sessions are deleted on sight and rejected; every rejection
	// is ErrBadAccessToken.
	ValidateToken(ctx context.Context, token string) (uint64, error)

	// Logout revokes the session addressed by token.
	Logout(ctx context.Context, token string) error
}

// DeckService owns deck and card operations. Every method is scoped to the
// authenticated user's id; a deck id never reaches another user's data.
type DeckService interface {
	CreateDeck(ctx context.Context, userID uint64, deckName string) (models.DeckSummary, error)
	GetDeck(ctx context.Context, userID, deckID uint64) (models.CardDeck, error)
	ListDecks(ctx context.Context, userID uint64) ([]models.DeckSummary, error)
	DeleteDeck(ctx context.Context, userID, deckID uint64) error

	CreateCard(ctx context.Context, userID, deckID uint64, question, answer string) error
	EditCard(ctx context.Context, userID, deckID uint64, cardIndex int, newQuestion, newAnswer string) error
	DeleteCard(ctx context.Context, userID, deckID uint64, cardIndex int) error
	ListCards(ctx context.Context, userID, deckID uint64) ([]models.Card, error)

	// ImportDeck creates a deck and fills it with cards built from pairs of
	// consecutive non-empty text lines.
	ImportDeck(ctx context.Context, userID uint64, deckName, text string) (models.DeckSummary, error)
}
