package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/store"
	"github.com/MKhiriev/go-card-keeper/models"
)

// deckService is the concrete implementation of DeckService. Deck-level CRUD
// maps directly onto the repository; card-level operations go through the
// repository's deck mutation protocol, which runs the whole
// read-modify-write cycle in one write transaction. Index bounds are checked
// inside the mutation closure, so a concurrent shrink of the card slice is
// caught under the same transaction that would have written past it.
type deckService struct {
	deckRepository store.DeckRepository
	logger         *logger.Logger
}

// NewDeckService constructs a DeckService over the given repository.
func NewDeckService(decks store.DeckRepository, logger *logger.Logger) DeckService {
	return &deckService{
		deckRepository: decks,
		logger:         logger,
	}
}

// CreateDeck creates an empty deck named deckName for userID.
//
// Returns the created deck's summary or:
//   - ErrInvalidDataProvided if deckName is empty.
//   - A wrapped storage error otherwise (e.g. store.ErrDeckAlreadyExists).
func (d *deckService) CreateDeck(ctx context.Context, userID uint64, deckName string) (models.DeckSummary, error) {
	log := logger.FromContext(ctx)

	if deckName == "" {
		log.Error().Uint64("user_id", userID).Msg("empty deck name provided")
		return models.DeckSummary{}, ErrInvalidDataProvided
	}

	deck, deckID, err := d.deckRepository.CreateDeck(ctx, userID, deckName)
	if err != nil {
		log.Err(err).Uint64("user_id", userID).Str("deck_name", deckName).Msg("deck creation ended with error")
		return models.DeckSummary{}, fmt.Errorf("deck creation ended with error: %w", err)
	}

	return models.DeckSummary{
		DeckID:   deckID,
		Name:     deck.Name,
		NumCards: len(deck.Cards),
	}, nil
}

// GetDeck returns the deck stored under (userID, deckID).
func (d *deckService) GetDeck(ctx context.Context, userID, deckID uint64) (models.CardDeck, error) {
	deck, err := d.deckRepository.GetDeck(ctx, userID, deckID)
	if err != nil {
		return models.CardDeck{}, fmt.Errorf("deck lookup ended with error: %w", err)
	}
	return deck, nil
}

// ListDecks returns a summary of every deck owned by userID.
func (d *deckService) ListDecks(ctx context.Context, userID uint64) ([]models.DeckSummary, error) {
	summaries, err := d.deckRepository.ListDecks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("deck listing ended with error: %w", err)
	}
	return summaries, nil
}

// DeleteDeck removes the deck stored under (userID, deckID).
func (d *deckService) DeleteDeck(ctx context.Context, userID, deckID uint64) error {
	if err := d.deckRepository.DeleteDeck(ctx, userID, deckID); err != nil {
		return fmt.Errorf("deck deletion ended with error: %w", err)
	}
	return nil
}

// CreateCard appends a new card to the deck.
//
// Returns ErrInvalidDataProvided when both question and answer are empty; a
// card must carry at least one side.
func (d *deckService) CreateCard(ctx context.Context, userID, deckID uint64, question, answer string) error {
	log := logger.FromContext(ctx)

	if question == "" && answer == "" {
		log.Error().Uint64("deck_id", deckID).Msg("empty card provided")
		return ErrInvalidDataProvided
	}

	_, err := d.deckRepository.MutateDeck(ctx, userID, deckID, func(deck *models.CardDeck) error {
		deck.Cards = append(deck.Cards, models.Card{Question: question, Answer: answer})
		return nil
	})
	if err != nil {
		log.Err(err).Uint64("user_id", userID).Uint64("deck_id", deckID).Msg("card creation ended with error")
		return fmt.Errorf("card creation ended with error: %w", err)
	}

	return nil
}

// EditCard replaces both sides of the card at cardIndex.
//
// The index is validated against the deck state inside the mutation, so a
// card deleted by a concurrent request surfaces as store.ErrCardNotFound
// rather than silently editing a different card.
func (d *deckService) EditCard(ctx context.Context, userID, deckID uint64, cardIndex int, newQuestion, newAnswer string) error {
	log := logger.FromContext(ctx)

	if newQuestion == "" && newAnswer == "" {
		log.Error().Uint64("deck_id", deckID).Msg("empty card provided")
		return ErrInvalidDataProvided
	}

	_, err := d.deckRepository.MutateDeck(ctx, userID, deckID, func(deck *models.CardDeck) error {
		if cardIndex < 0 || cardIndex >= len(deck.Cards) {
			return store.ErrCardNotFound
		}
		deck.Cards[cardIndex] = models.Card{Question: newQuestion, Answer: newAnswer}
		return nil
	})
	if err != nil {
		log.Err(err).Uint64("deck_id", deckID).Int("card_index", cardIndex).Msg("card edit ended with error")
		return fmt.Errorf("card edit ended with error: %w", err)
	}

	return nil
}

// DeleteCard removes the card at cardIndex. Cards after it shift down one
// position.
func (d *deckService) DeleteCard(ctx context.Context, userID, deckID uint64, cardIndex int) error {
	log := logger.FromContext(ctx)

	_, err := d.deckRepository.MutateDeck(ctx, userID, deckID, func(deck *models.CardDeck) error {
		if cardIndex < 0 || cardIndex >= len(deck.Cards) {
			return store.ErrCardNotFound
		}
		deck.Cards = append(deck.Cards[:cardIndex], deck.Cards[cardIndex+1:]...)
		return nil
	})
	if err != nil {
		log.Err(err).Uint64("deck_id", deckID).Int("card_index", cardIndex).Msg("card deletion ended with error")
		return fmt.Errorf("card deletion ended with error: %w", err)
	}

	return nil
}

// ListCards returns the deck's cards in order.
func (d *deckService) ListCards(ctx context.Context, userID, deckID uint64) ([]models.Card, error) {
	deck, err := d.deckRepository.GetDeck(ctx, userID, deckID)
	if err != nil {
		return nil, fmt.Errorf("deck lookup ended with error: %w", err)
	}
	return deck.Cards, nil
}

// ImportDeck creates a deck named deckName and fills it from text: pairs of
// consecutive non-empty lines become question/answer cards. A trailing
// unpaired line becomes a card with an empty answer rather than being
// dropped silently.
//
// The deck and its cards are stored by a single repository write, so a
// failed import leaves nothing behind and a retry is not rejected as a
// duplicate.
func (d *deckService) ImportDeck(ctx context.Context, userID uint64, deckName, text string) (models.DeckSummary, error) {
	log := logger.FromContext(ctx)

	if deckName == "" {
		log.Error().Uint64("user_id", userID).Msg("empty deck name provided")
		return models.DeckSummary{}, ErrInvalidDataProvided
	}

	cards := cardsFromLines(text)
	if len(cards) == 0 {
		log.Error().Uint64("user_id", userID).Msg("no card lines found in imported text")
		return models.DeckSummary{}, ErrInvalidDataProvided
	}

	deck, deckID, err := d.deckRepository.CreateDeckWithCards(ctx, userID, deckName, cards)
	if err != nil {
		log.Err(err).Uint64("user_id", userID).Str("deck_name", deckName).Msg("deck import ended with error")
		return models.DeckSummary{}, fmt.Errorf("deck import ended with error: %w", err)
	}

	return models.DeckSummary{
		DeckID:   deckID,
		Name:     deck.Name,
		NumCards: len(deck.Cards),
	}, nil
}

// cardsFromLines pairs consecutive non-empty trimmed lines into cards.
func cardsFromLines(text string) []models.Card {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	cards := make([]models.Card, 0, (len(lines)+1)/2)
	for i := 0; i < len(lines); i += 2 {
		card := models.Card{Question: lines[i]}
		if i+1 < len(lines) {
			card.Answer = lines[i+1]
		}
		cards = append(cards, card)
	}

	return cards
}
