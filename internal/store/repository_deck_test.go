package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/utils"
	"github.com/MKhiriev/go-card-keeper/models"
)

func newTestDeckRepo(t *testing.T) (DeckRepository, *DB) {
	t.Helper()
	db := newTestDB(t)
	return NewDeckRepository(db, logger.NewLogger("test")), db
}

func TestDeckRepository_CreateAndGet(t *testing.T) {
	repo, _ := newTestDeckRepo(t)
	ctx := context.Background()

	created, deckID, err := repo.CreateDeck(ctx, 7, "geography")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deckID != utils.DeriveID("geography") {
		t.Errorf("expected derived deck id %d, got %d", utils.DeriveID("geography"), deckID)
	}
	if created.Name != "geography" {
		t.Errorf("expected name geography, got %s", created.Name)
	}
	if len(created.Cards) != 0 {
		t.Errorf("expected a new deck to be empty, got %d cards", len(created.Cards))
	}
	if created.CreationTime == 0 {
		t.Error("expected CreationTime to be populated")
	}

	got, err := repo.GetDeck(ctx, 7, deckID)
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if got.Name != "geography" || len(got.Cards) != 0 {
		t.Errorf("unexpected stored deck: %+v", got)
	}
}

func TestDeckRepository_CreateDuplicate(t *testing.T) {
	repo, _ := newTestDeckRepo(t)
	ctx := context.Background()

	if _, _, err := repo.CreateDeck(ctx, 7, "biology"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := repo.CreateDeck(ctx, 7, "biology")
	if !errors.Is(err, ErrDeckAlreadyExists) {
		t.Fatalf("expected ErrDeckAlreadyExists, got %v", err)
	}
}

func TestDeckRepository_SameNameDifferentUsers(t *testing.T) {
	repo, _ := newTestDeckRepo(t)
	ctx := context.Background()

	if _, _, err := repo.CreateDeck(ctx, 1, "shared name"); err != nil {
		t.Fatalf("unexpected error for first user: %v", err)
	}
	if _, _, err := repo.CreateDeck(ctx, 2, "shared name"); err != nil {
		t.Fatalf("deck names must be scoped per user, got %v", err)
	}
}

func TestDeckRepository_GetMissing(t *testing.T) {
	repo, _ := newTestDeckRepo(t)

	_, err := repo.GetDeck(context.Background(), 7, 12345)
	if !errors.Is(err, ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound, got %v", err)
	}
}

func TestDeckRepository_ListDecks(t *testing.T) {
	repo, _ := newTestDeckRepo(t)
	ctx := context.Background()

	empty, err := repo.ListDecks(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty listing, got %d entries", len(empty))
	}

	names := []string{"algebra", "chemistry", "latin"}
	for _, name := range names {
		if _, _, err := repo.CreateDeck(ctx, 7, name); err != nil {
			t.Fatalf("unexpected error creating %q: %v", name, err)
		}
	}
	// a deck for another user must not leak into the listing
	if _, _, err := repo.CreateDeck(ctx, 8, "not yours"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chemistryID := utils.DeriveID("chemistry")
	if _, err := repo.MutateDeck(ctx, 7, chemistryID, func(deck *models.CardDeck) error {
		deck.Cards = append(deck.Cards,
			models.Card{Question: "H2O?", Answer: "water"},
			models.Card{Question: "NaCl?", Answer: "salt"},
		)
		return nil
	}); err != nil {
		t.Fatalf("unexpected mutation error: %v", err)
	}

	summaries, err := repo.ListDecks(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != len(names) {
		t.Fatalf("expected %d summaries, got %d", len(names), len(summaries))
	}

	counts := map[string]int{}
	for _, s := range summaries {
		counts[s.Name] = s.NumCards
		if s.DeckID != utils.DeriveID(s.Name) {
			t.Errorf("summary id for %q does not match derivation", s.Name)
		}
	}
	if counts["chemistry"] != 2 {
		t.Errorf("expected 2 cards in chemistry, got %d", counts["chemistry"])
	}
	if counts["algebra"] != 0 || counts["latin"] != 0 {
		t.Errorf("expected untouched decks to stay empty: %v", counts)
	}
}

func TestDeckRepository_DeleteDeck(t *testing.T) {
	repo, _ := newTestDeckRepo(t)
	ctx := context.Background()

	_, deckID, err := repo.CreateDeck(ctx, 7, "doomed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.DeleteDeck(ctx, 7, deckID); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if _, err := repo.GetDeck(ctx, 7, deckID); !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("expected ErrDeckNotFound after deletion, got %v", err)
	}
	if err := repo.DeleteDeck(ctx, 7, deckID); !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("expected ErrDeckNotFound on second deletion, got %v", err)
	}
}

func TestDeckRepository_MutateDeck(t *testing.T) {
	repo, _ := newTestDeckRepo(t)
	ctx := context.Background()

	_, deckID, err := repo.CreateDeck(ctx, 7, "vocab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := repo.MutateDeck(ctx, 7, deckID, func(deck *models.CardDeck) error {
		deck.Cards = append(deck.Cards, models.Card{Question: "dog?", Answer: "Hund"})
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected mutation error: %v", err)
	}
	if len(updated.Cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(updated.Cards))
	}

	// the returned deck reflects the committed state, so a re-read agrees
	reread, err := repo.GetDeck(ctx, 7, deckID)
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if len(reread.Cards) != 1 || reread.Cards[0].Answer != "Hund" {
		t.Errorf("mutation was not persisted: %+v", reread.Cards)
	}
}

func TestDeckRepository_MutateDeckMissing(t *testing.T) {
	repo, _ := newTestDeckRepo(t)

	called := false
	_, err := repo.MutateDeck(context.Background(), 7, 999, func(deck *models.CardDeck) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound, got %v", err)
	}
	if called {
		t.Error("mutate must not run when the deck does not exist")
	}
}

func TestDeckRepository_MutateErrorAbortsWrite(t *testing.T) {
	repo, _ := newTestDeckRepo(t)
	ctx := context.Background()

	_, deckID, err := repo.CreateDeck(ctx, 7, "stable")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = repo.MutateDeck(ctx, 7, deckID, func(deck *models.CardDeck) error {
		deck.Cards = append(deck.Cards, models.Card{Question: "never", Answer: "stored"})
		return ErrCardNotFound
	})
	if !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected the mutate error unwrapped, got %v", err)
	}

	reread, err := repo.GetDeck(ctx, 7, deckID)
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if len(reread.Cards) != 0 {
		t.Errorf("aborted mutation must leave the deck unchanged, got %d cards", len(reread.Cards))
	}
}

// Concurrent appends through MutateDeck must all land: each mutation reads
// the state left by the previous committed one, so no append can be lost.
func TestDeckRepository_MutateDeckConcurrent(t *testing.T) {
	repo, _ := newTestDeckRepo(t)
	ctx := context.Background()

	_, deckID, err := repo.CreateDeck(ctx, 7, "contended")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, mutErr := repo.MutateDeck(ctx, 7, deckID, func(deck *models.CardDeck) error {
				deck.Cards = append(deck.Cards, models.Card{
					Question: fmt.Sprintf("q%d", i),
					Answer:   fmt.Sprintf("a%d", i),
				})
				return nil
			})
			if mutErr != nil {
				errs <- mutErr
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for mutErr := range errs {
		t.Errorf("unexpected mutation error: %v", mutErr)
	}

	final, err := repo.GetDeck(ctx, 7, deckID)
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if len(final.Cards) != writers {
		t.Fatalf("expected %d cards after %d concurrent appends, got %d", writers, writers, len(final.Cards))
	}

	questions := map[string]bool{}
	for _, c := range final.Cards {
		questions[c.Question] = true
	}
	if len(questions) != writers {
		t.Errorf("expected %d distinct cards, got %d", writers, len(questions))
	}
}

func TestDeckRepository_CorruptRecord(t *testing.T) {
	repo, db := newTestDeckRepo(t)
	ctx := context.Background()

	if _, err := db.write.Exec(insertDeck, 7, 42, deckCodec.TypeName(), []byte("{broken")); err != nil {
		t.Fatalf("failed to seed corrupt row: %v", err)
	}

	if _, err := repo.GetDeck(ctx, 7, 42); !errors.Is(err, ErrCorruptRecord) {
		t.Errorf("expected ErrCorruptRecord from GetDeck, got %v", err)
	}
	if _, err := repo.MutateDeck(ctx, 7, 42, func(*models.CardDeck) error { return nil }); !errors.Is(err, ErrCorruptRecord) {
		t.Errorf("expected ErrCorruptRecord from MutateDeck, got %v", err)
	}
	if _, err := repo.ListDecks(ctx, 7); !errors.Is(err, ErrCorruptRecord) {
		t.Errorf("expected ErrCorruptRecord from ListDecks, got %v", err)
	}
}

func TestDeckRepository_CreateDeckWithCards(t *testing.T) {
	repo, _ := newTestDeckRepo(t)
	ctx := context.Background()

	cards := []models.Card{
		{Question: "hola", Answer: "hello"},
		{Question: "adios", Answer: "goodbye"},
	}

	created, deckID, err := repo.CreateDeckWithCards(ctx, 7, "spanish", cards)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deckID != utils.DeriveID("spanish") {
		t.Errorf("expected derived deck id %d, got %d", utils.DeriveID("spanish"), deckID)
	}
	if len(created.Cards) != 2 {
		t.Fatalf("expected 2 cards on the created deck, got %d", len(created.Cards))
	}

	got, err := repo.GetDeck(ctx, 7, deckID)
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if len(got.Cards) != 2 || got.Cards[0] != cards[0] || got.Cards[1] != cards[1] {
		t.Errorf("stored deck does not carry the initial cards: %+v", got.Cards)
	}
}

func TestDeckRepository_CreateDeckWithCards_NeverLeavesEmptyShell(t *testing.T) {
	repo, _ := newTestDeckRepo(t)
	ctx := context.Background()

	cards := []models.Card{{Question: "hola", Answer: "hello"}}
	if _, _, err := repo.CreateDeckWithCards(ctx, 7, "spanish", cards); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// a repeated import fails whole; the stored deck keeps its cards instead
	// of being reduced to an empty shell by a partial write
	_, _, err := repo.CreateDeckWithCards(ctx, 7, "spanish", []models.Card{{Question: "x", Answer: "y"}})
	if !errors.Is(err, ErrDeckAlreadyExists) {
		t.Fatalf("expected ErrDeckAlreadyExists, got %v", err)
	}

	got, err := repo.GetDeck(ctx, 7, utils.DeriveID("spanish"))
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	if len(got.Cards) != 1 || got.Cards[0] != cards[0] {
		t.Errorf("occupant deck changed by a failed create: %+v", got.Cards)
	}
}

func TestDeckRepository_CreateDeckIdentifierCollision(t *testing.T) {
	repo, db := newTestDeckRepo(t)
	ctx := context.Background()

	// occupy the slot DeriveID("spanish") with a deck of a different name,
	// simulating two names hashing to the same derived id
	occupant := models.CardDeck{CreationTime: 1, Name: "french", Cards: []models.Card{}}
	record, err := deckCodec.Encode(occupant)
	if err != nil {
		t.Fatalf("failed to encode occupant: %v", err)
	}
	if _, err := db.write.Exec(insertDeck, 7, dbID(utils.DeriveID("spanish")), deckCodec.TypeName(), record); err != nil {
		t.Fatalf("failed to seed occupant row: %v", err)
	}

	if _, _, err := repo.CreateDeck(ctx, 7, "spanish"); !errors.Is(err, ErrIdentifierCollision) {
		t.Errorf("expected ErrIdentifierCollision from CreateDeck, got %v", err)
	}
	if _, _, err := repo.CreateDeckWithCards(ctx, 7, "spanish", []models.Card{{Question: "q"}}); !errors.Is(err, ErrIdentifierCollision) {
		t.Errorf("expected ErrIdentifierCollision from CreateDeckWithCards, got %v", err)
	}
}
