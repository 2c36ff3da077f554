package models

// Card is a single question/answer pair. A card has no identity of its own:
// its position inside the owning deck's Cards slice is its only handle.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// CardDeck is an ordered collection of cards owned by exactly one user.
// It is stored in the decks table under the composite key (user id, deck id),
// where the deck id is derived from the deck name the same way a user id is
// derived from a username.
type CardDeck struct {
	CreationTime int64  `json:"creation_time"`
	Name         string `json:"name"`
	Cards        []Card `json:"cards"`
}

// TableName returns the name of the database table
// associated with the CardDeck model.
func (d CardDeck) TableName() string {
	return "decks"
}

// DeckSummary is the listing projection of a deck: its derived id, name and
// card count. Returned by the deck listing operation.
type DeckSummary struct {
	DeckID   uint64 `json:"deck_id"`
	Name     string `json:"name"`
	NumCards int    `json:"num_cards"`
}
