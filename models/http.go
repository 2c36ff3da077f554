package models

// Request and response bodies of the REST API. Every endpoint is a POST with
// a JSON body; authorized endpoints carry the access token in the
// Authorization header, not in the body.

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      uint64 `json:"user_id"`
}

type ChangePasswordRequest struct {
	Email       string `json:"email"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type DeleteUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateDeckRequest struct {
	DeckName string `json:"deck_name"`
}

type DeckRequest struct {
	DeckID uint64 `json:"deck_id"`
}

type GetDeckResponse struct {
	DeckID       uint64 `json:"deck_id"`
	Name         string `json:"name"`
	CreationTime int64  `json:"creation_time"`
	NumCards     int    `json:"num_cards"`
}

type ListDecksResponse struct {
	Decks []DeckSummary `json:"decks"`
}

type CreateCardRequest struct {
	DeckID   uint64 `json:"deck_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type EditCardRequest struct {
	DeckID      uint64 `json:"deck_id"`
	CardIndex   int    `json:"card_index"`
	NewQuestion string `json:"new_question"`
	NewAnswer   string `json:"new_answer"`
}

type DeleteCardRequest struct {
	DeckID    uint64 `json:"deck_id"`
	CardIndex int    `json:"card_index"`
}

type ListCardsResponse struct {
	Cards []Card `json:"cards"`
}

// ImportDeckRequest creates a deck from document text: the extractor splits
// the text into lines and consecutive line pairs become question/answer cards.
type ImportDeckRequest struct {
	DeckName string `json:"deck_name"`
	Text     string `json:"text"`
}

type PromptRequest struct {
	Prompt string `json:"prompt"`
}

type PromptResponse struct {
	Response string `json:"response"`
}

type SearchRequest struct {
	Prompt string `json:"prompt"`
	TopK   int    `json:"top_k"`
}

// SearchResult is one ranked deck reference returned by the search engine.
type SearchResult struct {
	UserID uint64  `json:"user_id"`
	DeckID uint64  `json:"deck_id"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
}

type SearchResponse struct {
	Decks []SearchResult `json:"decks"`
}
