package adapter

import (
	"context"

	"github.com/MKhiriev/go-card-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mocks.go -package=mock

// LLMRunner relays free-form prompts to the configured language-model
// service.
type LLMRunner interface {
	// SubmitPrompt sends prompt and returns the model's text response.
	// A failure here is an upstream failure; it never implies anything
	// about stored data.
	SubmitPrompt(ctx context.Context, prompt string) (string, error)
}

// SearchEngine finds decks relevant to a free-form query.
type SearchEngine interface {
	// Search returns up to topK deck references ordered by relevance.
	Search(ctx context.Context, query string, topK int) ([]models.SearchResult, error)
}

// TextExtractor turns an uploaded document into plain text lines for deck
// import.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}
