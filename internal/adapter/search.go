package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-card-keeper/internal/config"
	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/utils"
	"github.com/MKhiriev/go-card-keeper/models"
)

// defaultTopK is used when a search request does not bound its result count.
const defaultTopK = 5

type searchEngine struct {
	client *utils.HTTPClient
	logger *logger.Logger

	// mu serializes queries: the engine handles one search at a time and we
	// accept the contention instead of overloading it.
	mu sync.Mutex
}

// NewSearchEngine constructs an HTTP implementation of [SearchEngine]
// talking to the deck search service at cfg.SearchAddress.
func NewSearchEngine(cfg config.Adapter, logger *logger.Logger) (SearchEngine, error) {
	baseURL, err := normalizeBaseURL(cfg.SearchAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid search address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &searchEngine{client: client, logger: logger}, nil
}

// Search implements [SearchEngine]. Queries run one at a time; concurrent
// callers wait their turn.
func (s *searchEngine) Search(ctx context.Context, query string, topK int) ([]models.SearchResult, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyPrompt
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result models.SearchResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.SearchRequest{Prompt: query, TopK: topK}).
		SetResult(&result).
		Post("/api/search")
	if err != nil {
		log.Err(err).Msg("search request failed")
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Msg("search engine answered with error status")
		return nil, fmt.Errorf("%w: search engine answered %d", ErrUpstreamUnavailable, resp.StatusCode())
	}

	if len(result.Decks) > topK {
		result.Decks = result.Decks[:topK]
	}

	return result.Decks, nil
}
