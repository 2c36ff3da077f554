package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-card-keeper/internal/config"
	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/utils"
	"github.com/MKhiriev/go-card-keeper/models"
)

type llmRunner struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewLLMRunner constructs an HTTP implementation of [LLMRunner] talking to
// the language-model service at cfg.LLMAddress.
//
// Returns an error if cfg.LLMAddress is empty or cannot be parsed as a valid
// URL.
func NewLLMRunner(cfg config.Adapter, logger *logger.Logger) (LLMRunner, error) {
	baseURL, err := normalizeBaseURL(cfg.LLMAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid llm address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &llmRunner{client: client, logger: logger}, nil
}

// SubmitPrompt implements [LLMRunner]. It POSTs the prompt to /api/prompt
// and returns the response text. Any transport failure or non-2xx upstream
// status is reported as ErrUpstreamUnavailable.
func (l *llmRunner) SubmitPrompt(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	var result models.PromptResponse

	resp, err := l.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.PromptRequest{Prompt: prompt}).
		SetResult(&result).
		Post("/api/prompt")
	if err != nil {
		log.Err(err).Msg("llm request failed")
		return "", fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Msg("llm answered with error status")
		return "", fmt.Errorf("%w: llm answered %d", ErrUpstreamUnavailable, resp.StatusCode())
	}

	return result.Response, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
