package adapter

import "errors"

var (
	// ErrUpstreamUnavailable is returned when a collaborator cannot be
	// reached or answers with a non-2xx status.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrEmptyPrompt is returned when a prompt or query has no content.
	ErrEmptyPrompt = errors.New("empty prompt")

	// ErrNoTextContent is returned when an uploaded document yields no
	// extractable text.
	ErrNoTextContent = errors.New("no text content in document")
)
