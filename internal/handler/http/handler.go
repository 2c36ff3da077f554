package http

import (
	"github.com/MKhiriev/go-card-keeper/internal/adapter"
	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	llm       adapter.LLMRunner
	search    adapter.SearchEngine
	extractor adapter.TextExtractor

	logger *logger.Logger
}

func NewHandler(services *service.Services, llm adapter.LLMRunner, search adapter.SearchEngine, extractor adapter.TextExtractor, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		llm:       llm,
		search:    search,
		extractor: extractor,
		logger:    logger,
	}
}
