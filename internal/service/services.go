package service

import (
	"github.com/MKhiriev/go-card-keeper/internal/config"
	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/store"
)

type Services struct {
	AuthService AuthService
	DeckService DeckService
}

func NewServices(repositories *store.Repositories, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(repositories.UserRepository, repositories.SessionRepository, cfg.App, logger),
		DeckService: NewDeckService(repositories.DeckRepository, logger),
	}
}
