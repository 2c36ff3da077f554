package store

import (
	"github.com/MKhiriev/go-card-keeper/internal/logger"
)

// Repositories bundles every repository over the shared [DB] handle.
type Repositories struct {
	UserRepository    UserRepository
	DeckRepository    DeckRepository
	SessionRepository SessionRepository
}

func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db, logger),
		DeckRepository:    NewDeckRepository(db, logger),
		SessionRepository: NewSessionRepository(db, logger),
	}
}
