package utils

import "github.com/google/uuid"

// TokenGenerator produces opaque access token values for new sessions.
type TokenGenerator struct {
}

func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{}
}

// Generate returns a new opaque token. UUIDv7 keeps issued tokens roughly
// time-ordered in the sessions table; v4 is the fallback if the monotonic
// source fails.
func (g *TokenGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
