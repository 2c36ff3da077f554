// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"errors"
	"testing"

	"github.com/MKhiriev/go-card-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	deck := models.CardDeck{
		CreationTime: 1700000000,
		Name:         "capitals",
		Cards: []models.Card{
			{Question: "Capital of France?", Answer: "Paris"},
			{Question: "Capital of Japan?", Answer: "Tokyo"},
		},
	}

	data, err := deckCodec.Encode(deck)
	require.NoError(t, err)

	decoded, err := deckCodec.Decode(deckCodec.TypeName(), data)
	require.NoError(t, err)
	assert.Equal(t, deck, decoded)
}

func TestCodec_EncodeIsDeterministic(t *testing.T) {
	user := models.User{
		Username:     "alice",
		UserID:       42,
		Email:        "alice@example.com",
		PasswordHash: bytes.Repeat([]byte{0xab}, models.PasswordHashLen),
		PasswordSalt: bytes.Repeat([]byte{0xcd}, models.PasswordSaltLen),
		SignupTime:   1700000000,
	}

	first, err := userCodec.Encode(user)
	require.NoError(t, err)
	second, err := userCodec.Encode(user)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCodec_TypeMismatchIsCorruption(t *testing.T) {
	data, err := sessionCodec.Encode(models.Session{Token: "tok", UserID: 1})
	require.NoError(t, err)

	// bytes written under the session identifier must never reach the deck
	// decoder, even though a CardDeck could parse from them
	_, err = deckCodec.Decode(sessionCodec.TypeName(), data)
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestCodec_UndecodableBytesAreCorruption(t *testing.T) {
	_, err := deckCodec.Decode(deckCodec.TypeName(), []byte("not json at all"))
	assert.ErrorIs(t, err, ErrCorruptRecord)

	_, err = deckCodec.Decode(deckCodec.TypeName(), nil)
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestCodec_VariableWidth(t *testing.T) {
	for _, tn := range []interface{ FixedWidth() (int, bool) }{userCodec, deckCodec, sessionCodec} {
		if _, fixed := tn.FixedWidth(); fixed {
			t.Error("record codecs must report variable-length encodings")
		}
	}
}

func TestCodec_IdentifiersAreDistinct(t *testing.T) {
	names := map[string]bool{
		userCodec.TypeName():    true,
		deckCodec.TypeName():    true,
		sessionCodec.TypeName(): true,
	}
	if len(names) != 3 {
		t.Fatalf("codec type identifiers collide: %v", names)
	}
	if errors.Is(ErrCorruptRecord, ErrDeckNotFound) {
		t.Fatal("corruption must be distinguishable from absence")
	}
}
