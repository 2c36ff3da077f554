// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-card-keeper/models"
)

// Codec is the encoding contract between a record type and the bytes stored
// in its table. Every record type persisted by this package owns exactly one
// Codec, distinguished by a stable type identifier that is written beside the
// blob and checked again on every read.
//
// Encoding is deterministic and Decode(Encode(v)) == v for every valid v.
// All encodings are variable-length.
type Codec[T any] struct {
	typeName string
}

// NewCodec constructs the codec for record type T under the given stable
// type identifier. Identifiers must never change once records exist: they
// are how bytes written by one type are kept out of another type's decoder.
func NewCodec[T any](typeName string) Codec[T] {
	return Codec[T]{typeName: typeName}
}

// TypeName returns the stable type identifier of T.
func (c Codec[T]) TypeName() string {
	return c.typeName
}

// FixedWidth reports whether encoded values have a fixed byte size.
// Record encodings here are always variable-length.
func (c Codec[T]) FixedWidth() (int, bool) {
	return 0, false
}

// Encode serializes v into the bytes stored in the record column.
func (c Codec[T]) Encode(v T) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding %s record: %w", c.typeName, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode reverses Encode. typeName is the identifier stored beside the blob;
// a mismatch or undecodable bytes both mean the stored record was not
// produced by this codec and surface as [ErrCorruptRecord]. Corruption is a
// recoverable caller error, never a panic.
func (c Codec[T]) Decode(typeName string, data []byte) (T, error) {
	var v T

	if typeName != c.typeName {
		return v, fmt.Errorf("%w: record type %q, expected %q", ErrCorruptRecord, typeName, c.typeName)
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}

	return v, nil
}

// Codecs of the three record types. The identifiers are part of the on-disk
// format.
var (
	userCodec    = NewCodec[models.User]("card_keeper_user")
	deckCodec    = NewCodec[models.CardDeck]("card_keeper_deck")
	sessionCodec = NewCodec[models.Session]("card_keeper_session")
)
