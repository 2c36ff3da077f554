// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the password digest primitive of the
// application. The digest algorithm is treated as a black box by the rest of
// the code: the store persists exactly DigestLen bytes of output and SaltLen
// bytes of salt, both sized to the algorithm below.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	"golang.org/x/crypto/argon2"
)

// PasswordHasher derives and verifies Argon2id password digests.
type PasswordHasher interface {
	// GenerateSalt returns SaltLen bytes from the OS CSPRNG.
	GenerateSalt() ([]byte, error)

	// Digest derives the fixed-length digest of password under salt.
	Digest(password string, salt []byte) []byte

	// Verify reports whether password under salt matches digest.
	// The comparison is constant-time.
	Verify(password string, salt, digest []byte) bool
}

const (
	// SaltLen is the per-user salt size in bytes.
	SaltLen = 16

	// DigestLen is the digest output size in bytes. The users table stores
	// exactly this many bytes per account.
	DigestLen = 32
)

// passwordHasher is the private implementation of [PasswordHasher].
type passwordHasher struct {
	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
}

// NewPasswordHasher constructs a [PasswordHasher] with the Argon2id
// parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
func NewPasswordHasher() PasswordHasher {
	return &passwordHasher{
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
	}
}

// GenerateSalt implements [PasswordHasher]. It reads SaltLen random bytes
// from the OS CSPRNG. Returns an error if the random read fails.
func (p *passwordHasher) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// Digest implements [PasswordHasher]. The output is always DigestLen bytes.
func (p *passwordHasher) Digest(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.argonTime, p.argonMemory, p.argonThreads, DigestLen)
}

// Verify implements [PasswordHasher].
func (p *passwordHasher) Verify(password string, salt, digest []byte) bool {
	candidate := p.Digest(password, salt)
	return subtle.ConstantTimeCompare(candidate, digest) == 1
}
