// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	insertUser = `INSERT INTO users (username, user_id, email, record_type, record)
    VALUES (?, ?, ?, ?, ?);`

	selectUserByUsername = `SELECT record_type, record
    FROM users
    WHERE username = ?;`

	selectUserByUserID = `SELECT username
    FROM users
    WHERE user_id = ?;`

	selectUserByEmail = `SELECT record_type, record
    FROM users
    WHERE email = ?;`

	updateUserRecord = `UPDATE users
    SET record = ?
    WHERE username = ?;`

	deleteUserByUsername = `DELETE FROM users
    WHERE username = ?;`

	insertDeck = `INSERT INTO decks (user_id, deck_id, record_type, record)
    VALUES (?, ?, ?, ?);`

	selectDeck = `SELECT record_type, record
    FROM decks
    WHERE user_id = ? AND deck_id = ?;`

	updateDeckRecord = `UPDATE decks
    SET record = ?
    WHERE user_id = ? AND deck_id = ?;`

	deleteDeck = `DELETE FROM decks
    WHERE user_id = ? AND deck_id = ?;`

	insertSession = `INSERT INTO sessions (token, user_id, expires_at, record_type, record)
    VALUES (?, ?, ?, ?, ?);`

	selectSession = `SELECT record_type, record
    FROM sessions
    WHERE token = ?;`

	deleteSession = `DELETE FROM sessions
    WHERE token = ?;`
)

// buildListDecksQuery selects every deck record owned by userID, ordered by
// deck id so listings are stable across calls.
func buildListDecksQuery(userID uint64) (string, []any, error) {
	return sq.Select("deck_id", "record_type", "record").
		From("decks").
		Where(sq.Eq{"user_id": dbID(userID)}).
		OrderBy("deck_id").
		ToSql()
}

// buildDeleteUserDecksQuery removes every deck owned by userID. Used by the
// cascading account deletion.
func buildDeleteUserDecksQuery(userID uint64) (string, []any, error) {
	return sq.Delete("decks").
		Where(sq.Eq{"user_id": dbID(userID)}).
		ToSql()
}

// buildDeleteUserSessionsQuery removes every session owned by userID.
func buildDeleteUserSessionsQuery(userID uint64) (string, []any, error) {
	return sq.Delete("sessions").
		Where(sq.Eq{"user_id": dbID(userID)}).
		ToSql()
}

// buildPurgeSessionsQuery removes every session whose expiry lies at or
// before the given unix timestamp.
func buildPurgeSessionsQuery(nowUnix int64) (string, []any, error) {
	return sq.Delete("sessions").
		Where(sq.LtOrEq{"expires_at": nowUnix}).
		ToSql()
}

// dbID converts a derived 64-bit identifier to the signed representation
// SQLite stores in INTEGER columns. The cast is bit-preserving and reversed
// by storeID on the way out.
func dbID(id uint64) int64 {
	return int64(id)
}

// storeID reverses dbID.
func storeID(id int64) uint64 {
	return uint64(id)
}
