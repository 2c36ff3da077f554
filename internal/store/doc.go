// Package store implements the transactional record store of the
// application: the embedded SQLite database, the record encoding contract,
// derived-key management, transaction scopes, and the repositories exposing
// CRUD access to the users, decks and sessions tables.
//
// Records are stored as encoded blobs beside a small set of derived index
// columns; the blob is authoritative. Read transactions observe WAL
// snapshots and never block writers; write transactions serialize on a
// single-connection pool, so a read-modify-write performed inside one write
// transaction is linearized with respect to every other mutation.
package store
