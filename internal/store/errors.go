package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an attempt to register a new
	// user fails because the username is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because the email already addresses another account.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrDeckAlreadyExists is returned when deck creation targets a
	// (user id, deck id) slot already occupied by a deck with the same name.
	ErrDeckAlreadyExists = errors.New("deck already exists")

	// ErrDeckNotFound is returned when an operation targets a deck that does
	// not exist under the given (user id, deck id) key.
	ErrDeckNotFound = errors.New("deck was not found")

	// ErrCardNotFound is returned when a card index lies outside the deck's
	// card sequence at the moment of mutation. The index is re-checked under
	// the write transaction, so a concurrent shrink surfaces here.
	ErrCardNotFound = errors.New("no such card in deck")

	// ErrSessionNotFound is returned when a token does not match any stored
	// session.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrIdentifierCollision is returned when a derived 64-bit identifier is
	// already in use by a different name. Ids are hashed from names and are
	// not collision-free; the schema rejects the second writer instead of
	// silently aliasing two names onto one record.
	ErrIdentifierCollision = errors.New("derived identifier collision")

	// ErrCorruptRecord is returned when stored bytes fail to decode or their
	// type identifier does not match the table's record type. Corruption is
	// always reported to the caller, never treated as fatal.
	ErrCorruptRecord = errors.New("record bytes are corrupt")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination fails.
	ErrScanningRow = errors.New("failed to scan record row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan record rows")
)
