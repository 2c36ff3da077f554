package store

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// ErrorClassification is the result type returned by
// [SQLiteErrorClassifier.Classify]. It indicates whether a failed database
// operation should be retried or abandoned. [DB.InWriteTx] consults it to
// restart write transactions that failed on a transient lock.
type ErrorClassification int

const (
	// NonRetryable indicates that the failed operation should not be retried.
	// This is the default classification for unrecognised errors, constraint
	// violations, and malformed statements.
	NonRetryable ErrorClassification = iota

	// Retryable indicates that the failed operation may succeed if attempted
	// again (e.g. after a transient lock or a busy database file).
	Retryable
)

// SQLiteErrorClassifier inspects the error code returned by the sqlite3
// driver and maps it to an [ErrorClassification] value.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify attempts to unwrap err as a sqlite3.Error and maps its primary
// code. If err is nil or not a sqlite3 driver error, [NonRetryable] is
// returned.
//
// Retryable codes:
//   - SQLITE_BUSY, SQLITE_LOCKED — another connection holds a conflicting lock
//   - SQLITE_PROTOCOL            — WAL locking protocol retry
//
// Any other code is classified as [NonRetryable].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return NonRetryable
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrProtocol:
		return Retryable
	}

	return NonRetryable
}

// sqliteExtendedCode unwraps err to the sqlite3 extended result code, or 0
// when err did not originate in the driver. Used by repositories as a
// backstop for constraint violations the explicit pre-checks did not catch.
func sqliteExtendedCode(err error) sqlite3.ErrNoExtended {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode
	}
	return 0
}

// isConstraintViolation reports whether err is any SQLITE_CONSTRAINT error.
func isConstraintViolation(err error) bool {
	switch sqliteExtendedCode(err) {
	case sqlite3.ErrConstraintPrimaryKey,
		sqlite3.ErrConstraintUnique,
		sqlite3.ErrConstraintNotNull,
		sqlite3.ErrConstraintCheck:
		return true
	}
	return false
}
