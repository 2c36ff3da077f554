package store

import (
	"context"
	"database/sql"
	"fmt"
)

// maxWriteAttempts bounds the retries of a write transaction whose failure
// the classifier reports as transient (busy or locked database file).
const maxWriteAttempts = 3

// InWriteTx runs fn inside a write transaction on the single-connection
// write pool. The transaction commits only if fn returns nil; any error from
// fn (or from commit) rolls back every staged mutation, so a failure can
// never leave a table partially updated.
//
// A failure the classifier reports as [Retryable] (busy or locked database
// file) restarts the whole transaction, at most [maxWriteAttempts] times.
// fn must therefore be safe to re-run, which holds for every repository
// operation: the rolled-back attempt left no state behind and the retry
// re-reads everything it depends on.
//
// The deferred rollback fires on every exit path, including panics, which
// guarantees a failed operation never leaks an open transaction that would
// starve subsequent writers. Rollback after a successful commit is a no-op.
func (db *DB) InWriteTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = db.runWriteTx(ctx, fn)
		if err == nil || attempt == maxWriteAttempts || db.classifier.Classify(err) == NonRetryable {
			return err
		}
		db.logger.Warn().Err(err).Int("attempt", attempt).Msg("transient write failure, retrying transaction")
	}
}

func (db *DB) runWriteTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// InReadTx runs fn inside a read transaction on the read pool. The
// transaction observes a consistent WAL snapshot of all tables as of its
// first read; it never blocks a concurrent write transaction and is never
// blocked by one already in flight.
//
// The sqlite3 driver does not accept TxOptions.ReadOnly; the read-only
// discipline is kept by convention: fn must not mutate.
func (db *DB) InReadTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.read.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
