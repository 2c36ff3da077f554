package store

import (
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/migrations"
)

// DB is the shared handle to the embedded store. It is a long-lived value
// owned by the application and referenced by every repository; all internal
// synchronization lives here, so callers never lock around it.
//
// Two connection pools are held over the same database file:
//   - read:  WAL snapshot reads, any number of concurrent transactions;
//   - write: a single connection with immediate transaction locking, so
//     write transactions serialize without SQLITE_BUSY churn.
type DB struct {
	read       *sql.DB
	write      *sql.DB
	classifier *SQLiteErrorClassifier
	logger     *logger.Logger
}

// Migrate applies the embedded schema migrations. Initialization is
// idempotent: existing tables are left untouched.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.write)
}

// Close releases both connection pools.
func (db *DB) Close() error {
	return errors.Join(db.read.Close(), db.write.Close())
}
