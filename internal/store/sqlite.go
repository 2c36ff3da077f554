package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-card-keeper/internal/config"
	"github.com/MKhiriev/go-card-keeper/internal/logger"
)

// NewConnectSQLite opens the embedded store file named by cfg.DSN and
// returns the shared [DB] handle with its read and write pools configured.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// db will be in file
	if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file")
	}

	readDSN := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", cfg.DSN)
	writeDSN := readDSN + "&_txlock=immediate"

	read, err := sql.Open("sqlite3", readDSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening read pool")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	write, err := sql.Open("sqlite3", writeDSN)
	if err != nil {
		read.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening write pool")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	// one writer at a time; SQLite allows a single write transaction anyway,
	// and a single-connection pool turns engine-level contention into plain
	// queueing on the pool
	write.SetMaxOpenConns(1)

	// ping database
	if err := read.PingContext(ctx); err != nil {
		read.Close()
		write.Close()
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		read:       read,
		write:      write,
		classifier: NewSQLiteErrorClassifier(),
		logger:     log,
	}

	return db, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
