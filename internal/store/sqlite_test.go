package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-card-keeper/internal/config"
	"github.com/MKhiriev/go-card-keeper/internal/logger"
)

// newTestDB opens a migrated store over a fresh temp file. Every test that
// touches real SQL goes through here.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	l := logger.NewLogger("test")
	db, err := NewConnectSQLite(context.Background(), config.DB{
		DSN: filepath.Join(t.TempDir(), "cards.db"),
	}, l)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("unexpected migration error: %v", err)
	}

	return db
}

func TestNewConnectSQLite_CreatesFile(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "fresh.db")

	db, err := NewConnectSQLite(context.Background(), config.DB{DSN: dbFile}, logger.NewLogger("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbFile); err != nil {
		t.Errorf("database file was not created: %v", err)
	}
}

func TestNewConnectSQLite_ReopensExistingFile(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()
	l := logger.NewLogger("test")

	first, err := NewConnectSQLite(ctx, config.DB{DSN: dbFile}, l)
	if err != nil {
		t.Fatalf("unexpected error on first open: %v", err)
	}
	if err := first.Migrate(); err != nil {
		t.Fatalf("unexpected migration error: %v", err)
	}
	if _, err := first.write.Exec(insertSession, "tok", 1, 99, sessionCodec.TypeName(), []byte(`{}`)); err != nil {
		t.Fatalf("failed to seed row: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	second, err := NewConnectSQLite(ctx, config.DB{DSN: dbFile}, l)
	if err != nil {
		t.Fatalf("unexpected error on reopen: %v", err)
	}
	defer second.Close()

	var count int
	if err := second.read.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count); err != nil {
		t.Fatalf("unexpected query error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected seeded row to survive reopen, got %d rows", count)
	}
}
