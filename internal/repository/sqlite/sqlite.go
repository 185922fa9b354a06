package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite.
//
// All operations run on a single connection and are serialized by one
// mutex. This is a deliberate trade-off for small, low-contention
// contact-book workloads, not a general concurrency design.
type Repository struct {
	mu sync.Mutex
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and returns a
// migrated Repository.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single shared connection; the mutex makes the serialization
	// contract explicit rather than relying on pool behavior.
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	PRAGMA journal_mode=WAL;
	PRAGMA foreign_keys=ON;

	CREATE TABLE IF NOT EXISTS cards (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		title      TEXT DEFAULT '',
		company    TEXT DEFAULT '',
		website    TEXT DEFAULT '',
		notes      TEXT DEFAULT '',
		photo_path TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS card_phones (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		card_id INTEGER NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		label   TEXT DEFAULT 'mobile',
		number  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS card_emails (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		card_id INTEGER NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		label   TEXT DEFAULT 'work',
		address TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS card_addresses (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		card_id INTEGER NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		label   TEXT DEFAULT 'office',
		street  TEXT DEFAULT '',
		city    TEXT DEFAULT '',
		country TEXT DEFAULT '',
		postal  TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS tags (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS card_tags (
		card_id INTEGER NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		tag_id  INTEGER NOT NULL REFERENCES tags(id)  ON DELETE CASCADE,
		PRIMARY KEY (card_id, tag_id)
	);

	CREATE INDEX IF NOT EXISTS idx_card_phones_card ON card_phones(card_id);
	CREATE INDEX IF NOT EXISTS idx_card_emails_card ON card_emails(card_id);
	CREATE INDEX IF NOT EXISTS idx_card_addresses_card ON card_addresses(card_id);
	CREATE INDEX IF NOT EXISTS idx_card_tags_tag ON card_tags(tag_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db.PingContext(ctx)
}

// IsEmpty reports whether the cards table has zero rows.
func (r *Repository) IsEmpty(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count cards: %w", err)
	}
	return n == 0, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}
