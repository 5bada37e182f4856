package favorites

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS favorites (
	book_id TEXT PRIMARY KEY NOT NULL
);

CREATE TABLE IF NOT EXISTS session (
	key TEXT PRIMARY KEY NOT NULL,
	value TEXT NOT NULL
);
`

const sessionUserKey = "user_id"

// DB is the local SQLite database holding the favorites mirror and the
// persisted session. It implements Mirror.
type DB struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// Open opens (creating if needed) the storefront database at dbPath.
func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storefront database: %w", err)
	}

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to storefront database: %w", err), closeErr)
	}

	if _, err := db.Exec(schema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create tables: %w", err), closeErr)
	}

	return &DB{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Add persists a favorited book identifier.
func (d *DB) Add(bookID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(`INSERT OR IGNORE INTO favorites (book_id) VALUES (?)`, bookID)
	if err != nil {
		return fmt.Errorf("failed to persist favorite: %w", err)
	}
	return nil
}

// Remove deletes a favorited book identifier.
func (d *DB) Remove(bookID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(`DELETE FROM favorites WHERE book_id = ?`, bookID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// IDs returns all persisted favorite identifiers.
func (d *DB) IDs() ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows, err := d.db.Query(`SELECT book_id FROM favorites`)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UserID returns the persisted current-user identifier, empty when no user
// is logged in.
func (d *DB) UserID() (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var value string
	err := d.db.QueryRow(`SELECT value FROM session WHERE key = ?`, sessionUserKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return value, nil
}

// SetUserID persists the current-user identifier.
func (d *DB) SetUserID(userID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(`INSERT OR REPLACE INTO session (key, value) VALUES (?, ?)`, sessionUserKey, userID)
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// ClearUserID removes the persisted session.
func (d *DB) ClearUserID() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.db.Exec(`DELETE FROM session WHERE key = ?`, sessionUserKey)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
