package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB is the per-profile local storage: a small SQLite key/value database
// playing the role browser localStorage plays for a web client.
type DB struct {
	*sql.DB
}

// Open creates a new SQLite connection with WAL mode so the terminal client
// and outreachctl can share a profile.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &DB{db}, nil
}
