package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the band database at path. The pragmas ride on the DSN so
// every pooled connection gets them, not just the first: WAL journaling, a
// busy timeout for concurrent hand-out sessions, and foreign keys ON, which
// the custody tables depend on for their references into students.
func Open(path string) (*sql.DB, error) {
	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}
