package db

import (
	"database/sql"
	"fmt"
)

// schema is the current full database schema. Legacy databases are brought
// up to this shape by the migration steps in migrations.go.
const schema = `
CREATE TABLE IF NOT EXISTS students (
    id             INTEGER PRIMARY KEY,
    first_name     TEXT NOT NULL,
    last_name      TEXT NOT NULL,
    classification TEXT,
    section        TEXT NOT NULL
        CHECK (section IN ('WOODWIND', 'BRASS', 'PERCUSSION', 'AUXILIARY', 'DM')),
    shirt_size     TEXT,
    shoe_size      TEXT
);

CREATE TABLE IF NOT EXISTS compliance (
    student_id    INTEGER PRIMARY KEY REFERENCES students(id) ON DELETE CASCADE,
    credit_hours  INTEGER NOT NULL DEFAULT 0 CHECK (credit_hours >= 0),
    gpa           REAL NOT NULL DEFAULT 0.0,
    dues_paid     INTEGER NOT NULL DEFAULT 0 CHECK (dues_paid IN (0, 1)),
    last_verified TEXT
);

CREATE TABLE IF NOT EXISTS instrument_types (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    name    TEXT NOT NULL UNIQUE,
    section TEXT NOT NULL
        CHECK (section IN ('WOODWIND', 'BRASS', 'PERCUSSION', 'AUXILIARY', 'DM'))
);

CREATE TABLE IF NOT EXISTS instruments (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    type_id          INTEGER NOT NULL REFERENCES instrument_types(id),
    serial           TEXT UNIQUE,
    condition_notes  TEXT,
    checked_out_to   INTEGER UNIQUE REFERENCES students(id),
    checked_out_date TEXT
);

CREATE TABLE IF NOT EXISTS uniforms (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    coat_size        TEXT,
    pant_size        TEXT,
    coat_number      TEXT,
    pant_number      TEXT,
    condition_notes  TEXT,
    checked_out_to   INTEGER UNIQUE REFERENCES students(id),
    checked_out_date TEXT
);

CREATE TABLE IF NOT EXISTS shakos (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    size             TEXT,
    condition_notes  TEXT,
    checked_out_to   INTEGER UNIQUE REFERENCES students(id),
    checked_out_date TEXT
);

CREATE TABLE IF NOT EXISTS section_leaders (
    section   TEXT PRIMARY KEY
        CHECK (section IN ('WOODWIND', 'BRASS', 'PERCUSSION', 'AUXILIARY', 'DM')),
    leader_id INTEGER NOT NULL REFERENCES students(id)
);
`

// EnsureSchema brings the database to the current schema version: it
// creates missing tables, applies the guarded migration steps to legacy
// shapes, and seeds the instrument-type lookup. Safe to run on every start;
// running it N times yields the same schema and never touches existing rows.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	if err := Migrate(db); err != nil {
		return err
	}

	return Seed(db)
}
