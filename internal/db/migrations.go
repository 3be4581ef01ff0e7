package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migration is one schema change. needed probes the live schema so that a
// step only runs against the legacy shape it targets; apply must leave the
// database at the current shape for that step. Append new migrations at the
// end, never reorder.
type migration struct {
	name   string
	needed func(db *sql.DB) (bool, error)
	apply  func(db *sql.DB) error
}

var migrations = []migration{
	{
		// Shirt sizes arrived after the first roster release.
		name:   "add students.shirt_size",
		needed: columnMissing("students", "shirt_size"),
		apply:  addColumn("students", "shirt_size", "TEXT"),
	},
	{
		name:   "add students.shoe_size",
		needed: columnMissing("students", "shoe_size"),
		apply:  addColumn("students", "shoe_size", "TEXT"),
	},
	{
		// The original uniforms table had no size or number columns. Those
		// are part of the row's identity at checkout, so the table is
		// rebuilt: rename aside, create the new shape, copy the columns the
		// old shape had, and drop the old table only once the copy is in.
		name:   "rebuild uniforms with sizes and numbers",
		needed: columnMissing("uniforms", "coat_size"),
		apply:  rebuildUniforms,
	},
}

// Migrate applies every pending migration step in order. Each step is
// guarded by its own schema probe, so running Migrate against a current
// database is a no-op.
func Migrate(db *sql.DB) error {
	for _, m := range migrations {
		needed, err := m.needed(db)
		if err != nil {
			return fmt.Errorf("migration %q: %w", m.name, err)
		}
		if !needed {
			continue
		}
		if err := m.apply(db); err != nil {
			return fmt.Errorf("migration %q: %w", m.name, err)
		}
	}
	return nil
}

// tableHasColumn introspects the live schema via PRAGMA table_info.
func tableHasColumn(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("reading table info for %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("scanning table info for %s: %w", table, err)
		}
		if strings.EqualFold(name, column) {
			return true, nil
		}
	}
	return false, rows.Err()
}

func columnMissing(table, column string) func(db *sql.DB) (bool, error) {
	return func(db *sql.DB) (bool, error) {
		has, err := tableHasColumn(db, table, column)
		return !has, err
	}
}

func addColumn(table, column, colType string) func(db *sql.DB) error {
	return func(db *sql.DB) error {
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, colType)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("adding column %s.%s: %w", table, column, err)
		}
		return nil
	}
}

// rebuildUniforms migrates a legacy uniforms table to the current shape. It
// runs in a single transaction so no reader can observe the renamed-aside
// intermediate state, and preserves every column the legacy shape had.
func rebuildUniforms(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	steps := []string{
		`DROP TABLE IF EXISTS uniforms_old`,
		`ALTER TABLE uniforms RENAME TO uniforms_old`,
		`CREATE TABLE uniforms (
		    id               INTEGER PRIMARY KEY AUTOINCREMENT,
		    coat_size        TEXT,
		    pant_size        TEXT,
		    coat_number      TEXT,
		    pant_number      TEXT,
		    condition_notes  TEXT,
		    checked_out_to   INTEGER UNIQUE REFERENCES students(id),
		    checked_out_date TEXT
		)`,
		`INSERT INTO uniforms (id, condition_notes, checked_out_to, checked_out_date)
		 SELECT id, condition_notes, checked_out_to, checked_out_date
		 FROM uniforms_old`,
		`DROP TABLE uniforms_old`,
	}
	for _, stmt := range steps {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("rebuilding uniforms: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing uniforms rebuild: %w", err)
	}
	return nil
}
