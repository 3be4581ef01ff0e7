package db

import (
	"database/sql"
	"fmt"
)

// seedTypes is the fixed instrument-type catalog. Keyed on the unique name,
// so re-seeding neither duplicates nor overwrites rows.
var seedTypes = []struct {
	name    string
	section string
}{
	{"PICCOLO", "WOODWIND"},
	{"CLARINET", "WOODWIND"},
	{"SAXOPHONE", "WOODWIND"},
	{"TRUMPET", "BRASS"},
	{"TROMBONE", "BRASS"},
	{"SOUSAPHONE", "BRASS"},
	{"MELLOPHONE", "BRASS"},
	{"PERCUSSION", "PERCUSSION"},
	{"COLOR_GUARD", "AUXILIARY"},
}

// Seed inserts the instrument-type lookup rows that are missing.
func Seed(db *sql.DB) error {
	for _, t := range seedTypes {
		_, err := db.Exec(
			`INSERT OR IGNORE INTO instrument_types (name, section) VALUES (?, ?)`,
			t.name, t.section,
		)
		if err != nil {
			return fmt.Errorf("seeding instrument type %s: %w", t.name, err)
		}
	}
	return nil
}
