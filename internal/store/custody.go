package store

import (
	"context"
	"database/sql"
	"fmt"
)

// catalog identifies one custody table. The checkout/return state machine
// is the same for all three catalogs; only the table and the item's display
// name differ. Every catalog table has id, checked_out_to (UNIQUE, the
// single-holder invariant), and checked_out_date columns.
type catalog struct {
	table string
	label string
}

var (
	instrumentCatalog = catalog{table: "instruments", label: "instrument"}
	uniformCatalog    = catalog{table: "uniforms", label: "uniform"}
	shakoCatalog      = catalog{table: "shakos", label: "shako"}
)

// holderColumn is the qualified column the single-holder UNIQUE constraint
// lives on, used to classify constraint failures.
func (c catalog) holderColumn() string {
	return c.table + ".checked_out_to"
}

// checkoutExisting transitions an available item to checked out. The
// guarded UPDATE writes nothing unless the item is currently available, and
// the UNIQUE holder constraint rejects a student who already holds an item
// from this catalog, so no partial state can be left behind.
func checkoutExisting(ctx context.Context, db *sql.DB, cat catalog, itemID, studentID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET checked_out_to = ?, checked_out_date = date('now')
		             WHERE id = ? AND checked_out_to IS NULL`, cat.table),
		studentID, itemID,
	)
	if uniqueViolation(err, cat.holderColumn()) {
		return fmt.Errorf("checking out %s %d to student %d: %w", cat.label, itemID, studentID, ErrAlreadyHolding)
	}
	if err != nil {
		return fmt.Errorf("checking out %s %d: %w", cat.label, itemID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking out %s %d: %w", cat.label, itemID, err)
	}
	if n == 0 {
		// Nothing written: the item is either held or missing.
		var one int
		err := tx.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT 1 FROM %s WHERE id = ?`, cat.table), itemID,
		).Scan(&one)
		if err == sql.ErrNoRows {
			return fmt.Errorf("%s %d: %w", cat.label, itemID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("checking %s %d: %w", cat.label, itemID, err)
		}
		return fmt.Errorf("%s %d: %w", cat.label, itemID, ErrAlreadyCheckedOut)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing checkout: %w", err)
	}
	return nil
}

// returnItem transitions a checked-out item back to available, clearing the
// holder and date together. Returning an item that is not checked out (or
// does not exist) is reported, not silently accepted. The row itself
// persists; items never leave their catalog.
func returnItem(ctx context.Context, db *sql.DB, cat catalog, itemID int64) error {
	res, err := db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET checked_out_to = NULL, checked_out_date = NULL
		             WHERE id = ? AND checked_out_to IS NOT NULL`, cat.table),
		itemID,
	)
	if err != nil {
		return fmt.Errorf("returning %s %d: %w", cat.label, itemID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("returning %s %d: %w", cat.label, itemID, err)
	}
	if n == 0 {
		return fmt.Errorf("no checked-out %s %d: %w", cat.label, itemID, ErrNotFound)
	}
	return nil
}

// requireStudent is the shared existence precondition for checkouts.
func requireStudent(ctx context.Context, db *sql.DB, studentID int64) error {
	exists, err := StudentExists(ctx, db, studentID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("student %d: %w", studentID, ErrUnknownStudent)
	}
	return nil
}
