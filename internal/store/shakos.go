package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sean-Lang1/MarchingBandDB/internal/model"
)

// CheckoutShako issues a shako to a student. Like uniforms, shakos are
// created at first checkout rather than stocked ahead of time.
func CheckoutShako(ctx context.Context, db *sql.DB, studentID int64, size, notes string) (*model.Shako, error) {
	if err := requireStudent(ctx, db, studentID); err != nil {
		return nil, err
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO shakos (size, condition_notes, checked_out_to, checked_out_date)
		 VALUES (?, ?, ?, date('now'))`,
		nullable(size), nullable(notes), studentID,
	)
	if uniqueViolation(err, shakoCatalog.holderColumn()) {
		return nil, fmt.Errorf("checking out shako to student %d: %w", studentID, ErrAlreadyHolding)
	}
	if err != nil {
		return nil, fmt.Errorf("checking out shako: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting shako id: %w", err)
	}
	return GetShako(ctx, db, id)
}

// GetShako returns a shako by ID, or nil if absent.
func GetShako(ctx context.Context, db *sql.DB, id int64) (*model.Shako, error) {
	sh := &model.Shako{}
	var holder sql.NullInt64
	err := db.QueryRowContext(ctx,
		`SELECT id, COALESCE(size, ''), COALESCE(condition_notes, ''),
		        checked_out_to, COALESCE(checked_out_date, '')
		 FROM shakos WHERE id = ?`, id,
	).Scan(&sh.ID, &sh.Size, &sh.ConditionNotes, &holder, &sh.CheckedOutDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting shako %d: %w", id, err)
	}
	if holder.Valid {
		sh.CheckedOutTo = &holder.Int64
	}
	return sh, nil
}

// ReissueShako assigns a previously returned shako to a student.
func ReissueShako(ctx context.Context, db *sql.DB, shakoID, studentID int64) error {
	if err := requireStudent(ctx, db, studentID); err != nil {
		return err
	}
	return checkoutExisting(ctx, db, shakoCatalog, shakoID, studentID)
}

// ReturnShako clears a shako's custody. The row stays in the catalog.
func ReturnShako(ctx context.Context, db *sql.DB, shakoID int64) error {
	return returnItem(ctx, db, shakoCatalog, shakoID)
}

const shakoListQuery = `
SELECT sh.id, COALESCE(sh.size, ''), COALESCE(sh.condition_notes, ''),
       sh.checked_out_to, COALESCE(sh.checked_out_date, ''),
       COALESCE(s.first_name || ' ' || s.last_name, '')
FROM shakos sh
LEFT JOIN students s ON s.id = sh.checked_out_to`

func scanShakos(rows *sql.Rows) ([]model.Shako, error) {
	var shakos []model.Shako
	for rows.Next() {
		var sh model.Shako
		var holder sql.NullInt64
		err := rows.Scan(&sh.ID, &sh.Size, &sh.ConditionNotes, &holder, &sh.CheckedOutDate, &sh.HolderName)
		if err != nil {
			return nil, fmt.Errorf("scanning shako: %w", err)
		}
		if holder.Valid {
			sh.CheckedOutTo = &holder.Int64
		}
		shakos = append(shakos, sh)
	}
	return shakos, rows.Err()
}

// ListAvailableShakos returns returned shakos sitting in stock, candidates
// for re-issue.
func ListAvailableShakos(ctx context.Context, db *sql.DB) ([]model.Shako, error) {
	rows, err := db.QueryContext(ctx, shakoListQuery+`
		WHERE sh.checked_out_to IS NULL ORDER BY sh.id`)
	if err != nil {
		return nil, fmt.Errorf("listing available shakos: %w", err)
	}
	defer rows.Close()

	return scanShakos(rows)
}

// ListCheckedOutShakos returns shakos currently issued to a student.
func ListCheckedOutShakos(ctx context.Context, db *sql.DB) ([]model.Shako, error) {
	rows, err := db.QueryContext(ctx, shakoListQuery+`
		WHERE sh.checked_out_to IS NOT NULL ORDER BY sh.id`)
	if err != nil {
		return nil, fmt.Errorf("listing checked-out shakos: %w", err)
	}
	defer rows.Close()

	return scanShakos(rows)
}

// ListShakoAssignments returns every shako, checked-out rows first.
func ListShakoAssignments(ctx context.Context, db *sql.DB) ([]model.Shako, error) {
	rows, err := db.QueryContext(ctx, shakoListQuery+`
		ORDER BY (sh.checked_out_to IS NULL), sh.id`)
	if err != nil {
		return nil, fmt.Errorf("listing shako assignments: %w", err)
	}
	defer rows.Close()

	return scanShakos(rows)
}
