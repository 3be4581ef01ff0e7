package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sean-Lang1/MarchingBandDB/internal/model"
)

// CheckoutUniform issues a uniform to a student. There is no pre-stocked
// uniform pool: the row is created directly in the checked-out state with
// the sizes and numbers fitted at issue time. The UNIQUE holder constraint
// still applies, so a student with an outstanding uniform is rejected.
func CheckoutUniform(ctx context.Context, db *sql.DB, studentID int64, coatSize, pantSize, coatNumber, pantNumber, notes string) (*model.Uniform, error) {
	if err := requireStudent(ctx, db, studentID); err != nil {
		return nil, err
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO uniforms (coat_size, pant_size, coat_number, pant_number, condition_notes, checked_out_to, checked_out_date)
		 VALUES (?, ?, ?, ?, ?, ?, date('now'))`,
		nullable(coatSize), nullable(pantSize), nullable(coatNumber), nullable(pantNumber), nullable(notes), studentID,
	)
	if uniqueViolation(err, uniformCatalog.holderColumn()) {
		return nil, fmt.Errorf("checking out uniform to student %d: %w", studentID, ErrAlreadyHolding)
	}
	if err != nil {
		return nil, fmt.Errorf("checking out uniform: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting uniform id: %w", err)
	}
	return GetUniform(ctx, db, id)
}

// GetUniform returns a uniform by ID, or nil if absent.
func GetUniform(ctx context.Context, db *sql.DB, id int64) (*model.Uniform, error) {
	u := &model.Uniform{}
	var holder sql.NullInt64
	err := db.QueryRowContext(ctx,
		`SELECT id, COALESCE(coat_size, ''), COALESCE(pant_size, ''),
		        COALESCE(coat_number, ''), COALESCE(pant_number, ''),
		        COALESCE(condition_notes, ''), checked_out_to, COALESCE(checked_out_date, '')
		 FROM uniforms WHERE id = ?`, id,
	).Scan(&u.ID, &u.CoatSize, &u.PantSize, &u.CoatNumber, &u.PantNumber,
		&u.ConditionNotes, &holder, &u.CheckedOutDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting uniform %d: %w", id, err)
	}
	if holder.Valid {
		u.CheckedOutTo = &holder.Int64
	}
	return u, nil
}

// ReissueUniform assigns a previously returned uniform to a student instead
// of tailoring a new row. Same guarded transition as instruments:
// ErrNotFound if the row is absent, ErrAlreadyCheckedOut if it is held,
// ErrAlreadyHolding if the student has an outstanding uniform.
func ReissueUniform(ctx context.Context, db *sql.DB, uniformID, studentID int64) error {
	if err := requireStudent(ctx, db, studentID); err != nil {
		return err
	}
	return checkoutExisting(ctx, db, uniformCatalog, uniformID, studentID)
}

// ReturnUniform clears a uniform's custody. The row stays in the catalog.
func ReturnUniform(ctx context.Context, db *sql.DB, uniformID int64) error {
	return returnItem(ctx, db, uniformCatalog, uniformID)
}

const uniformListQuery = `
SELECT u.id, COALESCE(u.coat_size, ''), COALESCE(u.pant_size, ''),
       COALESCE(u.coat_number, ''), COALESCE(u.pant_number, ''),
       COALESCE(u.condition_notes, ''), u.checked_out_to, COALESCE(u.checked_out_date, ''),
       COALESCE(s.first_name || ' ' || s.last_name, '')
FROM uniforms u
LEFT JOIN students s ON s.id = u.checked_out_to`

func scanUniforms(rows *sql.Rows) ([]model.Uniform, error) {
	var uniforms []model.Uniform
	for rows.Next() {
		var u model.Uniform
		var holder sql.NullInt64
		err := rows.Scan(&u.ID, &u.CoatSize, &u.PantSize, &u.CoatNumber, &u.PantNumber,
			&u.ConditionNotes, &holder, &u.CheckedOutDate, &u.HolderName)
		if err != nil {
			return nil, fmt.Errorf("scanning uniform: %w", err)
		}
		if holder.Valid {
			u.CheckedOutTo = &holder.Int64
		}
		uniforms = append(uniforms, u)
	}
	return uniforms, rows.Err()
}

// ListAvailableUniforms returns returned uniforms sitting in stock,
// candidates for re-issue.
func ListAvailableUniforms(ctx context.Context, db *sql.DB) ([]model.Uniform, error) {
	rows, err := db.QueryContext(ctx, uniformListQuery+`
		WHERE u.checked_out_to IS NULL ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("listing available uniforms: %w", err)
	}
	defer rows.Close()

	return scanUniforms(rows)
}

// ListCheckedOutUniforms returns uniforms currently issued to a student.
func ListCheckedOutUniforms(ctx context.Context, db *sql.DB) ([]model.Uniform, error) {
	rows, err := db.QueryContext(ctx, uniformListQuery+`
		WHERE u.checked_out_to IS NOT NULL ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("listing checked-out uniforms: %w", err)
	}
	defer rows.Close()

	return scanUniforms(rows)
}

// ListUniformAssignments returns every uniform, checked-out rows first.
func ListUniformAssignments(ctx context.Context, db *sql.DB) ([]model.Uniform, error) {
	rows, err := db.QueryContext(ctx, uniformListQuery+`
		ORDER BY (u.checked_out_to IS NULL), u.id`)
	if err != nil {
		return nil, fmt.Errorf("listing uniform assignments: %w", err)
	}
	defer rows.Close()

	return scanUniforms(rows)
}
