package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Sean-Lang1/MarchingBandDB/internal/model"
)

// RegisterStudent adds a student to the roster and, in the same
// transaction, creates their zeroed compliance record if one is not already
// present. Student IDs are assigned externally and never reused.
func RegisterStudent(ctx context.Context, db *sql.DB, id int64, firstName, lastName, classification, section, shirtSize, shoeSize string) error {
	if !model.ValidSection(section) {
		return fmt.Errorf("registering student %d: %w: %q", id, ErrInvalidSection, section)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO students (id, first_name, last_name, classification, section, shirt_size, shoe_size)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, firstName, lastName, nullable(classification), section, nullable(shirtSize), nullable(shoeSize),
	)
	if uniqueViolation(err, "students.id") {
		return fmt.Errorf("registering student %d: %w", id, ErrDuplicateID)
	}
	if err != nil {
		return fmt.Errorf("registering student: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO compliance (student_id, credit_hours, gpa, dues_paid, last_verified)
		 VALUES (?, 0, 0.0, 0, date('now'))`,
		id,
	)
	if err != nil {
		return fmt.Errorf("creating compliance record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing registration: %w", err)
	}
	return nil
}

// StudentExists reports whether a student with the given ID is registered.
func StudentExists(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM students WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking student %d: %w", id, err)
	}
	return true, nil
}

// StudentSection returns the student's section.
func StudentSection(ctx context.Context, db *sql.DB, id int64) (string, error) {
	var section string
	err := db.QueryRowContext(ctx, `SELECT section FROM students WHERE id = ?`, id).Scan(&section)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("student %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("getting section for student %d: %w", id, err)
	}
	return section, nil
}

const profileQuery = `
SELECT s.id, s.first_name, s.last_name, COALESCE(s.classification, ''), s.section,
       COALESCE(s.shirt_size, ''), COALESCE(s.shoe_size, ''),
       COALESCE(c.credit_hours, 0), COALESCE(c.gpa, 0.0), COALESCE(c.dues_paid, 0),
       COALESCE(c.last_verified, '')
FROM students s
LEFT JOIN compliance c ON c.student_id = s.id`

func scanProfile(row interface{ Scan(...any) error }) (model.StudentProfile, error) {
	var p model.StudentProfile
	var dues int
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Classification, &p.Section,
		&p.ShirtSize, &p.ShoeSize,
		&p.CreditHours, &p.GPA, &dues, &p.LastVerified)
	if err != nil {
		return p, err
	}
	p.StudentID = p.ID
	p.DuesPaid = dues == 1
	p.Eligible = model.Eligible(p.CreditHours, p.GPA, p.DuesPaid)
	return p, nil
}

// ListStudents returns the full roster with compliance and derived
// eligibility, ordered by section, last name, first name.
func ListStudents(ctx context.Context, db *sql.DB) ([]model.StudentProfile, error) {
	rows, err := db.QueryContext(ctx, profileQuery+`
		ORDER BY s.section, s.last_name, s.first_name`)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	defer rows.Close()

	var students []model.StudentProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning student: %w", err)
		}
		students = append(students, p)
	}
	return students, rows.Err()
}

// GetStudentProfile returns one student with compliance and eligibility, or
// nil if no student has that ID.
func GetStudentProfile(ctx context.Context, db *sql.DB, id int64) (*model.StudentProfile, error) {
	row := db.QueryRowContext(ctx, profileQuery+` WHERE s.id = ?`, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting student %d: %w", id, err)
	}
	return &p, nil
}
