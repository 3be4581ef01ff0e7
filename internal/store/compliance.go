package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Sean-Lang1/MarchingBandDB/internal/model"
)

// UpsertCompliance replaces a student's compliance record whole and stamps
// the verification date. There is no partial field update; the caller
// supplies all four facts every time.
func UpsertCompliance(ctx context.Context, db *sql.DB, studentID int64, creditHours int, gpa float64, duesPaid bool) error {
	if creditHours < 0 {
		return fmt.Errorf("credit hours %d: %w", creditHours, ErrOutOfRange)
	}
	if gpa < 0.0 || gpa > 4.0 {
		return fmt.Errorf("gpa %.2f: %w", gpa, ErrOutOfRange)
	}

	exists, err := StudentExists(ctx, db, studentID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("updating compliance for student %d: %w", studentID, ErrUnknownStudent)
	}

	dues := 0
	if duesPaid {
		dues = 1
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO compliance (student_id, credit_hours, gpa, dues_paid, last_verified)
		 VALUES (?, ?, ?, ?, date('now'))
		 ON CONFLICT(student_id) DO UPDATE SET
		     credit_hours = excluded.credit_hours,
		     gpa = excluded.gpa,
		     dues_paid = excluded.dues_paid,
		     last_verified = excluded.last_verified`,
		studentID, creditHours, gpa, dues,
	)
	if err != nil {
		return fmt.Errorf("updating compliance: %w", err)
	}
	return nil
}

// EligibilityReport returns every student with their compliance facts and a
// per-criterion breakdown, ineligible students first so they get attention,
// then section, last name, first name. Eligibility comes from the one
// shared predicate, so the ineligible-first ordering is applied here rather
// than re-deriving the rule in SQL.
func EligibilityReport(ctx context.Context, db *sql.DB) ([]model.EligibilityRow, error) {
	rows, err := db.QueryContext(ctx, profileQuery+`
		ORDER BY s.section, s.last_name, s.first_name`)
	if err != nil {
		return nil, fmt.Errorf("building eligibility report: %w", err)
	}
	defer rows.Close()

	var report []model.EligibilityRow
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning eligibility row: %w", err)
		}
		report = append(report, model.EligibilityRow{
			Student:    p.Student,
			Compliance: p.Compliance,
			OKHours:    p.CreditHours >= model.MinCreditHours,
			OKGPA:      p.GPA >= model.MinGPA,
			OKDues:     p.DuesPaid,
			Eligible:   p.Eligible,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(report, func(i, j int) bool {
		return !report[i].Eligible && report[j].Eligible
	})
	return report, nil
}
