package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Sean-Lang1/MarchingBandDB/internal/db"
	"github.com/Sean-Lang1/MarchingBandDB/internal/model"
)

func TestUpsertComplianceMakesEligible(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionBrass)

	if err := UpsertCompliance(ctx, database, 101, 15, 3.2, true); err != nil {
		t.Fatalf("UpsertCompliance: %v", err)
	}

	p, err := GetStudentProfile(ctx, database, 101)
	if err != nil {
		t.Fatalf("GetStudentProfile: %v", err)
	}
	if p.CreditHours != 15 || p.GPA != 3.2 || !p.DuesPaid {
		t.Errorf("unexpected compliance: hours=%d gpa=%.2f dues=%v", p.CreditHours, p.GPA, p.DuesPaid)
	}
	if !p.Eligible {
		t.Error("expected student to be eligible after update")
	}
}

func TestUpsertComplianceUnknownStudent(t *testing.T) {
	database := db.NewTestDB(t)

	err := UpsertCompliance(context.Background(), database, 999, 15, 3.2, true)
	if !errors.Is(err, ErrUnknownStudent) {
		t.Fatalf("expected ErrUnknownStudent, got %v", err)
	}
}

func TestUpsertComplianceRejectsOutOfRange(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionBrass)

	if err := UpsertCompliance(ctx, database, 101, -1, 3.0, true); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("negative hours: expected ErrOutOfRange, got %v", err)
	}
	if err := UpsertCompliance(ctx, database, 101, 12, 4.5, true); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("gpa above 4.0: expected ErrOutOfRange, got %v", err)
	}
}

func TestUpsertComplianceIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionBrass)

	if err := UpsertCompliance(ctx, database, 101, 14, 3.5, true); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	first, _ := GetStudentProfile(ctx, database, 101)

	if err := UpsertCompliance(ctx, database, 101, 14, 3.5, true); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	second, _ := GetStudentProfile(ctx, database, 101)

	if first.CreditHours != second.CreditHours || first.GPA != second.GPA || first.DuesPaid != second.DuesPaid {
		t.Errorf("repeated upsert changed the record: %+v vs %+v", first.Compliance, second.Compliance)
	}
	// A single compliance row per student, always.
	var count int
	database.QueryRow(`SELECT COUNT(*) FROM compliance WHERE student_id = 101`).Scan(&count)
	if count != 1 {
		t.Errorf("expected 1 compliance row, got %d", count)
	}
}

func TestEligibilityReportOrdersIneligibleFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 1, model.SectionBrass)
	register(t, database, 2, model.SectionBrass)
	register(t, database, 3, model.SectionWoodwind)

	// Student 2 meets every threshold; 1 and 3 do not.
	if err := UpsertCompliance(ctx, database, 2, 12, 3.0, true); err != nil {
		t.Fatalf("UpsertCompliance: %v", err)
	}
	if err := UpsertCompliance(ctx, database, 1, 16, 3.9, false); err != nil {
		t.Fatalf("UpsertCompliance: %v", err)
	}

	report, err := EligibilityReport(ctx, database)
	if err != nil {
		t.Fatalf("EligibilityReport: %v", err)
	}
	if len(report) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(report))
	}

	if report[0].Eligible || report[1].Eligible {
		t.Error("expected ineligible students first")
	}
	if !report[2].Eligible || report[2].ID != 2 {
		t.Errorf("expected student 2 last and eligible, got %d", report[2].ID)
	}

	// Per-criterion flags for student 1: hours and gpa fine, dues unpaid.
	for _, r := range report {
		if r.ID == 1 {
			if !r.OKHours || !r.OKGPA || r.OKDues {
				t.Errorf("student 1 flags wrong: hours=%v gpa=%v dues=%v", r.OKHours, r.OKGPA, r.OKDues)
			}
		}
	}
}
