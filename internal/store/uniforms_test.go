package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Sean-Lang1/MarchingBandDB/internal/db"
	"github.com/Sean-Lang1/MarchingBandDB/internal/model"
)

func TestCheckoutUniform(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionBrass)

	u, err := CheckoutUniform(ctx, database, 101, "42L", "34x32", "C-17", "P-17", "")
	if err != nil {
		t.Fatalf("CheckoutUniform: %v", err)
	}
	if u.CheckedOutTo == nil || *u.CheckedOutTo != 101 {
		t.Fatalf("expected holder 101, got %v", u.CheckedOutTo)
	}
	if u.CoatSize != "42L" || u.PantSize != "34x32" {
		t.Errorf("unexpected sizes %q %q", u.CoatSize, u.PantSize)
	}
	if u.CheckedOutDate == "" {
		t.Error("expected checkout date to be set")
	}
}

func TestCheckoutUniformSingleHolder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionBrass)

	if _, err := CheckoutUniform(ctx, database, 101, "40R", "", "", "", ""); err != nil {
		t.Fatalf("CheckoutUniform: %v", err)
	}
	_, err := CheckoutUniform(ctx, database, 101, "42L", "", "", "", "")
	if !errors.Is(err, ErrAlreadyHolding) {
		t.Fatalf("expected ErrAlreadyHolding, got %v", err)
	}

	// The rejected checkout must not have created a row.
	all, _ := ListUniformAssignments(ctx, database)
	if len(all) != 1 {
		t.Errorf("expected 1 uniform, got %d", len(all))
	}
}

func TestCheckoutUniformUnknownStudent(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := CheckoutUniform(context.Background(), database, 999, "40R", "", "", "", "")
	if !errors.Is(err, ErrUnknownStudent) {
		t.Fatalf("expected ErrUnknownStudent, got %v", err)
	}
}

func TestReturnUniformKeepsRow(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionBrass)

	u, err := CheckoutUniform(ctx, database, 101, "40R", "", "", "", "frayed cuff")
	if err != nil {
		t.Fatalf("CheckoutUniform: %v", err)
	}

	if err := ReturnUniform(ctx, database, u.ID); err != nil {
		t.Fatalf("ReturnUniform: %v", err)
	}

	got, _ := GetUniform(ctx, database, u.ID)
	if got == nil {
		t.Fatal("expected returned uniform to stay in the catalog")
	}
	if got.CheckedOutTo != nil || got.CheckedOutDate != "" {
		t.Errorf("expected cleared custody, got %+v", got)
	}
	if got.ConditionNotes != "frayed cuff" {
		t.Errorf("expected notes preserved, got %q", got.ConditionNotes)
	}

	// The freed uniform can now go to another student.
	register(t, database, 102, model.SectionBrass)
	if _, err := CheckoutUniform(ctx, database, 102, "38S", "", "", "", ""); err != nil {
		t.Fatalf("checkout after return: %v", err)
	}
}

func TestListAvailableUniformsAfterReturn(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionBrass)
	register(t, database, 102, model.SectionBrass)

	returned, _ := CheckoutUniform(ctx, database, 101, "40R", "", "", "", "")
	CheckoutUniform(ctx, database, 102, "38S", "", "", "", "")

	// Nothing in stock while both are out.
	available, err := ListAvailableUniforms(ctx, database)
	if err != nil {
		t.Fatalf("ListAvailableUniforms: %v", err)
	}
	if len(available) != 0 {
		t.Fatalf("expected no available uniforms, got %d", len(available))
	}

	if err := ReturnUniform(ctx, database, returned.ID); err != nil {
		t.Fatalf("ReturnUniform: %v", err)
	}
	available, err = ListAvailableUniforms(ctx, database)
	if err != nil {
		t.Fatalf("ListAvailableUniforms: %v", err)
	}
	if len(available) != 1 || available[0].ID != returned.ID {
		t.Errorf("expected the returned uniform in stock, got %+v", available)
	}
}

func TestReissueUniform(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionBrass)
	register(t, database, 102, model.SectionBrass)

	u, _ := CheckoutUniform(ctx, database, 101, "40R", "", "", "", "")
	if err := ReturnUniform(ctx, database, u.ID); err != nil {
		t.Fatalf("ReturnUniform: %v", err)
	}

	if err := ReissueUniform(ctx, database, u.ID, 102); err != nil {
		t.Fatalf("ReissueUniform: %v", err)
	}
	got, _ := GetUniform(ctx, database, u.ID)
	if got.CheckedOutTo == nil || *got.CheckedOutTo != 102 {
		t.Fatalf("expected holder 102, got %v", got.CheckedOutTo)
	}
	if got.CoatSize != "40R" {
		t.Errorf("re-issue must keep the row's sizes, got %q", got.CoatSize)
	}

	// Held rows cannot be re-issued, and the single-holder rule applies.
	if err := ReissueUniform(ctx, database, u.ID, 101); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Errorf("expected ErrAlreadyCheckedOut, got %v", err)
	}
	register(t, database, 103, model.SectionBrass)
	spare, _ := CheckoutUniform(ctx, database, 103, "42L", "", "", "", "")
	ReturnUniform(ctx, database, spare.ID)
	if err := ReissueUniform(ctx, database, spare.ID, 102); !errors.Is(err, ErrAlreadyHolding) {
		t.Errorf("expected ErrAlreadyHolding, got %v", err)
	}
	if err := ReissueUniform(ctx, database, 999, 101); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReturnUniformNotCheckedOut(t *testing.T) {
	database := db.NewTestDB(t)

	if err := ReturnUniform(context.Background(), database, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListCheckedOutUniforms(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionBrass)
	register(t, database, 102, model.SectionWoodwind)

	first, _ := CheckoutUniform(ctx, database, 101, "40R", "", "", "", "")
	CheckoutUniform(ctx, database, 102, "38S", "", "", "", "")
	ReturnUniform(ctx, database, first.ID)

	out, err := ListCheckedOutUniforms(ctx, database)
	if err != nil {
		t.Fatalf("ListCheckedOutUniforms: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 checked-out uniform, got %d", len(out))
	}
	if out[0].CheckedOutTo == nil || *out[0].CheckedOutTo != 102 {
		t.Errorf("expected holder 102, got %v", out[0].CheckedOutTo)
	}
	if out[0].HolderName != "Test Student" {
		t.Errorf("expected holder name joined in, got %q", out[0].HolderName)
	}
}
