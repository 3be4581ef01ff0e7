package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Sean-Lang1/MarchingBandDB/internal/db"
	"github.com/Sean-Lang1/MarchingBandDB/internal/model"
)

func TestCheckoutAndReturnShako(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionPercussion)

	sh, err := CheckoutShako(ctx, database, 101, "7 1/4", "loose strap")
	if err != nil {
		t.Fatalf("CheckoutShako: %v", err)
	}
	if sh.CheckedOutTo == nil || *sh.CheckedOutTo != 101 {
		t.Fatalf("expected holder 101, got %v", sh.CheckedOutTo)
	}
	if sh.Size != "7 1/4" {
		t.Errorf("unexpected size %q", sh.Size)
	}

	if err := ReturnShako(ctx, database, sh.ID); err != nil {
		t.Fatalf("ReturnShako: %v", err)
	}
	got, _ := GetShako(ctx, database, sh.ID)
	if got == nil || got.CheckedOutTo != nil {
		t.Errorf("expected available shako still in catalog, got %+v", got)
	}
}

func TestCheckoutShakoSingleHolder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionPercussion)

	if _, err := CheckoutShako(ctx, database, 101, "7", ""); err != nil {
		t.Fatalf("CheckoutShako: %v", err)
	}
	_, err := CheckoutShako(ctx, database, 101, "7 1/2", "")
	if !errors.Is(err, ErrAlreadyHolding) {
		t.Fatalf("expected ErrAlreadyHolding, got %v", err)
	}
}

func TestCheckoutShakoUnknownStudent(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := CheckoutShako(context.Background(), database, 999, "7", "")
	if !errors.Is(err, ErrUnknownStudent) {
		t.Fatalf("expected ErrUnknownStudent, got %v", err)
	}
}

func TestReissueShako(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionPercussion)
	register(t, database, 102, model.SectionPercussion)

	sh, _ := CheckoutShako(ctx, database, 101, "7 1/4", "")
	if err := ReturnShako(ctx, database, sh.ID); err != nil {
		t.Fatalf("ReturnShako: %v", err)
	}

	available, err := ListAvailableShakos(ctx, database)
	if err != nil {
		t.Fatalf("ListAvailableShakos: %v", err)
	}
	if len(available) != 1 || available[0].ID != sh.ID {
		t.Fatalf("expected the returned shako in stock, got %+v", available)
	}

	if err := ReissueShako(ctx, database, sh.ID, 102); err != nil {
		t.Fatalf("ReissueShako: %v", err)
	}
	got, _ := GetShako(ctx, database, sh.ID)
	if got.CheckedOutTo == nil || *got.CheckedOutTo != 102 {
		t.Fatalf("expected holder 102, got %v", got.CheckedOutTo)
	}
	if got.Size != "7 1/4" {
		t.Errorf("re-issue must keep the row's size, got %q", got.Size)
	}

	if err := ReissueShako(ctx, database, sh.ID, 101); !errors.Is(err, ErrAlreadyCheckedOut) {
		t.Errorf("expected ErrAlreadyCheckedOut, got %v", err)
	}
}

func TestReturnShakoNotCheckedOut(t *testing.T) {
	database := db.NewTestDB(t)

	if err := ReturnShako(context.Background(), database, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUniformAndShakoHeldTogether(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionBrass)

	// The single-holder rule is per catalog: a student can hold a uniform
	// and a shako at the same time.
	if _, err := CheckoutUniform(ctx, database, 101, "40R", "", "", "", ""); err != nil {
		t.Fatalf("CheckoutUniform: %v", err)
	}
	if _, err := CheckoutShako(ctx, database, 101, "7", ""); err != nil {
		t.Fatalf("CheckoutShako: %v", err)
	}
}
