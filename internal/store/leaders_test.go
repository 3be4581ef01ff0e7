package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Sean-Lang1/MarchingBandDB/internal/db"
	"github.com/Sean-Lang1/MarchingBandDB/internal/model"
)

func TestSetSectionLeaderOverwrites(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionBrass)
	register(t, database, 102, model.SectionBrass)

	if err := SetSectionLeader(ctx, database, model.SectionBrass, 101); err != nil {
		t.Fatalf("SetSectionLeader: %v", err)
	}
	if err := SetSectionLeader(ctx, database, model.SectionBrass, 102); err != nil {
		t.Fatalf("replacing leader: %v", err)
	}

	leaders, err := ListSectionLeaders(ctx, database)
	if err != nil {
		t.Fatalf("ListSectionLeaders: %v", err)
	}
	if len(leaders) != 1 {
		t.Fatalf("expected 1 leader, got %d", len(leaders))
	}
	if leaders[0].LeaderID != 102 {
		t.Errorf("expected leader 102, got %d", leaders[0].LeaderID)
	}
	if leaders[0].LeaderName != "Test Student" {
		t.Errorf("expected leader name joined in, got %q", leaders[0].LeaderName)
	}
}

func TestSetSectionLeaderInvalidSection(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 101, model.SectionBrass)

	err := SetSectionLeader(ctx, database, "STRINGS", 101)
	if !errors.Is(err, ErrInvalidSection) {
		t.Fatalf("expected ErrInvalidSection, got %v", err)
	}
}

func TestSetSectionLeaderUnknownStudent(t *testing.T) {
	database := db.NewTestDB(t)

	err := SetSectionLeader(context.Background(), database, model.SectionBrass, 999)
	if !errors.Is(err, ErrUnknownStudent) {
		t.Fatalf("expected ErrUnknownStudent, got %v", err)
	}
}

func TestListSectionLeadersOrdered(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	register(t, database, 1, model.SectionWoodwind)
	register(t, database, 2, model.SectionBrass)

	SetSectionLeader(ctx, database, model.SectionWoodwind, 1)
	SetSectionLeader(ctx, database, model.SectionBrass, 2)

	leaders, err := ListSectionLeaders(ctx, database)
	if err != nil {
		t.Fatalf("ListSectionLeaders: %v", err)
	}
	if len(leaders) != 2 {
		t.Fatalf("expected 2 leaders, got %d", len(leaders))
	}
	if leaders[0].Section != model.SectionBrass || leaders[1].Section != model.SectionWoodwind {
		t.Errorf("expected sections ordered, got %q then %q", leaders[0].Section, leaders[1].Section)
	}
}
