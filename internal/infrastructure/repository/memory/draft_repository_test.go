package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-draft/internal/domain/draft"
	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
)

func testSquad(id string) draft.Squad {
	slot := draft.CandidateSlot{Position: player.PositionGoalkeeper}
	slot.CandidateIDs = [draft.CandidatesPerSlot]string{"gk-01", "gk-02", "gk-03", "gk-04"}

	return draft.Squad{
		ID:        id,
		UserID:    "user-1",
		LeagueID:  "league-1",
		RoundID:   "round-01",
		Formation: "4-3-3",
		Slots:     []draft.CandidateSlot{slot},
	}
}

func TestDraftRepository_Insert_DuplicateOwner(t *testing.T) {
	t.Parallel()

	repo := NewDraftRepository()
	ctx := context.Background()

	if err := repo.Insert(ctx, testSquad("squad-1")); err != nil {
		t.Fatalf("first insert error: %v", err)
	}
	if err := repo.Insert(ctx, testSquad("squad-2")); !errors.Is(err, draft.ErrSquadExists) {
		t.Fatalf("expected ErrSquadExists for same owner, got %v", err)
	}

	other := testSquad("squad-3")
	other.RoundID = "round-02"
	if err := repo.Insert(ctx, other); err != nil {
		t.Fatalf("insert for another round error: %v", err)
	}
}

func TestDraftRepository_ClonesOnRead(t *testing.T) {
	t.Parallel()

	repo := NewDraftRepository()
	ctx := context.Background()

	if err := repo.Insert(ctx, testSquad("squad-1")); err != nil {
		t.Fatalf("insert error: %v", err)
	}

	first, _, err := repo.GetByID(ctx, "squad-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	chosen := 2
	first.Slots[0].ChosenIndex = &chosen
	first.Slots[0].CandidateIDs[0] = "tampered"

	second, _, err := repo.GetByID(ctx, "squad-1")
	if err != nil {
		t.Fatalf("second GetByID error: %v", err)
	}
	if second.Slots[0].ChosenIndex != nil {
		t.Fatal("mutating a returned squad leaked into the store")
	}
	if second.Slots[0].CandidateIDs[0] != "gk-01" {
		t.Fatal("mutating returned candidate ids leaked into the store")
	}
}

func TestDraftRepository_FinalizeIdempotent(t *testing.T) {
	t.Parallel()

	repo := NewDraftRepository()
	ctx := context.Background()

	squad := testSquad("squad-1")
	if err := repo.Insert(ctx, squad); err != nil {
		t.Fatalf("insert error: %v", err)
	}

	if _, exists, err := repo.GetFinalizedByOwner(ctx, "user-1", "league-1", "round-01"); err != nil || exists {
		t.Fatalf("squad must not be finalized yet: exists=%t err=%v", exists, err)
	}

	links := []draft.RosterLink{{SquadID: "squad-1", PlayerID: "gk-01"}}
	squad.Finalized = true
	squad.UpdatedAt = time.Now().UTC()

	if err := repo.Finalize(ctx, squad, links); err != nil {
		t.Fatalf("finalize error: %v", err)
	}
	if err := repo.Finalize(ctx, squad, links); err != nil {
		t.Fatalf("repeated finalize error: %v", err)
	}

	roster, err := repo.ListRoster(ctx, "squad-1")
	if err != nil {
		t.Fatalf("ListRoster error: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("roster size %d, want 1", len(roster))
	}

	stored, exists, err := repo.GetFinalizedByOwner(ctx, "user-1", "league-1", "round-01")
	if err != nil || !exists {
		t.Fatalf("finalized lookup failed: exists=%t err=%v", exists, err)
	}
	if !stored.Finalized {
		t.Fatal("stored squad lost its finalized flag")
	}
}
