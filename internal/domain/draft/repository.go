package draft

import (
	"context"
	"time"
)

// Repository describes draft squad persistence needs from use cases.
//
// Insert must rely on a storage-level uniqueness constraint over
// (user_id, league_id, round_id) and return ErrSquadExists on a duplicate,
// closing the check-then-act race between concurrent creates.
// Finalize must atomically persist the roster links (idempotently on
// (squad_id, player_id)) and the finalized flag.
type Repository interface {
	Insert(ctx context.Context, squad Squad) error
	GetByID(ctx context.Context, squadID string) (Squad, bool, error)
	GetByOwner(ctx context.Context, userID, leagueID, roundID string) (Squad, bool, error)
	UpdateSlots(ctx context.Context, squadID string, slots []CandidateSlot, updatedAt time.Time) error
	Finalize(ctx context.Context, squad Squad, links []RosterLink) error
	GetFinalizedByOwner(ctx context.Context, userID, leagueID, roundID string) (Squad, bool, error)
	ListRoster(ctx context.Context, squadID string) ([]RosterLink, error)
}
