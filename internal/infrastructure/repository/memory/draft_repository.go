package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-draft/internal/domain/draft"
)

type DraftRepository struct {
	mu      sync.RWMutex
	squads  map[string]draft.Squad
	byOwner map[string]string
	rosters map[string]map[string]struct{}
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{
		squads:  make(map[string]draft.Squad),
		byOwner: make(map[string]string),
		rosters: make(map[string]map[string]struct{}),
	}
}

func ownerKey(userID, leagueID, roundID string) string {
	return userID + "|" + leagueID + "|" + roundID
}

func cloneSquad(squad draft.Squad) draft.Squad {
	out := squad
	out.Slots = make([]draft.CandidateSlot, len(squad.Slots))
	copy(out.Slots, squad.Slots)
	for i, slot := range squad.Slots {
		if slot.ChosenIndex != nil {
			chosen := *slot.ChosenIndex
			out.Slots[i].ChosenIndex = &chosen
		}
	}
	return out
}

func (r *DraftRepository) Insert(_ context.Context, squad draft.Squad) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ownerKey(squad.UserID, squad.LeagueID, squad.RoundID)
	if _, ok := r.byOwner[key]; ok {
		return fmt.Errorf("%w: user=%s league=%s round=%s", draft.ErrSquadExists, squad.UserID, squad.LeagueID, squad.RoundID)
	}

	r.squads[squad.ID] = cloneSquad(squad)
	r.byOwner[key] = squad.ID
	return nil
}

func (r *DraftRepository) GetByID(_ context.Context, squadID string) (draft.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	squad, ok := r.squads[squadID]
	if !ok {
		return draft.Squad{}, false, nil
	}
	return cloneSquad(squad), true, nil
}

func (r *DraftRepository) GetByOwner(_ context.Context, userID, leagueID, roundID string) (draft.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	squadID, ok := r.byOwner[ownerKey(userID, leagueID, roundID)]
	if !ok {
		return draft.Squad{}, false, nil
	}
	return cloneSquad(r.squads[squadID]), true, nil
}

func (r *DraftRepository) UpdateSlots(_ context.Context, squadID string, slots []draft.CandidateSlot, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	squad, ok := r.squads[squadID]
	if !ok {
		return fmt.Errorf("draft squad not found: %s", squadID)
	}

	squad.Slots = slots
	squad.UpdatedAt = updatedAt
	r.squads[squadID] = cloneSquad(squad)
	return nil
}

// Finalize persists the squad and its roster links under one lock, the
// in-memory equivalent of the postgres transaction. Roster insertion is
// idempotent on (squad, player).
func (r *DraftRepository) Finalize(_ context.Context, squad draft.Squad, links []draft.RosterLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.squads[squad.ID]; !ok {
		return fmt.Errorf("draft squad not found: %s", squad.ID)
	}

	roster, ok := r.rosters[squad.ID]
	if !ok {
		roster = make(map[string]struct{}, len(links))
		r.rosters[squad.ID] = roster
	}
	for _, link := range links {
		roster[link.PlayerID] = struct{}{}
	}

	r.squads[squad.ID] = cloneSquad(squad)
	return nil
}

func (r *DraftRepository) GetFinalizedByOwner(_ context.Context, userID, leagueID, roundID string) (draft.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	squadID, ok := r.byOwner[ownerKey(userID, leagueID, roundID)]
	if !ok {
		return draft.Squad{}, false, nil
	}
	squad := r.squads[squadID]
	if !squad.Finalized {
		return draft.Squad{}, false, nil
	}
	return cloneSquad(squad), true, nil
}

func (r *DraftRepository) ListRoster(_ context.Context, squadID string) ([]draft.RosterLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roster := r.rosters[squadID]
	out := make([]draft.RosterLink, 0, len(roster))
	for playerID := range roster {
		out = append(out, draft.RosterLink{SquadID: squadID, PlayerID: playerID})
	}
	return out, nil
}
