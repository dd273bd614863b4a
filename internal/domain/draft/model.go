package draft

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
)

// CandidatesPerSlot is the number of alternatives offered for every slot.
const CandidatesPerSlot = 4

var (
	ErrSquadExists      = errors.New("draft squad already exists")
	ErrSquadFinalized   = errors.New("draft squad already finalized")
	ErrMissingSelection = errors.New("missing slot selection")
	ErrDuplicatePlayer  = errors.New("duplicate player in draft squad")
)

// CandidateSlot offers exactly four candidate players for one position
// instance. ChosenIndex is nil until the user picks one of them.
type CandidateSlot struct {
	Position     player.Position `json:"position"`
	CandidateIDs [CandidatesPerSlot]string `json:"candidate_ids"`
	ChosenIndex  *int `json:"chosen_index,omitempty"`
}

func (s CandidateSlot) Validate() error {
	if _, ok := player.AllPositions[s.Position]; !ok {
		return fmt.Errorf("invalid slot position: %s", s.Position)
	}
	for i, id := range s.CandidateIDs {
		if id == "" {
			return fmt.Errorf("slot candidate %d is empty", i)
		}
	}
	if s.ChosenIndex != nil && (*s.ChosenIndex < 0 || *s.ChosenIndex >= CandidatesPerSlot) {
		return fmt.Errorf("chosen index out of range: %d", *s.ChosenIndex)
	}
	return nil
}

// ChosenID resolves the picked candidate, reporting false when the slot is
// still undecided.
func (s CandidateSlot) ChosenID() (string, bool) {
	if s.ChosenIndex == nil {
		return "", false
	}
	idx := *s.ChosenIndex
	if idx < 0 || idx >= CandidatesPerSlot {
		return "", false
	}
	return s.CandidateIDs[idx], true
}

// Squad is a drafted squad for one (user, league, round). It starts as a
// temporary squad and becomes immutable once Finalized is set.
type Squad struct {
	ID        string
	UserID    string
	LeagueID  string
	RoundID   string
	Formation string
	Slots     []CandidateSlot
	Finalized bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RosterLink ties a finalized squad to one chosen player.
type RosterLink struct {
	SquadID  string
	PlayerID string
}

func (s Squad) ValidateBasic() error {
	if s.ID == "" {
		return fmt.Errorf("squad id is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if s.RoundID == "" {
		return fmt.Errorf("round id is required")
	}
	formation, err := FormationByName(s.Formation)
	if err != nil {
		return err
	}
	return ValidateSlots(formation, s.Slots)
}

// ValidateSlots checks that slots match the formation's shape and that no
// player id appears twice across all candidates of all slots.
func ValidateSlots(formation Formation, slots []CandidateSlot) error {
	expected := formation.SlotPositions()
	if len(slots) != len(expected) {
		return fmt.Errorf("expected %d slots for formation %s, got %d", len(expected), formation.Name, len(slots))
	}

	seen := make(map[string]struct{}, len(slots)*CandidatesPerSlot)
	for i, slot := range slots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		if slot.Position != expected[i] {
			return fmt.Errorf("slot %d: expected position %s, got %s", i, expected[i], slot.Position)
		}
		for _, id := range slot.CandidateIDs {
			if _, exists := seen[id]; exists {
				return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}

// ChosenPlayerIDs resolves every slot's pick in slot order. It fails with
// ErrMissingSelection naming the first undecided slot.
func (s Squad) ChosenPlayerIDs() ([]string, error) {
	out := make([]string, 0, len(s.Slots))
	for i, slot := range s.Slots {
		id, ok := slot.ChosenID()
		if !ok {
			return nil, fmt.Errorf("%w: slot %d (%s)", ErrMissingSelection, i, slot.Position)
		}
		out = append(out, id)
	}
	return out, nil
}
