package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-draft/internal/domain/round"
)

type RoundRepository struct {
	mu     sync.RWMutex
	rounds map[string]round.Round
}

func NewRoundRepository(rounds []round.Round) *RoundRepository {
	byID := make(map[string]round.Round, len(rounds))
	for _, r := range rounds {
		byID[r.ID] = r
	}
	return &RoundRepository{rounds: byID}
}

func (r *RoundRepository) GetCurrent(_ context.Context) (round.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.rounds {
		if item.IsCurrent {
			return item, true, nil
		}
	}
	return round.Round{}, false, nil
}

func (r *RoundRepository) GetByName(_ context.Context, name string) (round.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.rounds {
		if item.Name == name {
			return item, true, nil
		}
	}
	return round.Round{}, false, nil
}

func (r *RoundRepository) GetByID(_ context.Context, id string) (round.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.rounds[id]
	return item, ok, nil
}

// Upsert replaces by id. A newly current round demotes any other round
// still flagged current, matching the single-current invariant the
// postgres repository enforces with a partial index.
func (r *RoundRepository) Upsert(_ context.Context, item round.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.IsCurrent {
		for id, existing := range r.rounds {
			if existing.IsCurrent && id != item.ID {
				existing.IsCurrent = false
				r.rounds[id] = existing
			}
		}
	}
	r.rounds[item.ID] = item
	return nil
}
