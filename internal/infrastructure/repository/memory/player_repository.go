package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	byID  map[string]player.Player
	order []string
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	byID := make(map[string]player.Player, len(players))
	order := make([]string, 0, len(players))
	for _, p := range players {
		if _, ok := byID[p.ID]; !ok {
			order = append(order, p.ID)
		}
		byID[p.ID] = p
	}

	return &PlayerRepository{byID: byID, order: order}
}

func (r *PlayerRepository) ListAll(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *PlayerRepository) ListByPosition(_ context.Context, position player.Position) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.order))
	for _, id := range r.order {
		p := r.byID[id]
		if p.Position != position {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := r.byID[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PlayerRepository) AddTotalPoints(_ context.Context, pointsByPlayerID map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(pointsByPlayerID))
	for id := range pointsByPlayerID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p, ok := r.byID[id]
		if !ok {
			continue
		}
		p.TotalPoints += pointsByPlayerID[id]
		r.byID[id] = p
	}
	return nil
}
