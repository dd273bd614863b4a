package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-draft/internal/domain/scoring"
)

type ScoringRepository struct {
	mu     sync.RWMutex
	points map[string]map[string]scoring.RoundPoints
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{
		points: make(map[string]map[string]scoring.RoundPoints),
	}
}

func (r *ScoringRepository) UpsertRoundPoints(_ context.Context, items []scoring.RoundPoints) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		byPlayer, ok := r.points[item.RoundID]
		if !ok {
			byPlayer = make(map[string]scoring.RoundPoints)
			r.points[item.RoundID] = byPlayer
		}
		byPlayer[item.PlayerID] = item
	}
	return nil
}

func (r *ScoringRepository) ListByRound(_ context.Context, roundID string) ([]scoring.RoundPoints, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byPlayer := r.points[roundID]
	out := make([]scoring.RoundPoints, 0, len(byPlayer))
	for _, item := range byPlayer {
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}
