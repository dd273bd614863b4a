package draft

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
)

var ErrInsufficientCandidates = errors.New("insufficient candidates")

// CandidateWeight maps a star rating onto a draw weight. The distribution
// concentrates probability on average players: extreme ratings (1 and 5)
// remain drawable but rare.
func CandidateWeight(stars int) float64 {
	switch stars {
	case player.MinStars, player.MaxStars:
		return 1
	case 2, 4:
		return 3
	default:
		return 4
	}
}

// Selector draws players from a pool using star-weighted sampling without
// replacement. The random source is injectable so draws can be replayed in
// tests.
type Selector struct {
	rand *rand.Rand
}

func NewSelector(src rand.Source) *Selector {
	return &Selector{rand: rand.New(src)}
}

// Pick draws count distinct players from pool. Each draw sums the weights
// of the remaining candidates, draws a uniform cursor in [0, total) and
// scans linearly subtracting weights until the cursor goes non-positive.
// If floating-point residue leaves the cursor positive after the scan, the
// last remaining candidate is taken, so a sufficiently large pool never
// fails mid-draw.
func (s *Selector) Pick(pool []player.Player, count int) ([]player.Player, error) {
	if count <= 0 {
		return nil, fmt.Errorf("pick count must be greater than zero: %d", count)
	}
	if len(pool) < count {
		return nil, fmt.Errorf("%w: need %d, pool has %d", ErrInsufficientCandidates, count, len(pool))
	}

	remaining := append([]player.Player(nil), pool...)
	out := make([]player.Player, 0, count)

	for draw := 0; draw < count; draw++ {
		total := 0.0
		for _, candidate := range remaining {
			total += CandidateWeight(candidate.EffectiveStars())
		}

		cursor := s.rand.Float64() * total
		picked := len(remaining) - 1
		for i, candidate := range remaining {
			cursor -= CandidateWeight(candidate.EffectiveStars())
			if cursor <= 0 {
				picked = i
				break
			}
		}

		out = append(out, remaining[picked])
		remaining = append(remaining[:picked], remaining[picked+1:]...)
	}

	return out, nil
}
