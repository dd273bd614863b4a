package scoring

import (
	"fmt"
	"time"
)

// RoundPoints is the derived per-(round, player) point total. Rows are
// upsertable so a round can be recomputed from the same inputs.
type RoundPoints struct {
	RoundID      string
	PlayerID     string
	Points       int
	CalculatedAt time.Time
}

func (p RoundPoints) Validate() error {
	if p.RoundID == "" {
		return fmt.Errorf("round id is required")
	}
	if p.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}
	return nil
}

// PlayerPoints is one row of a fixture or round scoring result.
type PlayerPoints struct {
	PlayerID string
	Points   int
}
