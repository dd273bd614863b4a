package player

import "fmt"

// Position represents football position categories used for draft slots
// and scoring rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

const (
	MinStars     = 1
	MaxStars     = 5
	DefaultStars = 3
)

// Player is a draftable athlete in the platform's player directory.
// Stars is a 1-5 quality rating that biases draft-selection probability.
// TotalPoints accumulates across scored rounds.
type Player struct {
	ID          string
	TeamID      string
	Name        string
	Position    Position
	Stars       int
	TotalPoints int
	ImageURL    string
	PlayerRefID int64
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Stars < MinStars || p.Stars > MaxStars {
		return fmt.Errorf("player stars must be between %d and %d: %d", MinStars, MaxStars, p.Stars)
	}

	return nil
}

// EffectiveStars normalizes an unset or out-of-range rating to the default.
func (p Player) EffectiveStars() int {
	if p.Stars < MinStars || p.Stars > MaxStars {
		return DefaultStars
	}
	return p.Stars
}
