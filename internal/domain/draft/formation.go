package draft

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
)

// Formation is a named preset defining how many draft slots exist per
// outfield position. The goalkeeper slot count is always one.
type Formation struct {
	Name        string
	Defenders   int
	Midfielders int
	Forwards    int
}

var formationsByName = map[string]Formation{
	"4-3-3": {Name: "4-3-3", Defenders: 4, Midfielders: 3, Forwards: 3},
	"4-4-2": {Name: "4-4-2", Defenders: 4, Midfielders: 4, Forwards: 2},
	"3-4-3": {Name: "3-4-3", Defenders: 3, Midfielders: 4, Forwards: 3},
}

var ErrUnsupportedFormation = fmt.Errorf("unsupported formation")

func FormationByName(name string) (Formation, error) {
	f, ok := formationsByName[strings.TrimSpace(name)]
	if !ok {
		return Formation{}, fmt.Errorf("%w: %s", ErrUnsupportedFormation, name)
	}
	return f, nil
}

func SupportedFormations() []string {
	return []string{"3-4-3", "4-3-3", "4-4-2"}
}

// SlotCount is the total number of candidate slots for the formation,
// including the goalkeeper slot.
func (f Formation) SlotCount() int {
	return f.Defenders + f.Midfielders + f.Forwards + 1
}

// SlotPositions returns the slot positions in draw order: forwards first,
// then midfielders, then defenders, with the goalkeeper slot last.
func (f Formation) SlotPositions() []player.Position {
	out := make([]player.Position, 0, f.SlotCount())
	for i := 0; i < f.Forwards; i++ {
		out = append(out, player.PositionForward)
	}
	for i := 0; i < f.Midfielders; i++ {
		out = append(out, player.PositionMidfielder)
	}
	for i := 0; i < f.Defenders; i++ {
		out = append(out, player.PositionDefender)
	}
	out = append(out, player.PositionGoalkeeper)
	return out
}
