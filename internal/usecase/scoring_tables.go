package usecase

import "github.com/riskibarqy/fantasy-draft/internal/domain/player"

// statTier is one step of a tiered statistic rule. Tiers are kept in
// strictly ascending threshold order; the highest tier whose threshold the
// value reaches wins. Values below the lowest tier contribute zero unless
// a negative tier covers them.
type statTier struct {
	Threshold float64
	Delta     int
}

type statTierKey struct {
	Stat     StatType
	Position player.Position
}

// statTierTables is the whole tiered statistic policy as data. A
// (statistic, position) pair with no entry contributes nothing, which is
// how position gating works.
var statTierTables = map[statTierKey][]statTier{
	// Shot volume rewards forwards more than midfielders; a forward line
	// producing almost nothing on target is penalized.
	{StatTypeShotsOnTarget, player.PositionForward}: {
		{Threshold: 0, Delta: -1},
		{Threshold: 3, Delta: 1},
		{Threshold: 5, Delta: 2},
		{Threshold: 8, Delta: 3},
	},
	{StatTypeShotsOnTarget, player.PositionMidfielder}: {
		{Threshold: 4, Delta: 1},
		{Threshold: 7, Delta: 2},
	},

	// Pass accuracy rewards midfielders most steeply and penalizes a team
	// passing below the floor.
	{StatTypePassAccuracy, player.PositionMidfielder}: {
		{Threshold: 0, Delta: -2},
		{Threshold: 60, Delta: 1},
		{Threshold: 75, Delta: 2},
		{Threshold: 85, Delta: 3},
	},
	{StatTypePassAccuracy, player.PositionDefender}: {
		{Threshold: 70, Delta: 1},
		{Threshold: 85, Delta: 2},
	},
	{StatTypePassAccuracy, player.PositionForward}: {
		{Threshold: 80, Delta: 1},
	},

	{StatTypeSaves, player.PositionGoalkeeper}: {
		{Threshold: 3, Delta: 1},
		{Threshold: 5, Delta: 2},
		{Threshold: 8, Delta: 3},
	},

	{StatTypeShotsBlocked, player.PositionDefender}: {
		{Threshold: 2, Delta: 1},
		{Threshold: 4, Delta: 2},
	},
	{StatTypeShotsBlocked, player.PositionGoalkeeper}: {
		{Threshold: 2, Delta: 1},
	},

	// Offsides only ever penalize, and only forwards.
	{StatTypeOffsides, player.PositionForward}: {
		{Threshold: 3, Delta: -1},
		{Threshold: 5, Delta: -2},
	},
}

// statDelta evaluates one statistic record against one position.
func statDelta(stat StatType, position player.Position, value float64) int {
	tiers, ok := statTierTables[statTierKey{Stat: stat, Position: position}]
	if !ok {
		return 0
	}

	delta := 0
	matched := false
	for _, tier := range tiers {
		if value < tier.Threshold {
			break
		}
		delta = tier.Delta
		matched = true
	}
	if !matched {
		return 0
	}
	return delta
}
