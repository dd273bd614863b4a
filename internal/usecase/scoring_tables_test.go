package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
)

func TestStatDelta(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		stat     StatType
		position player.Position
		value    float64
		want     int
	}{
		{name: "forwards punished for no shots on target", stat: StatTypeShotsOnTarget, position: player.PositionForward, value: 0, want: -1},
		{name: "forwards still punished below first reward tier", stat: StatTypeShotsOnTarget, position: player.PositionForward, value: 2, want: -1},
		{name: "forwards rewarded at three on target", stat: StatTypeShotsOnTarget, position: player.PositionForward, value: 3, want: 1},
		{name: "forwards top tier", stat: StatTypeShotsOnTarget, position: player.PositionForward, value: 10, want: 3},
		{name: "midfielders neutral below threshold", stat: StatTypeShotsOnTarget, position: player.PositionMidfielder, value: 3, want: 0},
		{name: "midfielders rewarded at four", stat: StatTypeShotsOnTarget, position: player.PositionMidfielder, value: 4, want: 1},
		{name: "midfielders second tier", stat: StatTypeShotsOnTarget, position: player.PositionMidfielder, value: 7, want: 2},

		{name: "midfielders punished for poor passing", stat: StatTypePassAccuracy, position: player.PositionMidfielder, value: 45, want: -2},
		{name: "midfielders top passing tier", stat: StatTypePassAccuracy, position: player.PositionMidfielder, value: 91, want: 3},
		{name: "defenders neutral below passing floor", stat: StatTypePassAccuracy, position: player.PositionDefender, value: 60, want: 0},
		{name: "defenders rewarded at seventy percent", stat: StatTypePassAccuracy, position: player.PositionDefender, value: 70, want: 1},
		{name: "forwards need eighty percent", stat: StatTypePassAccuracy, position: player.PositionForward, value: 79, want: 0},
		{name: "forwards rewarded at eighty percent", stat: StatTypePassAccuracy, position: player.PositionForward, value: 80, want: 1},

		{name: "keeper saves below tier", stat: StatTypeSaves, position: player.PositionGoalkeeper, value: 2, want: 0},
		{name: "keeper saves first tier", stat: StatTypeSaves, position: player.PositionGoalkeeper, value: 3, want: 1},
		{name: "keeper saves top tier", stat: StatTypeSaves, position: player.PositionGoalkeeper, value: 9, want: 3},
		{name: "saves mean nothing to defenders", stat: StatTypeSaves, position: player.PositionDefender, value: 9, want: 0},

		{name: "defender blocks first tier", stat: StatTypeShotsBlocked, position: player.PositionDefender, value: 2, want: 1},
		{name: "defender blocks second tier", stat: StatTypeShotsBlocked, position: player.PositionDefender, value: 5, want: 2},
		{name: "keeper blocks capped at one", stat: StatTypeShotsBlocked, position: player.PositionGoalkeeper, value: 6, want: 1},

		{name: "offsides below threshold", stat: StatTypeOffsides, position: player.PositionForward, value: 2, want: 0},
		{name: "offsides first penalty", stat: StatTypeOffsides, position: player.PositionForward, value: 3, want: -1},
		{name: "offsides heavier penalty", stat: StatTypeOffsides, position: player.PositionForward, value: 6, want: -2},
		{name: "offsides ignored for midfielders", stat: StatTypeOffsides, position: player.PositionMidfielder, value: 6, want: 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, statDelta(tc.stat, tc.position, tc.value))
		})
	}
}
