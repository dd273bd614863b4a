package usecase

import (
	"context"
	"time"
)

// EventType is a normalized fixture event kind. Provider-specific numeric
// codes are mapped into this closed set by the provider client; unknown
// codes never reach the scoring engine.
type EventType string

const (
	EventTypeGoal          EventType = "goal"
	EventTypeSubstitution  EventType = "substitution"
	EventTypeYellowCard    EventType = "yellowcard"
	EventTypeRedCard       EventType = "redcard"
	EventTypePenaltyScored EventType = "penalty"
)

// StatType is a normalized team-level statistic kind.
type StatType string

const (
	StatTypeShotsOnTarget StatType = "shots_on_target"
	StatTypePassAccuracy  StatType = "pass_accuracy"
	StatTypeSaves         StatType = "saves"
	StatTypeShotsBlocked  StatType = "shots_blocked"
	StatTypeOffsides      StatType = "offsides"
)

// ExternalRoundFixtures is the provider's fixture list for one round.
type ExternalRoundFixtures struct {
	ProviderRoundID int64
	Matchday        int
	FixtureIDs      []int64
}

// ExternalLineupEntry is one player in a fixture lineup. IsStarter
// distinguishes the starting eleven from the bench.
type ExternalLineupEntry struct {
	PlayerRefID int64
	PlayerName  string
	TeamRefID   int64
	Position    string
	IsStarter   bool
}

// ExternalFixtureEvent is one normalized fixture event. PlayerRefID may be
// zero when the provider only carries a display name.
type ExternalFixtureEvent struct {
	Type              EventType
	PlayerRefID       int64
	PlayerName        string
	RelatedPlayerRef  int64
	RelatedPlayerName string
	TeamRefID         int64
	Minute            int
}

// ExternalFixtureStatistic is one team-level statistic record.
type ExternalFixtureStatistic struct {
	Type      StatType
	TeamRefID int64
	Value     float64
}

// ExternalRound is one competition round as the provider reports it.
type ExternalRound struct {
	ProviderRoundID int64
	Name            string
	Number          int
	StartsAt        time.Time
	EndsAt          time.Time
	IsCurrent       bool
}

// MatchDataProvider is the remote football-data boundary the scoring
// engine consumes. Implementations perform no business logic.
type MatchDataProvider interface {
	FixturesForRound(ctx context.Context, providerRoundID int64) (ExternalRoundFixtures, error)
	Lineups(ctx context.Context, fixtureID int64) ([]ExternalLineupEntry, error)
	Events(ctx context.Context, fixtureID int64) ([]ExternalFixtureEvent, error)
	Statistics(ctx context.Context, fixtureID int64) ([]ExternalFixtureStatistic, error)
}

// RoundDataProvider lists the competition calendar for round sync.
type RoundDataProvider interface {
	Rounds(ctx context.Context) ([]ExternalRound, error)
}
