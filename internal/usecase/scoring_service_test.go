package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
	"github.com/riskibarqy/fantasy-draft/internal/domain/round"
	"github.com/riskibarqy/fantasy-draft/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-draft/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-draft/internal/platform/cache"
	"github.com/riskibarqy/fantasy-draft/internal/platform/logging"
)

const (
	homeTeamRef int64 = 100
	awayTeamRef int64 = 200
)

type fakeMatchProvider struct {
	fixtures    ExternalRoundFixtures
	fixturesErr error

	lineups    map[int64][]ExternalLineupEntry
	events     map[int64][]ExternalFixtureEvent
	statistics map[int64][]ExternalFixtureStatistic

	eventsErr map[int64]error
}

func (p *fakeMatchProvider) FixturesForRound(_ context.Context, _ int64) (ExternalRoundFixtures, error) {
	if p.fixturesErr != nil {
		return ExternalRoundFixtures{}, p.fixturesErr
	}
	return p.fixtures, nil
}

func (p *fakeMatchProvider) Lineups(_ context.Context, fixtureID int64) ([]ExternalLineupEntry, error) {
	return p.lineups[fixtureID], nil
}

func (p *fakeMatchProvider) Events(_ context.Context, fixtureID int64) ([]ExternalFixtureEvent, error) {
	if err := p.eventsErr[fixtureID]; err != nil {
		return nil, err
	}
	return p.events[fixtureID], nil
}

func (p *fakeMatchProvider) Statistics(_ context.Context, fixtureID int64) ([]ExternalFixtureStatistic, error) {
	return p.statistics[fixtureID], nil
}

func scoringDirectory() []player.Player {
	return []player.Player{
		{ID: "p-striker", TeamID: "t-home", Name: "Teo Valiente", Position: player.PositionForward, Stars: 4, PlayerRefID: 11},
		{ID: "p-sub", TeamID: "t-home", Name: "Dani Reyes", Position: player.PositionMidfielder, Stars: 3, PlayerRefID: 12},
		{ID: "p-stopper", TeamID: "t-home", Name: "Hugo Baena", Position: player.PositionDefender, Stars: 3, PlayerRefID: 13},
		{ID: "p-nameonly", TeamID: "t-away", Name: "Nino Costa", Position: player.PositionForward, Stars: 2, PlayerRefID: 0},
		{ID: "p-idle", TeamID: "t-away", Name: "Marco Paredes", Position: player.PositionGoalkeeper, Stars: 3, PlayerRefID: 14},
	}
}

func scoringTestRounds() []round.Round {
	return []round.Round{{
		ID:              "round-01",
		ProviderRoundID: 501,
		Name:            "Jornada 1",
		Number:          1,
		StartsAt:        time.Date(2026, 8, 21, 19, 0, 0, 0, time.UTC),
		EndsAt:          time.Date(2026, 8, 23, 23, 0, 0, 0, time.UTC),
		IsCurrent:       true,
	}}
}

func newScoringServiceForTest(t *testing.T, provider MatchDataProvider) (*ScoringService, *memory.PlayerRepository, *memory.ScoringRepository) {
	t.Helper()

	playerRepo := memory.NewPlayerRepository(scoringDirectory())
	roundRepo := memory.NewRoundRepository(scoringTestRounds())
	scoringRepo := memory.NewScoringRepository()

	service := NewScoringService(provider, playerRepo, roundRepo, scoringRepo, cache.NewStore(time.Minute), logging.NewNop())
	service.now = func() time.Time { return time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC) }

	return service, playerRepo, scoringRepo
}

func pointsByPlayer(rows []scoring.PlayerPoints) map[string]int {
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = row.Points
	}
	return out
}

func TestScoringService_ScoreFixture_EventsAndBackfill(t *testing.T) {
	t.Parallel()

	provider := &fakeMatchProvider{
		lineups: map[int64][]ExternalLineupEntry{
			9001: {
				{PlayerRefID: 11, PlayerName: "Teo Valiente", TeamRefID: homeTeamRef, Position: "FWD", IsStarter: true},
				{PlayerRefID: 12, PlayerName: "Dani Reyes", TeamRefID: homeTeamRef, Position: "MID", IsStarter: false},
				{PlayerRefID: 13, PlayerName: "Hugo Baena", TeamRefID: homeTeamRef, Position: "DEF", IsStarter: true},
				{PlayerRefID: 0, PlayerName: "Nino Costa", TeamRefID: awayTeamRef, Position: "FWD", IsStarter: true},
			},
		},
		events: map[int64][]ExternalFixtureEvent{
			9001: {
				{Type: EventTypeSubstitution, PlayerRefID: 12, PlayerName: "Dani Reyes", TeamRefID: homeTeamRef, Minute: 60},
				{Type: EventTypeGoal, PlayerRefID: 11, PlayerName: "Teo Valiente", RelatedPlayerRef: 12, RelatedPlayerName: "Dani Reyes", TeamRefID: homeTeamRef, Minute: 71},
				{Type: EventTypeYellowCard, PlayerRefID: 13, PlayerName: "Hugo Baena", TeamRefID: homeTeamRef, Minute: 80},
				{Type: EventTypePenaltyScored, PlayerRefID: 0, PlayerName: "Nino Costa", TeamRefID: awayTeamRef, Minute: 88},
				{Type: EventTypeRedCard, PlayerRefID: 0, PlayerName: "Nino Costa", TeamRefID: awayTeamRef, Minute: 90},
			},
		},
	}

	service, _, _ := newScoringServiceForTest(t, provider)

	rows, err := service.ScoreFixture(context.Background(), 9001)
	if err != nil {
		t.Fatalf("ScoreFixture error: %v", err)
	}
	if len(rows) != len(scoringDirectory()) {
		t.Fatalf("expected a row per directory player, got %d", len(rows))
	}

	got := pointsByPlayer(rows)

	// Starter appearance 3 + goal 4.
	if got["p-striker"] != 7 {
		t.Fatalf("striker scored %d, want 7", got["p-striker"])
	}
	// Substitute: no appearance bonus, assist 3.
	if got["p-sub"] != 3 {
		t.Fatalf("substitute scored %d, want 3", got["p-sub"])
	}
	// Starter appearance 3, yellow card -1.
	if got["p-stopper"] != 2 {
		t.Fatalf("defender scored %d, want 2", got["p-stopper"])
	}
	// Matched by normalized name: appearance 3, penalty 4, red card -3.
	if got["p-nameonly"] != 4 {
		t.Fatalf("name-matched player scored %d, want 4", got["p-nameonly"])
	}
	// Absent from the fixture entirely.
	if got["p-idle"] != 0 {
		t.Fatalf("idle player scored %d, want 0", got["p-idle"])
	}
}

func TestScoringService_ScoreFixture_TeamStatistics(t *testing.T) {
	t.Parallel()

	provider := &fakeMatchProvider{
		lineups: map[int64][]ExternalLineupEntry{
			9002: {
				{PlayerRefID: 11, PlayerName: "Teo Valiente", TeamRefID: homeTeamRef, Position: "FWD", IsStarter: true},
				{PlayerRefID: 13, PlayerName: "Hugo Baena", TeamRefID: homeTeamRef, Position: "DEF", IsStarter: true},
				{PlayerRefID: 14, PlayerName: "Marco Paredes", TeamRefID: awayTeamRef, Position: "GK", IsStarter: true},
			},
		},
		statistics: map[int64][]ExternalFixtureStatistic{
			9002: {
				{Type: StatTypePassAccuracy, TeamRefID: homeTeamRef, Value: 86},
				{Type: StatTypeShotsBlocked, TeamRefID: homeTeamRef, Value: 4},
				{Type: StatTypeSaves, TeamRefID: awayTeamRef, Value: 6},
			},
		},
	}

	service, _, _ := newScoringServiceForTest(t, provider)

	rows, err := service.ScoreFixture(context.Background(), 9002)
	if err != nil {
		t.Fatalf("ScoreFixture error: %v", err)
	}
	got := pointsByPlayer(rows)

	// Appearance 3 + forward pass accuracy tier 1. Home blocks do not apply
	// to forwards.
	if got["p-striker"] != 4 {
		t.Fatalf("striker scored %d, want 4", got["p-striker"])
	}
	// Appearance 3 + defender pass accuracy tier 2 + defender blocks tier 2.
	if got["p-stopper"] != 7 {
		t.Fatalf("defender scored %d, want 7", got["p-stopper"])
	}
	// Appearance 3 + keeper saves tier 2. Home statistics never leak across
	// teams.
	if got["p-idle"] != 5 {
		t.Fatalf("keeper scored %d, want 5", got["p-idle"])
	}
}

func TestSettleTally(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		tally fixtureTally
		want  int
	}{
		{name: "starter keeps full stat points", tally: fixtureTally{played: true, starter: true, eventPoints: 3, statPoints: 7}, want: 10},
		{name: "substitute stat points halve toward zero", tally: fixtureTally{played: true, statPoints: 7}, want: 3},
		{name: "negative substitute stat points halve toward zero", tally: fixtureTally{played: true, statPoints: -7}, want: -3},
		{name: "substitute event points stay whole", tally: fixtureTally{played: true, eventPoints: 4, statPoints: 2}, want: 5},
		{name: "never played scores zero outright", tally: fixtureTally{played: false, starter: true, eventPoints: 9, statPoints: 9}, want: 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := settleTally(&tc.tally); got != tc.want {
				t.Fatalf("settleTally = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestScoringService_ScoreRound_AggregatesAndPersists(t *testing.T) {
	t.Parallel()

	provider := &fakeMatchProvider{
		fixtures: ExternalRoundFixtures{ProviderRoundID: 501, FixtureIDs: []int64{9001, 9002}},
		lineups: map[int64][]ExternalLineupEntry{
			9001: {{PlayerRefID: 11, PlayerName: "Teo Valiente", TeamRefID: homeTeamRef, Position: "FWD", IsStarter: true}},
			9002: {{PlayerRefID: 11, PlayerName: "Teo Valiente", TeamRefID: homeTeamRef, Position: "FWD", IsStarter: true}},
		},
		events: map[int64][]ExternalFixtureEvent{
			9001: {{Type: EventTypeGoal, PlayerRefID: 11, PlayerName: "Teo Valiente", TeamRefID: homeTeamRef, Minute: 12}},
		},
	}

	service, playerRepo, scoringRepo := newScoringServiceForTest(t, provider)
	ctx := context.Background()

	rows, err := service.ScoreRound(ctx, "Jornada 1")
	if err != nil {
		t.Fatalf("ScoreRound error: %v", err)
	}
	if len(rows) != len(scoringDirectory()) {
		t.Fatalf("expected a row per directory player, got %d", len(rows))
	}

	totals := make(map[string]int, len(rows))
	for _, row := range rows {
		if row.RoundID != "round-01" {
			t.Fatalf("row bound to round %s, want round-01", row.RoundID)
		}
		totals[row.PlayerID] = row.Points
	}

	// Fixture one: appearance 3 + goal 4. Fixture two: appearance 3.
	if totals["p-striker"] != 10 {
		t.Fatalf("striker round total %d, want 10", totals["p-striker"])
	}
	if totals["p-idle"] != 0 {
		t.Fatalf("idle round total %d, want 0", totals["p-idle"])
	}

	// Highest total sorts first.
	if rows[0].PlayerID != "p-striker" {
		t.Fatalf("top row is %s, want p-striker", rows[0].PlayerID)
	}

	stored, err := scoringRepo.ListByRound(ctx, "round-01")
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}
	if len(stored) != len(rows) {
		t.Fatalf("stored %d rows, want %d", len(stored), len(rows))
	}

	players, err := playerRepo.GetByIDs(ctx, []string{"p-striker"})
	if err != nil || len(players) != 1 {
		t.Fatalf("GetByIDs error: %v", err)
	}
	if players[0].TotalPoints != 10 {
		t.Fatalf("career total %d, want 10", players[0].TotalPoints)
	}

	// Re-scoring the same round applies a zero delta, never double-counting.
	if _, err := service.ScoreRound(ctx, "Jornada 1"); err != nil {
		t.Fatalf("second ScoreRound error: %v", err)
	}
	players, err = playerRepo.GetByIDs(ctx, []string{"p-striker"})
	if err != nil || len(players) != 1 {
		t.Fatalf("GetByIDs error after rescore: %v", err)
	}
	if players[0].TotalPoints != 10 {
		t.Fatalf("career total after rescore %d, want 10", players[0].TotalPoints)
	}
}

func TestScoringService_ScoreRound_DiscoveryFailureDegrades(t *testing.T) {
	t.Parallel()

	provider := &fakeMatchProvider{fixturesErr: errors.New("provider down")}
	service, _, _ := newScoringServiceForTest(t, provider)

	rows, err := service.ScoreRound(context.Background(), "Jornada 1")
	if err != nil {
		t.Fatalf("discovery failure must not error the round: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(rows))
	}
}

func TestScoringService_ScoreRound_NoFixtures(t *testing.T) {
	t.Parallel()

	provider := &fakeMatchProvider{fixtures: ExternalRoundFixtures{ProviderRoundID: 501}}
	service, _, _ := newScoringServiceForTest(t, provider)

	rows, err := service.ScoreRound(context.Background(), "")
	if err != nil {
		t.Fatalf("empty round must not error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(rows))
	}
}

func TestScoringService_ScoreRound_FixtureFailureAborts(t *testing.T) {
	t.Parallel()

	provider := &fakeMatchProvider{
		fixtures: ExternalRoundFixtures{ProviderRoundID: 501, FixtureIDs: []int64{9001, 9002}},
		lineups: map[int64][]ExternalLineupEntry{
			9001: {{PlayerRefID: 11, PlayerName: "Teo Valiente", TeamRefID: homeTeamRef, Position: "FWD", IsStarter: true}},
		},
		eventsErr: map[int64]error{9002: errors.New("events feed truncated")},
	}

	service, _, scoringRepo := newScoringServiceForTest(t, provider)
	ctx := context.Background()

	if _, err := service.ScoreRound(ctx, "Jornada 1"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	stored, err := scoringRepo.ListByRound(ctx, "round-01")
	if err != nil {
		t.Fatalf("ListByRound error: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("aborted round must persist nothing, got %d rows", len(stored))
	}
}

func TestScoringService_ScoreRound_UnknownRound(t *testing.T) {
	t.Parallel()

	service, _, _ := newScoringServiceForTest(t, &fakeMatchProvider{})

	if _, err := service.ScoreRound(context.Background(), "Jornada 99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
