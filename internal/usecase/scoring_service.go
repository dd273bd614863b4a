package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
	"github.com/riskibarqy/fantasy-draft/internal/domain/round"
	"github.com/riskibarqy/fantasy-draft/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-draft/internal/platform/cache"
	"github.com/riskibarqy/fantasy-draft/internal/platform/logging"
)

const (
	appearanceBonus    = 3
	goalPoints         = 4
	assistPoints       = 3
	yellowCardPoints   = -1
	redCardPoints      = -3
	penaltyPoints      = 4
	defaultWorkerCount = 4

	playerDirectoryCacheKey = "scoring:player-directory"
)

type ScoringService struct {
	provider    MatchDataProvider
	playerRepo  player.Repository
	roundRepo   round.Repository
	scoringRepo scoring.Repository
	directory   *cache.Store
	logger      *logging.Logger
	now         func() time.Time
	workerCount int
}

func NewScoringService(
	provider MatchDataProvider,
	playerRepo player.Repository,
	roundRepo round.Repository,
	scoringRepo scoring.Repository,
	directory *cache.Store,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if directory == nil {
		directory = cache.NewStore(time.Minute)
	}

	return &ScoringService{
		provider:    provider,
		playerRepo:  playerRepo,
		roundRepo:   roundRepo,
		scoringRepo: scoringRepo,
		directory:   directory,
		logger:      logger,
		now:         time.Now,
		workerCount: defaultWorkerCount,
	}
}

// SetWorkerCount overrides the per-round fixture scoring concurrency.
func (s *ScoringService) SetWorkerCount(n int) {
	if n > 0 {
		s.workerCount = n
	}
}

// fixtureTally is one player's in-flight totals while a fixture is scored.
// eventPoints and statPoints stay separate until settlement because only
// statPoints is subject to bench halving.
type fixtureTally struct {
	name        string
	refID       int64
	teamRefID   int64
	position    player.Position
	played      bool
	starter     bool
	eventPoints int
	statPoints  int
}

// ScoreFixture computes final points for one fixture, keyed by directory
// player id. The result always contains a row for every directory player;
// players absent from the fixture data score 0.
func (s *ScoringService) ScoreFixture(ctx context.Context, fixtureID int64) ([]scoring.PlayerPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreFixture")
	defer span.End()

	directory, err := s.playerDirectory(ctx)
	if err != nil {
		return nil, err
	}

	return s.scoreFixtureAgainst(ctx, fixtureID, directory)
}

func (s *ScoringService) scoreFixtureAgainst(ctx context.Context, fixtureID int64, directory []player.Player) ([]scoring.PlayerPoints, error) {
	lineups, events, statistics, err := s.fetchFixtureData(ctx, fixtureID)
	if err != nil {
		return nil, fmt.Errorf("%w: fixture %d: %v", ErrDependencyUnavailable, fixtureID, err)
	}

	tallies := buildWorkingSet(lineups)
	applyEvents(tallies, events)
	applyStatistics(tallies, statistics)

	return settle(tallies, directory), nil
}

// fetchFixtureData pulls lineups, events and statistics for one fixture in
// parallel. Any one failure fails the fixture; a partially fetched fixture
// would silently under-count.
func (s *ScoringService) fetchFixtureData(ctx context.Context, fixtureID int64) ([]ExternalLineupEntry, []ExternalFixtureEvent, []ExternalFixtureStatistic, error) {
	var (
		lineups    []ExternalLineupEntry
		events     []ExternalFixtureEvent
		statistics []ExternalFixtureStatistic

		lineupsErr    error
		eventsErr     error
		statisticsErr error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		lineups, lineupsErr = s.provider.Lineups(ctx, fixtureID)
	})
	wg.Go(func() {
		events, eventsErr = s.provider.Events(ctx, fixtureID)
	})
	wg.Go(func() {
		statistics, statisticsErr = s.provider.Statistics(ctx, fixtureID)
	})
	wg.Wait()

	if lineupsErr != nil {
		return nil, nil, nil, fmt.Errorf("fetch lineups: %w", lineupsErr)
	}
	if eventsErr != nil {
		return nil, nil, nil, fmt.Errorf("fetch events: %w", eventsErr)
	}
	if statisticsErr != nil {
		return nil, nil, nil, fmt.Errorf("fetch statistics: %w", statisticsErr)
	}

	return lineups, events, statistics, nil
}

// workingKey identifies a player within one fixture's working set. The
// provider reference wins when present; events without one fall back to a
// normalized name match.
func workingKey(refID int64, name string) string {
	if refID > 0 {
		return fmt.Sprintf("ref:%d", refID)
	}
	return "name:" + normalizeName(name)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func buildWorkingSet(lineups []ExternalLineupEntry) map[string]*fixtureTally {
	tallies := make(map[string]*fixtureTally, len(lineups))
	for _, entry := range lineups {
		tally := &fixtureTally{
			name:      entry.PlayerName,
			refID:     entry.PlayerRefID,
			teamRefID: entry.TeamRefID,
			position:  normalizePosition(entry.Position),
		}
		if entry.IsStarter {
			tally.starter = true
			tally.played = true
			tally.eventPoints = appearanceBonus
		}
		tallies[workingKey(entry.PlayerRefID, entry.PlayerName)] = tally
	}
	return tallies
}

func normalizePosition(raw string) player.Position {
	position := player.Position(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := player.AllPositions[position]; !ok {
		return player.PositionMidfielder
	}
	return position
}

// resolveTally finds the tally for an event participant, preferring the
// explicit provider reference and falling back to a name match. Unknown
// participants are admitted with a default midfield position so provider
// artifacts (a scorer missing from the lineup feed) still score.
func resolveTally(tallies map[string]*fixtureTally, refID int64, name string, teamRefID int64) *fixtureTally {
	if refID > 0 {
		if tally, ok := tallies[workingKey(refID, "")]; ok {
			return tally
		}
	}
	if normalized := normalizeName(name); normalized != "" {
		if tally, ok := tallies["name:"+normalized]; ok {
			return tally
		}
		for _, tally := range tallies {
			if normalizeName(tally.name) == normalized {
				return tally
			}
		}
	}

	tally := &fixtureTally{
		name:      name,
		refID:     refID,
		teamRefID: teamRefID,
		position:  player.PositionMidfielder,
	}
	tallies[workingKey(refID, name)] = tally
	return tally
}

func applyEvents(tallies map[string]*fixtureTally, events []ExternalFixtureEvent) {
	for _, event := range events {
		switch event.Type {
		case EventTypeGoal:
			scorer := resolveTally(tallies, event.PlayerRefID, event.PlayerName, event.TeamRefID)
			scorer.eventPoints += goalPoints
			if event.RelatedPlayerRef > 0 || strings.TrimSpace(event.RelatedPlayerName) != "" {
				assister := resolveTally(tallies, event.RelatedPlayerRef, event.RelatedPlayerName, event.TeamRefID)
				assister.eventPoints += assistPoints
			}
		case EventTypeSubstitution:
			// The entering player is the event subject; coming on marks
			// them played without any direct point change.
			entering := resolveTally(tallies, event.PlayerRefID, event.PlayerName, event.TeamRefID)
			entering.played = true
		case EventTypeYellowCard:
			booked := resolveTally(tallies, event.PlayerRefID, event.PlayerName, event.TeamRefID)
			booked.eventPoints += yellowCardPoints
		case EventTypeRedCard:
			sentOff := resolveTally(tallies, event.PlayerRefID, event.PlayerName, event.TeamRefID)
			sentOff.eventPoints += redCardPoints
		case EventTypePenaltyScored:
			taker := resolveTally(tallies, event.PlayerRefID, event.PlayerName, event.TeamRefID)
			taker.eventPoints += penaltyPoints
		}
	}
}

// applyStatistics accrues team-level statistic tiers onto every player of
// the stated team. Provider statistics are per-team, so each record is
// evaluated once per squad member against that member's position table.
func applyStatistics(tallies map[string]*fixtureTally, statistics []ExternalFixtureStatistic) {
	for _, stat := range statistics {
		for _, tally := range tallies {
			if tally.teamRefID != stat.TeamRefID {
				continue
			}
			tally.statPoints += statDelta(stat.Type, tally.position, stat.Value)
		}
	}
}

// settle converts working tallies into final directory-keyed rows.
// Starters keep full stat points, substitutes keep half truncated toward
// zero, and anyone who never played scores 0 outright. Every directory
// player gets a row so downstream aggregation never has to treat a missing
// row as an implicit zero.
func settle(tallies map[string]*fixtureTally, directory []player.Player) []scoring.PlayerPoints {
	byRef := make(map[int64]*fixtureTally, len(tallies))
	byName := make(map[string]*fixtureTally, len(tallies))
	for _, tally := range tallies {
		if tally.refID > 0 {
			byRef[tally.refID] = tally
		}
		if normalized := normalizeName(tally.name); normalized != "" {
			byName[normalized] = tally
		}
	}

	results := make([]scoring.PlayerPoints, 0, len(directory))
	for _, p := range directory {
		tally, ok := byRef[p.PlayerRefID]
		if !ok {
			tally, ok = byName[normalizeName(p.Name)]
		}
		if !ok {
			results = append(results, scoring.PlayerPoints{PlayerID: p.ID})
			continue
		}
		results = append(results, scoring.PlayerPoints{PlayerID: p.ID, Points: settleTally(tally)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Points != results[j].Points {
			return results[i].Points > results[j].Points
		}
		return results[i].PlayerID < results[j].PlayerID
	})

	return results
}

func settleTally(tally *fixtureTally) int {
	if !tally.played {
		return 0
	}

	statPoints := tally.statPoints
	if !tally.starter {
		// Go integer division truncates toward zero, which is the exact
		// bench-halving rule (7 -> 3, -7 -> -3).
		statPoints /= 2
	}

	return tally.eventPoints + statPoints
}

// ScoreRound computes, persists and returns point totals for every fixture
// in the named round (current round when roundName is empty). A failed
// fixture-list fetch degrades to an empty result with a warning, but a
// failure while scoring any single fixture aborts the whole round.
func (s *ScoringService) ScoreRound(ctx context.Context, roundName string) ([]scoring.RoundPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreRound")
	defer span.End()

	targetRound, err := s.resolveRound(ctx, strings.TrimSpace(roundName))
	if err != nil {
		return nil, err
	}

	fixtures, err := s.provider.FixturesForRound(ctx, targetRound.ProviderRoundID)
	if err != nil {
		s.logger.WarnContext(ctx, "fixture discovery failed, scoring round as empty",
			"round_id", targetRound.ID,
			"provider_round_id", targetRound.ProviderRoundID,
			"error", err.Error(),
		)
		return []scoring.RoundPoints{}, nil
	}
	if len(fixtures.FixtureIDs) == 0 {
		s.logger.WarnContext(ctx, "round has no fixtures to score", "round_id", targetRound.ID)
		return []scoring.RoundPoints{}, nil
	}

	directory, err := s.playerDirectory(ctx)
	if err != nil {
		return nil, err
	}

	fixtureResults, err := s.scoreFixturesConcurrently(ctx, fixtures.FixtureIDs, directory)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int, len(directory))
	for _, p := range directory {
		totals[p.ID] = 0
	}
	for _, results := range fixtureResults {
		for _, row := range results {
			totals[row.PlayerID] += row.Points
		}
	}

	calculatedAt := s.now().UTC()
	rows := make([]scoring.RoundPoints, 0, len(totals))
	for playerID, points := range totals {
		rows = append(rows, scoring.RoundPoints{
			RoundID:      targetRound.ID,
			PlayerID:     playerID,
			Points:       points,
			CalculatedAt: calculatedAt,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})

	if err := s.persistRoundPoints(ctx, targetRound.ID, rows); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "round scored",
		"round_id", targetRound.ID,
		"fixtures", len(fixtures.FixtureIDs),
		"players", len(rows),
	)

	return rows, nil
}

func (s *ScoringService) scoreFixturesConcurrently(ctx context.Context, fixtureIDs []int64, directory []player.Player) ([][]scoring.PlayerPoints, error) {
	workerCount := s.workerCount
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	if workerCount > len(fixtureIDs) {
		workerCount = len(fixtureIDs)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([][]scoring.PlayerPoints, len(fixtureIDs))
	errs := make([]error, len(fixtureIDs))

	var workers sync.WaitGroup
	for i, fixtureID := range fixtureIDs {
		i, fixtureID := i, fixtureID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results[i], errs[i] = s.scoreFixtureAgainst(ctx, fixtureID, directory)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit fixture scoring task: %w", err)
		}
	}
	workers.Wait()

	for i, fixtureErr := range errs {
		if fixtureErr != nil {
			return nil, fmt.Errorf("score fixture %d: %w", fixtureIDs[i], fixtureErr)
		}
	}

	return results, nil
}

// persistRoundPoints upserts the recomputed rows and applies only the
// delta against any previously stored totals, so re-scoring a round never
// double-counts player career points.
func (s *ScoringService) persistRoundPoints(ctx context.Context, roundID string, rows []scoring.RoundPoints) error {
	existing, err := s.scoringRepo.ListByRound(ctx, roundID)
	if err != nil {
		return fmt.Errorf("list existing round points: %w", err)
	}
	previous := make(map[string]int, len(existing))
	for _, row := range existing {
		previous[row.PlayerID] = row.Points
	}

	if err := s.scoringRepo.UpsertRoundPoints(ctx, rows); err != nil {
		return fmt.Errorf("upsert round points: %w", err)
	}

	deltas := make(map[string]int, len(rows))
	for _, row := range rows {
		if delta := row.Points - previous[row.PlayerID]; delta != 0 {
			deltas[row.PlayerID] = delta
		}
	}
	if len(deltas) == 0 {
		return nil
	}
	if err := s.playerRepo.AddTotalPoints(ctx, deltas); err != nil {
		return fmt.Errorf("apply player total point deltas: %w", err)
	}
	return nil
}

// RoundPoints returns the stored totals for a round without recomputing.
func (s *ScoringService) RoundPoints(ctx context.Context, roundName string) ([]scoring.RoundPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RoundPoints")
	defer span.End()

	targetRound, err := s.resolveRound(ctx, strings.TrimSpace(roundName))
	if err != nil {
		return nil, err
	}

	rows, err := s.scoringRepo.ListByRound(ctx, targetRound.ID)
	if err != nil {
		return nil, fmt.Errorf("list round points: %w", err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].PlayerID < rows[j].PlayerID
	})
	return rows, nil
}

func (s *ScoringService) resolveRound(ctx context.Context, roundName string) (round.Round, error) {
	if roundName == "" {
		current, exists, err := s.roundRepo.GetCurrent(ctx)
		if err != nil {
			return round.Round{}, fmt.Errorf("get current round: %w", err)
		}
		if !exists {
			return round.Round{}, fmt.Errorf("%w: no current round", ErrNotFound)
		}
		return current, nil
	}

	named, exists, err := s.roundRepo.GetByName(ctx, roundName)
	if err != nil {
		return round.Round{}, fmt.Errorf("get round by name: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: round not found: %s", ErrNotFound, roundName)
	}
	return named, nil
}

func (s *ScoringService) playerDirectory(ctx context.Context) ([]player.Player, error) {
	value, err := s.directory.GetOrLoad(ctx, playerDirectoryCacheKey, func(ctx context.Context) (any, error) {
		players, err := s.playerRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return players, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load player directory: %w", err)
	}

	players, ok := value.([]player.Player)
	if !ok {
		return nil, fmt.Errorf("unexpected player directory cache entry %T", value)
	}
	return players, nil
}
