package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-draft/internal/domain/round"
	idgen "github.com/riskibarqy/fantasy-draft/internal/platform/id"
	"github.com/riskibarqy/fantasy-draft/internal/platform/logging"
)

// scoringGraceDelay leaves the provider time to settle post-match data
// before a scheduled scoring callback fires.
const scoringGraceDelay = 30 * time.Minute

// ScoreScheduler enqueues a deferred scoring callback for a round.
type ScoreScheduler interface {
	PublishScoreRound(ctx context.Context, roundName string, delay time.Duration) error
}

// RoundService keeps the local competition calendar aligned with the
// provider's. Rounds are provider-owned data; the platform never invents
// them.
type RoundService struct {
	roundRepo round.Repository
	provider  RoundDataProvider
	idGen     idgen.Generator
	scheduler ScoreScheduler
	logger    *logging.Logger
	now       func() time.Time
}

func NewRoundService(
	roundRepo round.Repository,
	provider RoundDataProvider,
	idGen idgen.Generator,
	scheduler ScoreScheduler,
	logger *logging.Logger,
) *RoundService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RoundService{
		roundRepo: roundRepo,
		provider:  provider,
		idGen:     idGen,
		scheduler: scheduler,
		logger:    logger,
		now:       time.Now,
	}
}

// SyncRounds pulls the provider calendar and upserts every round. Existing
// rounds keep their local id; upsert keying is by provider round id.
func (s *RoundService) SyncRounds(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.SyncRounds")
	defer span.End()

	external, err := s.provider.Rounds(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: fetch provider rounds: %v", ErrDependencyUnavailable, err)
	}

	now := s.now().UTC()
	synced := 0
	for _, item := range external {
		if item.ProviderRoundID <= 0 {
			continue
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			name = "Round " + strconv.Itoa(item.Number)
		}

		existing, exists, err := s.roundRepo.GetByName(ctx, name)
		id := existing.ID
		if err != nil {
			return synced, fmt.Errorf("lookup round %q: %w", name, err)
		}
		if !exists {
			id, err = s.idGen.NewID()
			if err != nil {
				return synced, fmt.Errorf("generate round id: %w", err)
			}
		}

		record := round.Round{
			ID:              id,
			ProviderRoundID: item.ProviderRoundID,
			Name:            name,
			Number:          item.Number,
			StartsAt:        item.StartsAt,
			EndsAt:          item.EndsAt,
			IsCurrent:       isCurrentRound(item, now),
		}
		if err := record.Validate(); err != nil {
			return synced, fmt.Errorf("%w: provider round %d: %v", ErrInvalidInput, item.ProviderRoundID, err)
		}
		if err := s.roundRepo.Upsert(ctx, record); err != nil {
			return synced, fmt.Errorf("upsert round %q: %w", name, err)
		}
		synced++

		s.scheduleScoring(ctx, record, now)
	}

	s.logger.InfoContext(ctx, "round calendar synced", "rounds", synced)
	return synced, nil
}

// scheduleScoring enqueues the round's deferred scoring callback once the
// round window is known. The publisher deduplicates by round name, so
// re-syncing the calendar never double-schedules. Scheduling is best effort
// and never fails the sync.
func (s *RoundService) scheduleScoring(ctx context.Context, record round.Round, now time.Time) {
	if s.scheduler == nil || record.EndsAt.IsZero() || !record.EndsAt.After(now) {
		return
	}

	delay := record.EndsAt.Sub(now) + scoringGraceDelay
	if err := s.scheduler.PublishScoreRound(ctx, record.Name, delay); err != nil {
		s.logger.WarnContext(ctx, "schedule round scoring failed",
			"round", record.Name,
			"error", err,
		)
	}
}

// isCurrentRound trusts an explicit provider current flag and otherwise
// falls back to the round window containing now.
func isCurrentRound(item ExternalRound, now time.Time) bool {
	if item.IsCurrent {
		return true
	}
	if item.StartsAt.IsZero() || item.EndsAt.IsZero() {
		return false
	}
	return !now.Before(item.StartsAt) && now.Before(item.EndsAt)
}

// CurrentRound resolves the drafting round.
func (s *RoundService) CurrentRound(ctx context.Context) (round.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RoundService.CurrentRound")
	defer span.End()

	current, exists, err := s.roundRepo.GetCurrent(ctx)
	if err != nil {
		return round.Round{}, fmt.Errorf("get current round: %w", err)
	}
	if !exists {
		return round.Round{}, fmt.Errorf("%w: no current round", ErrNotFound)
	}
	return current, nil
}
