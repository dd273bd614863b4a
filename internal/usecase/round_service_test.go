package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-draft/internal/domain/round"
	"github.com/riskibarqy/fantasy-draft/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-draft/internal/platform/logging"
)

type fakeRoundProvider struct {
	rounds []ExternalRound
	err    error
}

func (p *fakeRoundProvider) Rounds(_ context.Context) ([]ExternalRound, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.rounds, nil
}

type recordingScheduler struct {
	calls map[string]time.Duration
}

func (s *recordingScheduler) PublishScoreRound(_ context.Context, roundName string, delay time.Duration) error {
	if s.calls == nil {
		s.calls = make(map[string]time.Duration)
	}
	s.calls[roundName] = delay
	return nil
}

func TestRoundService_SyncRounds(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	roundRepo := memory.NewRoundRepository([]round.Round{{
		ID:              "round-01",
		ProviderRoundID: 501,
		Name:            "Jornada 1",
		Number:          1,
		StartsAt:        now.Add(-10 * 24 * time.Hour),
		EndsAt:          now.Add(-8 * 24 * time.Hour),
	}})

	provider := &fakeRoundProvider{rounds: []ExternalRound{
		{
			ProviderRoundID: 501,
			Name:            "Jornada 1",
			Number:          1,
			StartsAt:        now.Add(-10 * 24 * time.Hour),
			EndsAt:          now.Add(-8 * 24 * time.Hour),
		},
		{
			ProviderRoundID: 502,
			Name:            "Jornada 2",
			Number:          2,
			StartsAt:        now.Add(-2 * time.Hour),
			EndsAt:          now.Add(46 * time.Hour),
		},
		{
			// Provider rows without a usable id are skipped, not fatal.
			ProviderRoundID: 0,
			Name:            "Jornada X",
		},
	}}

	scheduler := &recordingScheduler{}
	service := NewRoundService(roundRepo, provider, &seqIDGenerator{prefix: "round"}, scheduler, logging.NewNop())
	service.now = func() time.Time { return now }

	synced, err := service.SyncRounds(context.Background())
	if err != nil {
		t.Fatalf("SyncRounds error: %v", err)
	}
	if synced != 2 {
		t.Fatalf("synced %d rounds, want 2", synced)
	}

	// A known round keeps its local id.
	existing, exists, err := roundRepo.GetByName(context.Background(), "Jornada 1")
	if err != nil || !exists {
		t.Fatalf("round lookup failed: exists=%t err=%v", exists, err)
	}
	if existing.ID != "round-01" {
		t.Fatalf("existing round id changed to %s", existing.ID)
	}

	// The round whose window contains now becomes current.
	current, exists, err := roundRepo.GetCurrent(context.Background())
	if err != nil || !exists {
		t.Fatalf("current round lookup failed: exists=%t err=%v", exists, err)
	}
	if current.Name != "Jornada 2" {
		t.Fatalf("current round is %s, want Jornada 2", current.Name)
	}

	// Only the still-open round gets a scheduled scoring callback, delayed
	// past its end.
	if len(scheduler.calls) != 1 {
		t.Fatalf("scheduled %d callbacks, want 1", len(scheduler.calls))
	}
	delay, ok := scheduler.calls["Jornada 2"]
	if !ok {
		t.Fatal("Jornada 2 scoring was not scheduled")
	}
	if delay <= 46*time.Hour {
		t.Fatalf("delay %s does not reach past the round end", delay)
	}
}

func TestRoundService_SyncRounds_ProviderFailure(t *testing.T) {
	t.Parallel()

	roundRepo := memory.NewRoundRepository(nil)
	provider := &fakeRoundProvider{err: errors.New("calendar feed down")}
	service := NewRoundService(roundRepo, provider, &seqIDGenerator{prefix: "round"}, nil, logging.NewNop())

	if _, err := service.SyncRounds(context.Background()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestRoundService_CurrentRound(t *testing.T) {
	t.Parallel()

	empty := NewRoundService(memory.NewRoundRepository(nil), &fakeRoundProvider{}, &seqIDGenerator{prefix: "round"}, nil, logging.NewNop())
	if _, err := empty.CurrentRound(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound without a current round, got %v", err)
	}

	seeded := NewRoundService(
		memory.NewRoundRepository([]round.Round{{ID: "round-02", ProviderRoundID: 502, Name: "Jornada 2", IsCurrent: true}}),
		&fakeRoundProvider{},
		&seqIDGenerator{prefix: "round"},
		nil,
		logging.NewNop(),
	)
	current, err := seeded.CurrentRound(context.Background())
	if err != nil {
		t.Fatalf("CurrentRound error: %v", err)
	}
	if current.ID != "round-02" {
		t.Fatalf("current round %s, want round-02", current.ID)
	}
}
