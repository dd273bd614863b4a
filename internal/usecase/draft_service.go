package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-draft/internal/domain/draft"
	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
	"github.com/riskibarqy/fantasy-draft/internal/domain/round"
	idgen "github.com/riskibarqy/fantasy-draft/internal/platform/id"
	"github.com/riskibarqy/fantasy-draft/internal/platform/logging"
)

// CreateDraftInput is the incoming payload for generating a draft squad.
// RoundName is optional and defaults to the current round.
type CreateDraftInput struct {
	UserID    string
	LeagueID  string
	Formation string
	RoundName string
}

// UpdateDraftInput replaces a temporary squad's slots, typically to record
// chosen indexes. Candidates themselves are immutable once generated.
type UpdateDraftInput struct {
	SquadID string
	Slots   []draft.CandidateSlot
}

// FinalizeDraftInput carries the full temporary squad payload with every
// slot decided.
type FinalizeDraftInput struct {
	SquadID string
	Slots   []draft.CandidateSlot
}

type DraftService struct {
	playerRepo player.Repository
	roundRepo  round.Repository
	draftRepo  draft.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
	randSeed   func() int64
}

func NewDraftService(
	playerRepo player.Repository,
	roundRepo round.Repository,
	draftRepo draft.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DraftService{
		playerRepo: playerRepo,
		roundRepo:  roundRepo,
		draftRepo:  draftRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
		randSeed:   func() int64 { return time.Now().UnixNano() },
	}
}

func (s *DraftService) CreateDraft(ctx context.Context, input CreateDraftInput) (draft.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.CreateDraft")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Formation = strings.TrimSpace(input.Formation)
	input.RoundName = strings.TrimSpace(input.RoundName)

	if input.UserID == "" {
		return draft.Squad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.LeagueID == "" {
		return draft.Squad{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	formation, err := draft.FormationByName(input.Formation)
	if err != nil {
		return draft.Squad{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	targetRound, err := s.resolveRound(ctx, input.RoundName)
	if err != nil {
		return draft.Squad{}, err
	}

	now := s.now().UTC()
	if !targetRound.Open(now) {
		return draft.Squad{}, fmt.Errorf("%w: round %s already started, drafting is closed", ErrConflict, targetRound.Name)
	}

	slots, err := s.buildSlots(ctx, formation)
	if err != nil {
		return draft.Squad{}, err
	}

	squadID, err := s.idGen.NewID()
	if err != nil {
		return draft.Squad{}, fmt.Errorf("generate squad id: %w", err)
	}

	squad := draft.Squad{
		ID:        squadID,
		UserID:    input.UserID,
		LeagueID:  input.LeagueID,
		RoundID:   targetRound.ID,
		Formation: formation.Name,
		Slots:     slots,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := squad.ValidateBasic(); err != nil {
		return draft.Squad{}, fmt.Errorf("validate generated squad: %w", err)
	}

	if err := s.draftRepo.Insert(ctx, squad); err != nil {
		if errors.Is(err, draft.ErrSquadExists) {
			return draft.Squad{}, fmt.Errorf("%w: draft already exists for user=%s league=%s round=%s",
				ErrConflict, input.UserID, input.LeagueID, targetRound.ID)
		}
		return draft.Squad{}, fmt.Errorf("insert draft squad: %w", err)
	}

	s.logger.InfoContext(ctx, "draft squad generated",
		"user_id", input.UserID,
		"league_id", input.LeagueID,
		"round_id", targetRound.ID,
		"squad_id", squad.ID,
		"formation", formation.Name,
	)

	return squad, nil
}

// buildSlots draws every candidate slot in formation order. The exclusion
// accumulator is threaded through each draw so a player offered in one slot
// is never offered again anywhere in the squad. Draws are sequential by
// construction: slot N depends on the accumulator from slots 1..N-1.
func (s *DraftService) buildSlots(ctx context.Context, formation draft.Formation) ([]draft.CandidateSlot, error) {
	selector := draft.NewSelector(rand.NewSource(s.randSeed()))

	pools := make(map[player.Position][]player.Player, len(player.AllPositions))
	for position := range player.AllPositions {
		pool, err := s.playerRepo.ListByPosition(ctx, position)
		if err != nil {
			return nil, fmt.Errorf("list players position=%s: %w", position, err)
		}
		pools[position] = pool
	}

	excluded := make(map[string]struct{})
	positions := formation.SlotPositions()
	slots := make([]draft.CandidateSlot, 0, len(positions))
	for i, position := range positions {
		slot, next, err := drawSlot(selector, position, pools[position], excluded)
		if err != nil {
			return nil, fmt.Errorf("draw slot %d position=%s: %w", i, position, err)
		}
		slots = append(slots, slot)
		excluded = next
	}

	return slots, nil
}

func drawSlot(
	selector *draft.Selector,
	position player.Position,
	pool []player.Player,
	excluded map[string]struct{},
) (draft.CandidateSlot, map[string]struct{}, error) {
	eligible := make([]player.Player, 0, len(pool))
	for _, candidate := range pool {
		if _, skip := excluded[candidate.ID]; skip {
			continue
		}
		eligible = append(eligible, candidate)
	}

	picked, err := selector.Pick(eligible, draft.CandidatesPerSlot)
	if err != nil {
		return draft.CandidateSlot{}, excluded, err
	}

	slot := draft.CandidateSlot{Position: position}
	next := make(map[string]struct{}, len(excluded)+len(picked))
	for id := range excluded {
		next[id] = struct{}{}
	}
	for i, candidate := range picked {
		slot.CandidateIDs[i] = candidate.ID
		next[candidate.ID] = struct{}{}
	}

	return slot, next, nil
}

func (s *DraftService) UpdateDraft(ctx context.Context, input UpdateDraftInput) (draft.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.UpdateDraft")
	defer span.End()

	input.SquadID = strings.TrimSpace(input.SquadID)
	if input.SquadID == "" {
		return draft.Squad{}, fmt.Errorf("%w: squad id is required", ErrInvalidInput)
	}

	squad, exists, err := s.draftRepo.GetByID(ctx, input.SquadID)
	if err != nil {
		return draft.Squad{}, fmt.Errorf("get draft squad: %w", err)
	}
	if !exists {
		return draft.Squad{}, fmt.Errorf("%w: draft not found: %s", ErrNotFound, input.SquadID)
	}
	if squad.Finalized {
		return draft.Squad{}, fmt.Errorf("%w: draft already finalized: %s", ErrConflict, input.SquadID)
	}

	if err := validateReplacementSlots(squad, input.Slots); err != nil {
		return draft.Squad{}, err
	}

	now := s.now().UTC()
	if err := s.draftRepo.UpdateSlots(ctx, squad.ID, input.Slots, now); err != nil {
		return draft.Squad{}, fmt.Errorf("update draft slots squad=%s: %w", squad.ID, err)
	}

	squad.Slots = input.Slots
	squad.UpdatedAt = now
	return squad, nil
}

func (s *DraftService) FinalizeDraft(ctx context.Context, input FinalizeDraftInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.FinalizeDraft")
	defer span.End()

	input.SquadID = strings.TrimSpace(input.SquadID)
	if input.SquadID == "" {
		return fmt.Errorf("%w: squad id is required", ErrInvalidInput)
	}

	squad, exists, err := s.draftRepo.GetByID(ctx, input.SquadID)
	if err != nil {
		return fmt.Errorf("get draft squad: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: draft not found: %s", ErrNotFound, input.SquadID)
	}

	slots := input.Slots
	if len(slots) == 0 {
		slots = squad.Slots
	}
	if err := validateReplacementSlots(squad, slots); err != nil {
		return err
	}

	squad.Slots = slots
	chosenIDs, err := squad.ChosenPlayerIDs()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if squad.Finalized {
		// Retried finalize after a crash; roster inserts below are no-ops.
		s.logger.InfoContext(ctx, "draft squad already finalized, finalize retry is a no-op", "squad_id", squad.ID)
		return nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, chosenIDs)
	if err != nil {
		return fmt.Errorf("resolve chosen players: %w", err)
	}
	if len(players) != len(chosenIDs) {
		return fmt.Errorf("%w: some chosen players are missing from the directory", ErrInvalidInput)
	}

	links := make([]draft.RosterLink, 0, len(chosenIDs))
	for _, playerID := range chosenIDs {
		links = append(links, draft.RosterLink{SquadID: squad.ID, PlayerID: playerID})
	}

	squad.Finalized = true
	squad.UpdatedAt = s.now().UTC()
	if err := s.draftRepo.Finalize(ctx, squad, links); err != nil {
		return fmt.Errorf("finalize draft squad=%s: %w", squad.ID, err)
	}

	s.logger.InfoContext(ctx, "draft squad finalized",
		"squad_id", squad.ID,
		"user_id", squad.UserID,
		"round_id", squad.RoundID,
		"roster_size", len(links),
	)

	return nil
}

// GetFinalizedSquad returns the finalized squad and its resolved roster in
// slot order. An empty roundName resolves to the current round.
func (s *DraftService) GetFinalizedSquad(ctx context.Context, userID, leagueID, roundName string) (draft.Squad, []player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.GetFinalizedSquad")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" || leagueID == "" {
		return draft.Squad{}, nil, fmt.Errorf("%w: user_id and league_id are required", ErrInvalidInput)
	}

	targetRound, err := s.resolveRound(ctx, strings.TrimSpace(roundName))
	if err != nil {
		return draft.Squad{}, nil, err
	}

	squad, exists, err := s.draftRepo.GetFinalizedByOwner(ctx, userID, leagueID, targetRound.ID)
	if err != nil {
		return draft.Squad{}, nil, fmt.Errorf("get finalized squad: %w", err)
	}
	if !exists {
		return draft.Squad{}, nil, fmt.Errorf("%w: no finalized squad for user=%s league=%s round=%s",
			ErrNotFound, userID, leagueID, targetRound.ID)
	}

	chosenIDs, err := squad.ChosenPlayerIDs()
	if err != nil {
		return draft.Squad{}, nil, fmt.Errorf("finalized squad %s has undecided slots: %w", squad.ID, err)
	}

	players, err := s.playerRepo.GetByIDs(ctx, chosenIDs)
	if err != nil {
		return draft.Squad{}, nil, fmt.Errorf("resolve roster players: %w", err)
	}

	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	roster := make([]player.Player, 0, len(chosenIDs))
	for _, playerID := range chosenIDs {
		resolved, ok := byID[playerID]
		if !ok {
			return draft.Squad{}, nil, fmt.Errorf("roster player %s missing from directory", playerID)
		}
		roster = append(roster, resolved)
	}

	return squad, roster, nil
}

func (s *DraftService) resolveRound(ctx context.Context, roundName string) (round.Round, error) {
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

// validateReplacementSlots accepts a replacement slot payload only when it
// keeps the generated candidate sets intact; only chosen indexes may move.
func validateReplacementSlots(squad draft.Squad, slots []draft.CandidateSlot) error {
	formation, err := draft.FormationByName(squad.Formation)
	if err != nil {
		return fmt.Errorf("stored squad formation: %w", err)
	}
	if err := draft.ValidateSlots(formation, slots); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(slots) != len(squad.Slots) {
		return fmt.Errorf("%w: slot count mismatch", ErrInvalidInput)
	}
	for i, slot := range slots {
		if slot.CandidateIDs != squad.Slots[i].CandidateIDs {
			return fmt.Errorf("%w: slot %d candidates do not match the generated draft", ErrInvalidInput, i)
		}
	}
	return nil
}
