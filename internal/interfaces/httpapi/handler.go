package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/fantasy-draft/internal/domain/draft"
	"github.com/riskibarqy/fantasy-draft/internal/domain/player"
	"github.com/riskibarqy/fantasy-draft/internal/platform/logging"
	"github.com/riskibarqy/fantasy-draft/internal/usecase"
)

type Handler struct {
	draftService   *usecase.DraftService
	scoringService *usecase.ScoringService
	roundService   *usecase.RoundService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	draftService *usecase.DraftService,
	scoringService *usecase.ScoringService,
	roundService *usecase.RoundService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		draftService:   draftService,
		scoringService: scoringService,
		roundService:   roundService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDraft")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createDraftRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.draftService.CreateDraft(ctx, usecase.CreateDraftInput{
		UserID:    principal.UserID,
		LeagueID:  req.LeagueID,
		Formation: req.Formation,
		RoundName: req.RoundName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create draft failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, squadToDTO(squad))
}

func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateDraft")
	defer span.End()

	if _, ok := principalFromContext(ctx); !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req updateDraftRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.draftService.UpdateDraft(ctx, usecase.UpdateDraftInput{
		SquadID: r.PathValue("squadID"),
		Slots:   slotsFromDTO(req.Slots),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update draft failed", "squad_id", r.PathValue("squadID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}

func (h *Handler) FinalizeDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeDraft")
	defer span.End()

	if _, ok := principalFromContext(ctx); !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req finalizeDraftRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err := h.draftService.FinalizeDraft(ctx, usecase.FinalizeDraftInput{
		SquadID: r.PathValue("squadID"),
		Slots:   slotsFromDTO(req.Slots),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "finalize draft failed", "squad_id", r.PathValue("squadID"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "finalized"})
}

func (h *Handler) GetFinalizedSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFinalizedSquad")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	leagueID := r.PathValue("leagueID")
	roundName := r.URL.Query().Get("round")

	squad, roster, err := h.draftService.GetFinalizedSquad(ctx, principal.UserID, leagueID, roundName)
	if err != nil {
		h.logger.WarnContext(ctx, "get finalized squad failed", "user_id", principal.UserID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, finalizedSquadDTO{
		Squad:  squadToDTO(squad),
		Roster: playersToDTO(roster),
	})
}

func (h *Handler) GetRoundPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoundPoints")
	defer span.End()

	rows, err := h.scoringService.RoundPoints(ctx, r.URL.Query().Get("round"))
	if err != nil {
		h.logger.WarnContext(ctx, "get round points failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]roundPointsDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, roundPointsDTO{
			RoundID:  row.RoundID,
			PlayerID: row.PlayerID,
			Points:   row.Points,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RunScoreRoundJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoreRoundJob")
	defer span.End()

	var req scoreRoundJobRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.scoringService.ScoreRound(ctx, req.RoundName)
	if err != nil {
		h.logger.ErrorContext(ctx, "score round job failed", "round_name", req.RoundName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"round_name": req.RoundName,
		"players":    len(rows),
	})
}

func (h *Handler) RunSyncRoundsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncRoundsJob")
	defer span.End()

	synced, err := h.roundService.SyncRounds(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "sync rounds job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"rounds": synced})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, target); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type createDraftRequest struct {
	LeagueID  string `json:"league_id" validate:"required"`
	Formation string `json:"formation" validate:"required"`
	RoundName string `json:"round_name"`
}

type updateDraftRequest struct {
	Slots []candidateSlotDTO `json:"slots" validate:"required,min=1"`
}

type finalizeDraftRequest struct {
	Slots []candidateSlotDTO `json:"slots"`
}

type scoreRoundJobRequest struct {
	RoundName string `json:"round_name"`
}

type candidateSlotDTO struct {
	Position     string    `json:"position"`
	CandidateIDs [4]string `json:"candidate_ids"`
	ChosenIndex  *int      `json:"chosen_index"`
}

type squadDTO struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	LeagueID  string             `json:"league_id"`
	RoundID   string             `json:"round_id"`
	Formation string             `json:"formation"`
	Slots     []candidateSlotDTO `json:"slots"`
	Finalized bool               `json:"finalized"`
}

type finalizedSquadDTO struct {
	Squad  squadDTO    `json:"squad"`
	Roster []playerDTO `json:"roster"`
}

type playerDTO struct {
	ID          string `json:"id"`
	TeamID      string `json:"team_id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Stars       int    `json:"stars"`
	TotalPoints int    `json:"total_points"`
	ImageURL    string `json:"image_url,omitempty"`
}

type roundPointsDTO struct {
	RoundID  string `json:"round_id"`
	PlayerID string `json:"player_id"`
	Points   int    `json:"points"`
}

func slotsFromDTO(items []candidateSlotDTO) []draft.CandidateSlot {
	out := make([]draft.CandidateSlot, 0, len(items))
	for _, item := range items {
		out = append(out, draft.CandidateSlot{
			Position:     player.Position(item.Position),
			CandidateIDs: item.CandidateIDs,
			ChosenIndex:  item.ChosenIndex,
		})
	}
	return out
}

func slotsToDTO(items []draft.CandidateSlot) []candidateSlotDTO {
	out := make([]candidateSlotDTO, 0, len(items))
	for _, item := range items {
		out = append(out, candidateSlotDTO{
			Position:     string(item.Position),
			CandidateIDs: item.CandidateIDs,
			ChosenIndex:  item.ChosenIndex,
		})
	}
	return out
}

func squadToDTO(squad draft.Squad) squadDTO {
	return squadDTO{
		ID:        squad.ID,
		UserID:    squad.UserID,
		LeagueID:  squad.LeagueID,
		RoundID:   squad.RoundID,
		Formation: squad.Formation,
		Slots:     slotsToDTO(squad.Slots),
		Finalized: squad.Finalized,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerDTO{
			ID:          item.ID,
			TeamID:      item.TeamID,
			Name:        item.Name,
			Position:    string(item.Position),
			Stars:       item.Stars,
			TotalPoints: item.TotalPoints,
			ImageURL:    item.ImageURL,
		})
	}
	return out
}
