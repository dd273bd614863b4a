package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-draft/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	internalJobToken string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)

	mux.Handle("POST /v1/drafts", RequireAuth(verifier, http.HandlerFunc(handler.CreateDraft)))
	mux.Handle("PUT /v1/drafts/{squadID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateDraft)))
	mux.Handle("POST /v1/drafts/{squadID}/finalize", RequireAuth(verifier, http.HandlerFunc(handler.FinalizeDraft)))
	mux.Handle("GET /v1/leagues/{leagueID}/squad", RequireAuth(verifier, http.HandlerFunc(handler.GetFinalizedSquad)))
	mux.Handle("GET /v1/rounds/points", RequireAuth(verifier, http.HandlerFunc(handler.GetRoundPoints)))

	mux.Handle("POST /internal/jobs/score-round", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScoreRoundJob)))
	mux.Handle("POST /internal/jobs/sync-rounds", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncRoundsJob)))

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
