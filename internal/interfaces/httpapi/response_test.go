package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/riskibarqy/fantasy-draft/internal/domain/draft"
	"github.com/riskibarqy/fantasy-draft/internal/usecase"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "conflict", err: fmt.Errorf("%w: duplicate", usecase.ErrConflict), wantStatus: http.StatusConflict, wantReason: "conflict"},
		{name: "not found", err: fmt.Errorf("%w: squad", usecase.ErrNotFound), wantStatus: http.StatusNotFound, wantReason: "notFound"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantReason: "unauthorized"},
		{name: "dependency unavailable", err: usecase.ErrDependencyUnavailable, wantStatus: http.StatusServiceUnavailable, wantReason: "dependencyUnavailable"},
		{name: "unsupported formation", err: draft.ErrUnsupportedFormation, wantStatus: http.StatusBadRequest, wantReason: "invalidDraft"},
		{name: "missing selection", err: draft.ErrMissingSelection, wantStatus: http.StatusBadRequest, wantReason: "invalidDraft"},
		{name: "duplicate player", err: draft.ErrDuplicatePlayer, wantStatus: http.StatusBadRequest, wantReason: "invalidDraft"},
		{name: "insufficient candidates", err: draft.ErrInsufficientCandidates, wantStatus: http.StatusBadRequest, wantReason: "invalidDraft"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantReason: "internalError"},
	}

	for _, tc := range cases {
		mapped := mapError(tc.err)
		if mapped.HTTPStatus != tc.wantStatus {
			t.Fatalf("%s: status %d, want %d", tc.name, mapped.HTTPStatus, tc.wantStatus)
		}
		if mapped.Reason != tc.wantReason {
			t.Fatalf("%s: reason %s, want %s", tc.name, mapped.Reason, tc.wantReason)
		}
	}
}
