package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/fantasy-draft/internal/domain/user"
	"github.com/riskibarqy/fantasy-draft/internal/usecase"
)

type staticVerifier struct {
	principal user.Principal
	err       error
}

func (v staticVerifier) VerifyAccessToken(_ context.Context, _ string) (user.Principal, error) {
	if v.err != nil {
		return user.Principal{}, v.err
	}
	return v.principal, nil
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	var captured user.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromContext(r.Context())
		if !ok {
			t.Fatal("principal missing from request context")
		}
		captured = principal
		w.WriteHeader(http.StatusNoContent)
	})

	handler := RequireAuth(staticVerifier{principal: user.Principal{UserID: "user-1", Email: "u@example.com"}}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/rounds/points", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d, want 204", rec.Code)
	}
	if captured.UserID != "user-1" {
		t.Fatalf("principal user %s, want user-1", captured.UserID)
	}

	// Missing and malformed headers never reach the handler.
	for _, header := range []string{"", "token-123", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/rounds/points", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status %d, want 401", header, rec.Code)
		}
	}

	rejecting := RequireAuth(staticVerifier{err: fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)}, next)
	req = httptest.NewRequest(http.MethodGet, "/v1/rounds/points", nil)
	req.Header.Set("Authorization", "Bearer token-123")
	rec = httptest.NewRecorder()
	rejecting.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("rejected token: status %d, want 401", rec.Code)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	handler := RequireInternalJobToken("job-secret", next)

	req := httptest.NewRequest(http.MethodPost, "/internal/jobs/score-round", nil)
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status %d, want 202", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/internal/jobs/score-round", nil)
	req.Header.Set("X-Internal-Job-Token", "wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: status %d, want 401", rec.Code)
	}

	// An unconfigured token disables the internal surface entirely.
	unconfigured := RequireInternalJobToken("", next)
	req = httptest.NewRequest(http.MethodPost, "/internal/jobs/score-round", nil)
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec = httptest.NewRecorder()
	unconfigured.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unconfigured token: status %d, want 503", rec.Code)
	}
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz"} {
		if shouldTraceRequest(path) {
			t.Fatalf("health path %s should not be traced", path)
		}
	}
	if !shouldTraceRequest("/v1/drafts") {
		t.Fatal("api path should be traced")
	}
}
