package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndolgov/stepline/internal/repo"
)

func TestHandleRepoError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		handled    bool
	}{
		{"nil error", nil, 0, "", false},
		{"not found", repo.ErrNotFound, http.StatusNotFound, "NOT_FOUND", true},
		{"wrapped not found", fmt.Errorf("get workflow: %w", repo.ErrNotFound), http.StatusNotFound, "NOT_FOUND", true},
		{"already exists", repo.ErrAlreadyExists, http.StatusConflict, "CONFLICT", true},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			handled := HandleRepoError(rec, logger, tt.err, "missing")
			if handled != tt.handled {
				t.Fatalf("expected handled=%v, got %v", tt.handled, handled)
			}
			if !tt.handled {
				return
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if string(resp.Error.Code) != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestCycleDetected(t *testing.T) {
	rec := httptest.NewRecorder()

	CycleDetected(rec, "cycle detected")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error.Code != ErrCodeCycleDetected {
		t.Errorf("expected CYCLE_DETECTED, got %s", resp.Error.Code)
	}
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	Success(rec, ExecutionOrderResponse{Order: []string{"a", "b"}})

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var resp struct {
		Data ExecutionOrderResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Order) != 2 || resp.Data.Order[0] != "a" {
		t.Errorf("unexpected payload: %+v", resp.Data)
	}
}

// testWriter перенаправляет логи в t.Log.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
