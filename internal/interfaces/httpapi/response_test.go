package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
	"github.com/riskibarqy/club-analytics/internal/usecase"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body["apiVersion"] != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestMapError(t *testing.T) {
	_, dupErr := dataset.NormalizeColumns(dataset.Table{Name: "events", Columns: []string{"type", "TYPE"}})

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
	}{
		{"invalid input", fmt.Errorf("%w: bad metric", usecase.ErrInvalidInput), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"not found", fmt.Errorf("%w: player 7", usecase.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"source down", fmt.Errorf("%w: source csv: %w", usecase.ErrDependencyUnavailable, errors.New("EOF")), http.StatusServiceUnavailable, "UNAVAILABLE"},
		{"duplicate column", dupErr, http.StatusUnprocessableEntity, "FAILED_PRECONDITION"},
		{"precondition", dataset.NewPreconditionError("x out of range"), http.StatusBadRequest, "FAILED_PRECONDITION"},
		{"config", dataset.NewConfigError("metric", "unknown metric"), http.StatusInternalServerError, "INTERNAL"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), tt.err)
			if got.HTTPStatus != tt.wantCode || got.Status != tt.wantStatus {
				t.Fatalf("mapError(%v) = %d %s, want %d %s", tt.err, got.HTTPStatus, got.Status, tt.wantCode, tt.wantStatus)
			}
		})
	}
}

func TestWriteError_CarriesReason(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: unknown source", usecase.ErrNotFound))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body envelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if body.Error == nil || len(body.Error.Errors) != 1 || body.Error.Errors[0].Reason != "notFound" {
		t.Fatalf("unexpected error body: %+v", body.Error)
	}
	if body.Error.Errors[0].Domain != errorDomain {
		t.Fatalf("unexpected domain: %s", body.Error.Errors[0].Domain)
	}
}

func TestWriteCSV(t *testing.T) {
	rec := httptest.NewRecorder()
	writeCSV(context.Background(), rec, "goals.csv", []string{"player", "value"}, [][]string{{"Reyes, T.", "2"}})

	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="goals.csv"` {
		t.Fatalf("unexpected disposition: %s", got)
	}
	if got := rec.Body.String(); got != "player,value\n\"Reyes, T.\",2\n" {
		t.Fatalf("unexpected csv body: %q", got)
	}
}
