package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/club-analytics/internal/platform/logging"
)

func TestRequestLogging_RequestID(t *testing.T) {
	var seen int
	h := RequestLogging(logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		seen = http.StatusTeapot
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("minted when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/zones", nil))

		require.Equal(t, http.StatusTeapot, seen)
		_, err := uuid.Parse(rec.Header().Get(requestIDHeader))
		require.NoError(t, err)
	})

	t.Run("caller id kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/zones", nil)
		req.Header.Set(requestIDHeader, " dash-42 ")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "dash-42", rec.Header().Get(requestIDHeader))
	})
}
