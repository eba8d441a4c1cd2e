package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/club-analytics/internal/config"
	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
	"github.com/riskibarqy/club-analytics/internal/platform/logging"
	"github.com/riskibarqy/club-analytics/internal/platform/metrics"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		HTTPAddr:           ":0",
		DataSource:         config.DataSourceMemory,
		CORSAllowedOrigins: []string{"*"},
		CacheEnabled:       true,
		WarmupWorkers:      1,
	}
}

func TestNewHTTPServer_MemorySourceServesMetrics(t *testing.T) {
	svc, err := NewHTTPServer(memoryConfig(), logging.NewNop(), metrics.NewPipeline())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	rec := httptest.NewRecorder()
	svc.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/snapshot", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	svc.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "club_analytics_pipeline_snapshots_total"))
}

func TestNewHTTPServer_RejectsBadWiring(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	_, err := NewHTTPServer(cfg, nil, nil)
	require.Error(t, err)

	cfg = memoryConfig()
	cfg.DataSource = config.DataSourceCSV
	_, err = NewHTTPServer(cfg, nil, nil)
	require.Equal(t, dataset.KindConfig, dataset.KindOf(err))

	cfg = memoryConfig()
	cfg.ZonesFile = "does-not-exist.yaml"
	_, err = NewHTTPServer(cfg, nil, nil)
	require.Error(t, err)
}

func TestApprovedTeams(t *testing.T) {
	require.True(t, approvedTeams(config.Config{ApprovedTeamIDs: []string{"*"}}).Allows("999"))

	seed := approvedTeams(config.Config{DataSource: config.DataSourceMemory})
	require.True(t, seed.Allows("38331"))
	require.False(t, seed.Allows("40"))

	explicit := approvedTeams(config.Config{DataSource: config.DataSourceCSV, ApprovedTeamIDs: []string{"40.0"}})
	require.True(t, explicit.Allows("40"))
}
