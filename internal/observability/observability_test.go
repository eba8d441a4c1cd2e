package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/club-analytics/internal/config"
	"github.com/riskibarqy/club-analytics/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "club-analytics-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if srv != nil {
		t.Fatalf("expected no server when pprof is disabled")
	}
	if err := StopPprofServer(srv, logging.NewNop(), time.Second); err != nil {
		t.Fatalf("stop pprof: %v", err)
	}
}

func TestPyroscopeConfig_TagsDataSource(t *testing.T) {
	got := pyroscopeConfig(config.Config{
		AppEnv:           config.EnvProd,
		ServiceName:      "club-analytics-api",
		DataSource:       config.DataSourceWarehouse,
		PyroscopeAppName: "club-analytics",
	})
	if got.Tags["data_source"] != config.DataSourceWarehouse {
		t.Fatalf("unexpected data_source tag: %q", got.Tags["data_source"])
	}
	if got.ApplicationName != "club-analytics" {
		t.Fatalf("unexpected application name: %q", got.ApplicationName)
	}
}

func TestDebugMux_ServesPprofIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	newDebugMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestUptraceOptions_IncludeResourceAttributes(t *testing.T) {
	opts := uptraceOptions(config.Config{
		UptraceDSN:  "https://token@api.uptrace.dev",
		ServiceName: "club-analytics-api",
		DataSource:  config.DataSourceCSV,
	})
	if len(opts) != 6 {
		t.Fatalf("expected 6 uptrace options, got %d", len(opts))
	}
}
