package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/club-analytics/internal/config"
	"github.com/riskibarqy/club-analytics/internal/domain/matchevent"
	"github.com/riskibarqy/club-analytics/internal/domain/pitch"
	"github.com/riskibarqy/club-analytics/internal/infrastructure/source/csvsource"
	"github.com/riskibarqy/club-analytics/internal/infrastructure/source/memory"
	"github.com/riskibarqy/club-analytics/internal/infrastructure/source/warehouse"
	"github.com/riskibarqy/club-analytics/internal/interfaces/httpapi"
	"github.com/riskibarqy/club-analytics/internal/platform/logging"
	"github.com/riskibarqy/club-analytics/internal/platform/metrics"
	"github.com/riskibarqy/club-analytics/internal/platform/resilience"
	"github.com/riskibarqy/club-analytics/internal/usecase"
)

// App is the assembled HTTP service. Close releases the warehouse connection
// when one was opened.
type App struct {
	Server   *http.Server
	Pipeline *usecase.PipelineService
	db       *sqlx.DB
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// NewHTTPServer wires the configured source, the pipeline and the router.
// pipelineMetrics may be nil when metrics are disabled.
func NewHTTPServer(cfg config.Config, logger *logging.Logger, pipelineMetrics *metrics.Pipeline) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	classifier, err := newClassifier(cfg)
	if err != nil {
		return nil, err
	}

	out := &App{}
	source, db, err := newSource(cfg)
	if err != nil {
		return nil, err
	}
	out.db = db

	pipeline, err := usecase.NewPipelineService(
		[]usecase.Source{source},
		classifier,
		usecase.PipelineConfig{
			ApprovedTeams: approvedTeams(cfg),
			CacheEnabled:  cfg.CacheEnabled,
			CacheTTL:      cfg.CacheTTL,
			WarmupWorkers: cfg.WarmupWorkers,
		},
		pipelineMetrics,
		logger,
	)
	if err != nil {
		_ = out.Close()
		return nil, err
	}
	out.Pipeline = pipeline

	var metricsHandler http.Handler
	if pipelineMetrics != nil {
		metricsHandler = pipelineMetrics.Handler()
	}

	handler := httpapi.NewHandler(pipeline, usecase.NewAnalyticsService(pipeline), logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, metricsHandler)

	out.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"data_source", source.ID(),
		"zones", len(classifier.Zones()),
		"cache_enabled", cfg.CacheEnabled,
		"metrics_enabled", pipelineMetrics != nil,
	)
	return out, nil
}

func newClassifier(cfg config.Config) (*pitch.Classifier, error) {
	if cfg.ZonesFile != "" {
		return pitch.LoadClassifierFile(cfg.ZonesFile)
	}
	return pitch.DefaultClassifier()
}

// approvedTeams treats "*" as every team. The in-memory seed approves every
// team when no list is configured so a bare local run shows data.
func approvedTeams(cfg config.Config) matchevent.TeamFilter {
	if cfg.AllTeamsApproved() {
		return matchevent.AllowAllTeams()
	}
	if len(cfg.ApprovedTeamIDs) == 0 && cfg.DataSource == config.DataSourceMemory {
		return matchevent.NewTeamFilter(memory.SeedClubTeamID)
	}

	ids := make([]any, 0, len(cfg.ApprovedTeamIDs))
	for _, id := range cfg.ApprovedTeamIDs {
		ids = append(ids, id)
	}
	return matchevent.NewTeamFilter(ids...)
}

func newSource(cfg config.Config) (usecase.Source, *sqlx.DB, error) {
	switch cfg.DataSource {
	case config.DataSourceCSV:
		src, err := csvsource.New(csvsource.Config{
			EventsPath:  cfg.CSVEventsPath,
			TeamsPath:   cfg.CSVTeamsPath,
			PlayersPath: cfg.CSVPlayersPath,
		})
		if err != nil {
			return nil, nil, err
		}
		return src, nil, nil
	case config.DataSourceWarehouse:
		db, err := openWarehouse(cfg)
		if err != nil {
			return nil, nil, err
		}
		breaker := resilience.NewBreaker(cfg.WarehouseBreakerFailures, cfg.WarehouseBreakerCooldown)
		return warehouse.New(db, cfg.WarehouseSeason, breaker), db, nil
	default:
		return memory.NewSeedSource(), nil, nil
	}
}
