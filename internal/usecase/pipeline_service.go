package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
	"github.com/riskibarqy/club-analytics/internal/domain/matchevent"
	"github.com/riskibarqy/club-analytics/internal/domain/pitch"
	"github.com/riskibarqy/club-analytics/internal/domain/player"
	"github.com/riskibarqy/club-analytics/internal/domain/team"
	"github.com/riskibarqy/club-analytics/internal/platform/cache"
	"github.com/riskibarqy/club-analytics/internal/platform/logging"
)

const snapshotCachePrefix = "snapshot:"

// Snapshot is one fully cleaned, joined and zoned view of a source. It is
// immutable once published; callers must not modify its slices.
type Snapshot struct {
	SourceID    string
	BuiltAt     time.Time
	Events      []matchevent.Event
	Teams       team.Directory
	Players     []player.Player
	Directory   player.Directory
	Zones       []string
	PreEnriched bool
	Drops       matchevent.Drops
}

// DropCounts flattens the drop counters for logs and metrics.
func (s Snapshot) DropCounts() map[string]int {
	return map[string]int{
		"missing_type":     s.Drops.MissingType,
		"invalid_location": s.Drops.InvalidLocation,
		"unapproved_team":  s.Drops.UnapprovedTeam,
		"unknown_player":   s.Drops.UnknownPlayer,
	}
}

type snapshotObserver interface {
	ObserveSnapshot(source string, took time.Duration, events int, drops map[string]int, err error)
	cache.Observer
}

type PipelineConfig struct {
	ApprovedTeams matchevent.TeamFilter
	CacheEnabled  bool
	CacheTTL      time.Duration
	WarmupWorkers int
}

// PipelineService turns raw source tables into snapshots and caches them per
// source. Concurrent requests for the same cold source share one build.
type PipelineService struct {
	sources    map[string]Source
	order      []string
	classifier *pitch.Classifier
	cfg        PipelineConfig
	store      *cache.Store[Snapshot]
	observer   snapshotObserver
	logger     *logging.Logger
	now        func() time.Time
}

func NewPipelineService(
	sources []Source,
	classifier *pitch.Classifier,
	cfg PipelineConfig,
	observer snapshotObserver,
	logger *logging.Logger,
) (*PipelineService, error) {
	if classifier == nil {
		return nil, fmt.Errorf("%w: zone classifier is required", ErrInvalidInput)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: at least one data source is required", ErrInvalidInput)
	}
	if logger == nil {
		logger = logging.Default()
	}

	svc := &PipelineService{
		sources:    make(map[string]Source, len(sources)),
		order:      make([]string, 0, len(sources)),
		classifier: classifier,
		cfg:        cfg,
		observer:   observer,
		logger:     logger.Named("pipeline"),
		now:        time.Now,
	}
	for _, src := range sources {
		if src == nil {
			continue
		}
		id := strings.TrimSpace(src.ID())
		if id == "" {
			return nil, fmt.Errorf("%w: data source id is required", ErrInvalidInput)
		}
		if _, exists := svc.sources[id]; exists {
			return nil, fmt.Errorf("%w: duplicate data source %q", ErrInvalidInput, id)
		}
		svc.sources[id] = src
		svc.order = append(svc.order, id)
	}
	if len(svc.order) == 0 {
		return nil, fmt.Errorf("%w: at least one data source is required", ErrInvalidInput)
	}

	if cfg.CacheEnabled {
		opts := []cache.Option[Snapshot]{}
		if observer != nil {
			opts = append(opts, cache.WithObserver[Snapshot](observer))
		}
		svc.store = cache.NewStore[Snapshot](cfg.CacheTTL, opts...)
	}

	return svc, nil
}

// DefaultSourceID is the first configured source.
func (s *PipelineService) DefaultSourceID() string {
	return s.order[0]
}

func (s *PipelineService) SourceIDs() []string {
	return append([]string(nil), s.order...)
}

func (s *PipelineService) Classifier() *pitch.Classifier {
	return s.classifier
}

// Snapshot returns the cached snapshot for sourceID, building it on a miss.
// An empty sourceID selects the default source.
func (s *PipelineService) Snapshot(ctx context.Context, sourceID string) (Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Snapshot")
	defer span.End()

	id, err := s.resolveSourceID(sourceID)
	if err != nil {
		return Snapshot{}, err
	}
	span.SetAttributes(attribute.String("source.id", id))

	if s.store == nil {
		return s.Build(ctx, id)
	}
	return s.store.GetOrLoad(ctx, snapshotCachePrefix+id, func(ctx context.Context) (Snapshot, error) {
		return s.Build(ctx, id)
	})
}

// Refresh drops the cached snapshot for sourceID and rebuilds it.
func (s *PipelineService) Refresh(ctx context.Context, sourceID string) (Snapshot, error) {
	id, err := s.resolveSourceID(sourceID)
	if err != nil {
		return Snapshot{}, err
	}
	s.Invalidate(ctx, id)
	return s.Snapshot(ctx, id)
}

// Invalidate drops cached snapshots; an empty sourceID drops all of them.
func (s *PipelineService) Invalidate(ctx context.Context, sourceID string) {
	if s.store == nil {
		return
	}
	if strings.TrimSpace(sourceID) == "" {
		s.store.InvalidatePrefix(ctx, snapshotCachePrefix)
		return
	}
	s.store.Invalidate(ctx, snapshotCachePrefix+strings.TrimSpace(sourceID))
}

// Warm builds every configured source on a bounded worker pool.
func (s *PipelineService) Warm(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Warm")
	defer span.End()

	workers := s.cfg.WarmupWorkers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(s.order) {
		workers = len(s.order)
	}

	workerPool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("create warm-up worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, id := range s.order {
		id := id
		wg.Add(1)
		if err := workerPool.Submit(func() {
			defer wg.Done()
			if _, err := s.Snapshot(ctx, id); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("warm source %s: %w", id, err))
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, fmt.Errorf("submit warm-up for %s: %w", id, err))
			mu.Unlock()
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}

// Build loads and cleans a source without touching the cache.
func (s *PipelineService) Build(ctx context.Context, sourceID string) (Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Build")
	defer span.End()

	src, ok := s.sources[sourceID]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: data source %q", ErrNotFound, sourceID)
	}

	started := s.now()
	snap, err := s.build(ctx, src)
	took := s.now().Sub(started)
	if s.observer != nil {
		s.observer.ObserveSnapshot(sourceID, took, len(snap.Events), snap.DropCounts(), err)
	}
	if err != nil {
		span.RecordError(err)
		s.logger.WarnContext(ctx, "snapshot build failed",
			"source", sourceID,
			"error", err,
			"took", took,
		)
		return Snapshot{}, err
	}

	s.logger.InfoContext(ctx, "snapshot built",
		"source", sourceID,
		"events", len(snap.Events),
		"teams", len(snap.Teams),
		"players", len(snap.Players),
		"dropped_missing_type", snap.Drops.MissingType,
		"dropped_invalid_location", snap.Drops.InvalidLocation,
		"dropped_unapproved_team", snap.Drops.UnapprovedTeam,
		"unknown_player", snap.Drops.UnknownPlayer,
		"took", took,
	)
	return snap, nil
}

type rawTables struct {
	events  dataset.Table
	teams   dataset.Table
	players dataset.Table
}

func (s *PipelineService) build(ctx context.Context, src Source) (Snapshot, error) {
	raw, err := loadTables(ctx, src)
	if err != nil {
		return Snapshot{}, err
	}

	teams, err := team.FromTable(raw.teams)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read team directory from %s: %w", src.ID(), err)
	}
	players, err := player.FromTable(raw.players)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read player directory from %s: %w", src.ID(), err)
	}
	set, err := matchevent.FromTable(raw.events)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read events from %s: %w", src.ID(), err)
	}

	teamDir := team.NewDirectory(teams)
	playerDir := player.NewDirectory(players)
	set = matchevent.FilterAndJoin(set, s.cfg.ApprovedTeams, playerDir, teamDir)
	set = matchevent.AssignZones(set, s.classifier)

	zones := s.classifier.Zones()
	zoneNames := make([]string, 0, len(zones))
	for _, z := range zones {
		zoneNames = append(zoneNames, z.Name)
	}

	return Snapshot{
		SourceID:    src.ID(),
		BuiltAt:     s.now().UTC(),
		Events:      set.Events,
		Teams:       teamDir,
		Players:     players,
		Directory:   playerDir,
		Zones:       zoneNames,
		PreEnriched: set.PreEnriched,
		Drops:       set.Drops,
	}, nil
}

// loadTables fetches the three raw tables concurrently; the first failure
// cancels the others.
func loadTables(ctx context.Context, src Source) (rawTables, error) {
	var out rawTables
	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		t, err := src.LoadEvents(ctx)
		if err != nil {
			return fmt.Errorf("load events: %w", err)
		}
		out.events = t
		return nil
	})
	p.Go(func(ctx context.Context) error {
		t, err := src.LoadTeams(ctx)
		if err != nil {
			return fmt.Errorf("load teams: %w", err)
		}
		out.teams = t
		return nil
	})
	p.Go(func(ctx context.Context) error {
		t, err := src.LoadPlayers(ctx)
		if err != nil {
			return fmt.Errorf("load players: %w", err)
		}
		out.players = t
		return nil
	})

	if err := p.Wait(); err != nil {
		return rawTables{}, fmt.Errorf("%w: source %s: %w", ErrDependencyUnavailable, src.ID(), err)
	}
	return out, nil
}

func (s *PipelineService) resolveSourceID(sourceID string) (string, error) {
	id := strings.TrimSpace(sourceID)
	if id == "" {
		return s.DefaultSourceID(), nil
	}
	if _, ok := s.sources[id]; !ok {
		known := s.SourceIDs()
		sort.Strings(known)
		return "", fmt.Errorf("%w: data source %q (known: %s)", ErrNotFound, id, strings.Join(known, ", "))
	}
	return id, nil
}
