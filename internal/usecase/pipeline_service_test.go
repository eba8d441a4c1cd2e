package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
	"github.com/riskibarqy/club-analytics/internal/domain/matchevent"
	"github.com/riskibarqy/club-analytics/internal/domain/pitch"
	usecasemock "github.com/riskibarqy/club-analytics/internal/mocks/usecase"
	"github.com/riskibarqy/club-analytics/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	id      string
	events  dataset.Table
	teams   dataset.Table
	players dataset.Table
}

func (s staticSource) ID() string { return s.id }

func (s staticSource) LoadEvents(context.Context) (dataset.Table, error) { return s.events, nil }

func (s staticSource) LoadTeams(context.Context) (dataset.Table, error) { return s.teams, nil }

func (s staticSource) LoadPlayers(context.Context) (dataset.Table, error) { return s.players, nil }

func clubSource() staticSource {
	return staticSource{
		id: "club",
		events: dataset.Table{
			Name:    "events",
			Columns: []string{"team_id", "player_id", "type", "outcome", "x", "y", "xg", "is_goal"},
			Rows: [][]any{
				{"38331", "7", "shot", "", 95.0, 50.0, 0.3, true},
				{"38331", "7", "shot", "", 60.0, 50.0, 0.05, false},
				{38331, 9.0, "pass", "complete", 40, 30, nil, nil},
				{"38331", "9", "pass", "incomplete", 70, 30, nil, nil},
				{"38331", "9", "pass", "complete", 72, 10, nil, nil},
				{"38331", "12", "duel", "won", 20, 80, nil, nil},
				{"40", "11", "shot", "", 88, 40, 0.2, false},
				{"38331", "", "", "", 50, 50, nil, nil},
			},
		},
		teams: dataset.Table{
			Name:    "teams",
			Columns: []string{"TEAM_ID", "TEAM_NAME"},
			Rows: [][]any{
				{"38331", "Home FC"},
				{"40", "Rivals"},
			},
		},
		players: dataset.Table{
			Name:    "players",
			Columns: []string{"player_id", "name", "team_id", "position", "minutes"},
			Rows: [][]any{
				{"7", "Striker", "38331", "FW", 90},
				{"9", "Playmaker", "38331", "MF", 180},
				{"9.0", "Playmaker", "38331", "MF", 180},
				{"11", "Rival Nine", "40", "FW", 90},
			},
		},
	}
}

func newTestPipeline(t *testing.T, cfg PipelineConfig, sources ...Source) *PipelineService {
	t.Helper()

	classifier, err := pitch.DefaultClassifier()
	require.NoError(t, err)
	if cfg.ApprovedTeams.Len() == 0 {
		cfg.ApprovedTeams = matchevent.NewTeamFilter("38331")
	}
	svc, err := NewPipelineService(sources, classifier, cfg, nil, logging.NewNop())
	require.NoError(t, err)
	return svc
}

func TestPipelineService_SnapshotCleansJoinsAndZones(t *testing.T) {
	t.Parallel()

	svc := newTestPipeline(t, PipelineConfig{}, clubSource())
	snap, err := svc.Snapshot(context.Background(), "")
	require.NoError(t, err)

	require.Equal(t, "club", snap.SourceID)
	require.Len(t, snap.Events, 6)
	require.Equal(t, matchevent.Drops{MissingType: 1, UnapprovedTeam: 1, UnknownPlayer: 1}, snap.Drops)
	require.Equal(t, "Unknown", snap.Events[5].PlayerName)

	first := snap.Events[0]
	require.Equal(t, "Home FC", first.TeamName)
	require.Equal(t, "Striker", first.PlayerName)
	require.Equal(t, pitch.ZoneSixYardBox, first.Zone)
	require.Equal(t, pitch.ZoneDeep, snap.Events[1].Zone)
	require.Equal(t, "9", snap.Events[2].PlayerID)
	require.Equal(t, "Playmaker", snap.Events[2].PlayerName)
	require.Len(t, snap.Zones, 13)
}

func TestPipelineService_SnapshotIsCachedUntilInvalidated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := usecasemock.NewSource(t)
	base := clubSource()
	src.On("ID").Return("club").Maybe()
	src.On("LoadEvents", mock.Anything).Return(base.events, nil).Twice()
	src.On("LoadTeams", mock.Anything).Return(base.teams, nil).Twice()
	src.On("LoadPlayers", mock.Anything).Return(base.players, nil).Twice()

	svc := newTestPipeline(t, PipelineConfig{CacheEnabled: true, CacheTTL: time.Hour}, src)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Snapshot(ctx, "club")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	_, err := svc.Refresh(ctx, "club")
	require.NoError(t, err)
	_, err = svc.Snapshot(ctx, "club")
	require.NoError(t, err)
}

func TestPipelineService_LoaderFailureIsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	src := usecasemock.NewSource(t)
	base := clubSource()
	src.On("ID").Return("warehouse").Maybe()
	src.On("LoadEvents", mock.Anything).Return(dataset.Table{}, errors.New("connection refused"))
	src.On("LoadTeams", mock.Anything).Return(base.teams, nil).Maybe()
	src.On("LoadPlayers", mock.Anything).Return(base.players, nil).Maybe()

	svc := newTestPipeline(t, PipelineConfig{}, src)
	_, err := svc.Snapshot(context.Background(), "warehouse")
	require.ErrorIs(t, err, ErrDependencyUnavailable)
	require.ErrorContains(t, err, "connection refused")
}

func TestPipelineService_SchemaErrorsKeepTheirKind(t *testing.T) {
	t.Parallel()

	src := clubSource()
	src.events = dataset.Table{
		Columns: []string{"team_id", "player_id", "x"},
		Rows:    [][]any{{"38331", "7", 10}},
	}
	svc := newTestPipeline(t, PipelineConfig{}, src)

	_, err := svc.Snapshot(context.Background(), "club")
	require.Error(t, err)
	require.Equal(t, dataset.KindSchema, dataset.KindOf(err))

	var schemaErr *dataset.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, []string{"TYPE"}, schemaErr.Missing)
}

func TestPipelineService_DuplicateColumnsAreRejected(t *testing.T) {
	t.Parallel()

	src := clubSource()
	src.teams = dataset.Table{
		Columns: []string{"team_id ", "TEAM_ID", "name"},
		Rows:    [][]any{{"1", "1", "x"}},
	}
	svc := newTestPipeline(t, PipelineConfig{}, src)

	_, err := svc.Snapshot(context.Background(), "club")
	require.Equal(t, dataset.KindDuplicateColumn, dataset.KindOf(err))
}

func TestPipelineService_UnknownSource(t *testing.T) {
	t.Parallel()

	svc := newTestPipeline(t, PipelineConfig{}, clubSource())
	_, err := svc.Snapshot(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPipelineService_WarmBuildsEverySource(t *testing.T) {
	t.Parallel()

	a := clubSource()
	b := clubSource()
	b.id = "reserves"
	broken := clubSource()
	broken.id = "broken"
	broken.players = dataset.Table{Columns: []string{"foo"}}

	svc := newTestPipeline(t, PipelineConfig{CacheEnabled: true, WarmupWorkers: 4}, a, b, broken)
	err := svc.Warm(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "broken")
	require.Equal(t, []string{"club", "reserves", "broken"}, svc.SourceIDs())
	require.Equal(t, "club", svc.DefaultSourceID())
}

func TestNewPipelineService_RejectsDuplicateSources(t *testing.T) {
	t.Parallel()

	classifier, err := pitch.DefaultClassifier()
	require.NoError(t, err)

	_, err = NewPipelineService([]Source{clubSource(), clubSource()}, classifier, PipelineConfig{}, nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewPipelineService(nil, classifier, PipelineConfig{}, nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}
