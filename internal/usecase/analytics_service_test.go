package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/club-analytics/internal/domain/aggregate"
	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
	"github.com/riskibarqy/club-analytics/internal/domain/pitch"
	"github.com/stretchr/testify/require"
)

func newTestAnalytics(t *testing.T, src staticSource) *AnalyticsService {
	t.Helper()
	return NewAnalyticsService(newTestPipeline(t, PipelineConfig{CacheEnabled: true}, src))
}

func TestAnalyticsService_ShotSummaryEndToEnd(t *testing.T) {
	t.Parallel()

	src := clubSource()
	src.events = dataset.Table{
		Columns: []string{"team_id", "player_id", "type", "x", "y", "xg", "is_goal"},
		Rows: [][]any{
			{"38331", "7", "shot", 95, 50, 0.3, true},
			{"38331", "7", "shot", 60, 50, 0.05, false},
		},
	}
	svc := newTestAnalytics(t, src)

	events, err := svc.ListEvents(context.Background(), EventQuery{PlayerID: "7"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, pitch.ZoneSixYardBox, events[0].Zone)
	require.Equal(t, pitch.ZoneDeep, events[1].Zone)

	summary, err := svc.ShotSummary(context.Background(), "", "7")
	require.NoError(t, err)
	require.Equal(t, "Striker", summary.PlayerName)
	require.Equal(t, 90.0, summary.Minutes)
	require.Equal(t, 2, summary.Shots)
	require.Equal(t, 1, summary.Goals)
	require.InDelta(t, 0.35, summary.XG, 1e-9)
	require.InDelta(t, 0.175, summary.XGPerShot, 1e-9)
	require.InDelta(t, 2.0, summary.ShotsPer90, 1e-9)
	require.InDelta(t, 50.0, summary.Conversion, 1e-9)
	require.Len(t, summary.ByZone, 2)
	require.Equal(t, pitch.ZoneSixYardBox, summary.ByZone[0].Label)
}

func TestAnalyticsService_ShotSummaryUnknownPlayer(t *testing.T) {
	t.Parallel()

	svc := newTestAnalytics(t, clubSource())
	_, err := svc.ShotSummary(context.Background(), "", "999")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ShotSummary(context.Background(), "", " ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSummarizeShots_ZeroMinutesAndNoShots(t *testing.T) {
	t.Parallel()

	summary, err := SummarizeShots(nil, 0)
	require.NoError(t, err)
	require.Zero(t, summary.XGPerShot)
	require.Zero(t, summary.ShotsPer90)
	require.Zero(t, summary.Conversion)
	require.Empty(t, summary.ByZone)
}

func TestAnalyticsService_PlayerLeaderboard(t *testing.T) {
	t.Parallel()

	svc := newTestAnalytics(t, clubSource())
	ctx := context.Background()

	goals, err := svc.PlayerLeaderboard(ctx, LeaderboardQuery{Metric: "goals"})
	require.NoError(t, err)
	require.Len(t, goals, 1)
	require.Equal(t, "Striker", goals[0].Label)
	require.Equal(t, 1.0, goals[0].Value)

	// Player 9 is listed twice in the directory; de-duplication keeps one row
	// so minutes stay at 180 and the per-90 rate is 3 passes / 180 * 90.
	passes, err := svc.PlayerLeaderboard(ctx, LeaderboardQuery{Metric: "passes", Mode: aggregate.ModePer90})
	require.NoError(t, err)
	require.Len(t, passes, 1)
	require.Equal(t, []string{"9"}, passes[0].Key)
	require.Equal(t, 180.0, passes[0].Minutes)
	require.InDelta(t, 1.5, passes[0].Value, 1e-9)

	accuracy, err := svc.PlayerLeaderboard(ctx, LeaderboardQuery{Metric: "pass_accuracy"})
	require.NoError(t, err)
	require.Len(t, accuracy, 1)
	require.InDelta(t, 200.0/3.0, accuracy[0].Value, 1e-9)
}

func TestAnalyticsService_PlayerLeaderboardFullKeepsZeros(t *testing.T) {
	t.Parallel()

	svc := newTestAnalytics(t, clubSource())
	rows, err := svc.PlayerLeaderboard(context.Background(), LeaderboardQuery{Metric: "shots", Full: true})
	require.NoError(t, err)

	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.Label)
	}
	require.Equal(t, []string{"Striker", "Playmaker", "Rival Nine", "Unknown"}, labels)
	require.Zero(t, rows[1].Value)
}

func TestAnalyticsService_PlayerLeaderboardRejectsBadQueries(t *testing.T) {
	t.Parallel()

	svc := newTestAnalytics(t, clubSource())
	ctx := context.Background()

	_, err := svc.PlayerLeaderboard(ctx, LeaderboardQuery{Metric: "tackles"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.PlayerLeaderboard(ctx, LeaderboardQuery{Metric: "pass_accuracy", Mode: aggregate.ModePer90})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.PlayerLeaderboard(ctx, LeaderboardQuery{Metric: "goals", Mode: aggregate.ModePercentage})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalyticsService_ZoneBreakdown(t *testing.T) {
	t.Parallel()

	svc := newTestAnalytics(t, clubSource())
	rows, err := svc.ZoneBreakdown(context.Background(), ZoneQuery{Type: "pass"})
	require.NoError(t, err)
	require.Len(t, rows, 13)

	var total int
	var share float64
	for _, row := range rows {
		total += row.Count
		share += row.Share
	}
	require.Equal(t, 3, total)
	require.InDelta(t, 100.0, share, 1e-9)
	require.Equal(t, pitch.ZoneSixYardBox, rows[0].Zone)
	require.Zero(t, rows[0].Count)
}

func TestAnalyticsService_ComparePlayers(t *testing.T) {
	t.Parallel()

	svc := newTestAnalytics(t, clubSource())
	ctx := context.Background()

	got, err := svc.ComparePlayers(ctx, "", "7", "9")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Striker", got[0].Name)
	require.InDelta(t, 2.0, got[0].Values["shots"], 1e-9)
	require.InDelta(t, 1.5, got[1].Values["passes"], 1e-9)
	require.InDelta(t, 200.0/3.0, got[1].Values["pass_accuracy"], 1e-9)

	_, err = svc.ComparePlayers(ctx, "", "7")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ComparePlayers(ctx, "", "7", "404")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAnalyticsService_LeaderboardCountsEventsOncePerPlayer(t *testing.T) {
	t.Parallel()

	src := clubSource()
	src.players.Rows = append(src.players.Rows, []any{"7", "Striker", "38331", "FW", 45})
	svc := newTestAnalytics(t, src)
	ctx := context.Background()

	shots, err := svc.PlayerLeaderboard(ctx, LeaderboardQuery{Metric: "shots"})
	require.NoError(t, err)
	require.NotEmpty(t, shots)
	require.Equal(t, "Striker", shots[0].Label)
	require.Equal(t, 2.0, shots[0].Total)
	require.Equal(t, 135.0, shots[0].Minutes)

	summary, err := svc.ShotSummary(ctx, "", "7")
	require.NoError(t, err)
	require.Equal(t, summary.Shots, int(shots[0].Total))
}

type countingSnapshots struct {
	inner *PipelineService
	calls int
}

func (c *countingSnapshots) Snapshot(ctx context.Context, sourceID string) (Snapshot, error) {
	c.calls++
	return c.inner.Snapshot(ctx, sourceID)
}

func TestAnalyticsService_ZoneBreakdownReadsOneSnapshot(t *testing.T) {
	t.Parallel()

	snapshots := &countingSnapshots{inner: newTestPipeline(t, PipelineConfig{}, clubSource())}
	svc := NewAnalyticsService(snapshots)

	rows, err := svc.ZoneBreakdown(context.Background(), ZoneQuery{TeamID: "38331"})
	require.NoError(t, err)
	require.Len(t, rows, 13)
	require.Equal(t, 1, snapshots.calls)
}
