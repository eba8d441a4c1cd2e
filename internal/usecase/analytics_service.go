package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/club-analytics/internal/domain/aggregate"
	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
	"github.com/riskibarqy/club-analytics/internal/domain/matchevent"
	"github.com/riskibarqy/club-analytics/internal/domain/pitch"
)

type snapshotProvider interface {
	Snapshot(ctx context.Context, sourceID string) (Snapshot, error)
}

// AnalyticsService answers read queries against the current snapshot.
type AnalyticsService struct {
	snapshots snapshotProvider
}

func NewAnalyticsService(snapshots snapshotProvider) *AnalyticsService {
	return &AnalyticsService{snapshots: snapshots}
}

type EventQuery struct {
	SourceID string
	TeamID   string
	PlayerID string
	Zone     string
	Type     string
}

// ListEvents returns clean events matching every non-empty filter.
func (s *AnalyticsService) ListEvents(ctx context.Context, q EventQuery) ([]matchevent.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.ListEvents")
	defer span.End()

	snap, err := s.snapshots.Snapshot(ctx, q.SourceID)
	if err != nil {
		return nil, err
	}
	return filterEvents(snap, q), nil
}

func filterEvents(snap Snapshot, q EventQuery) []matchevent.Event {
	teamID := normalizeFilterID(q.TeamID)
	playerID := normalizeFilterID(q.PlayerID)
	eventType := strings.ToLower(strings.TrimSpace(q.Type))
	zone := strings.TrimSpace(q.Zone)

	out := make([]matchevent.Event, 0, len(snap.Events))
	for _, ev := range snap.Events {
		if teamID != "" && ev.TeamID != teamID {
			continue
		}
		if playerID != "" && ev.PlayerID != playerID {
			continue
		}
		if eventType != "" && ev.Type != eventType {
			continue
		}
		if zone != "" && !strings.EqualFold(ev.Zone, zone) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

type LeaderboardQuery struct {
	SourceID string
	Metric   string
	Mode     aggregate.Mode
	// Limit <= 0 returns every non-zero row.
	Limit int
	// Full keeps zero rows and input order, for table views.
	Full bool
}

// PlayerLeaderboard ranks players on one metric. Percentage metrics ignore
// Mode; asking for per-90 on them is rejected.
func (s *AnalyticsService) PlayerLeaderboard(ctx context.Context, q LeaderboardQuery) ([]aggregate.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.PlayerLeaderboard")
	defer span.End()

	def, ok := LookupPlayerMetric(strings.ToLower(strings.TrimSpace(q.Metric)))
	if !ok {
		return nil, fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, q.Metric)
	}
	spec, err := leaderboardSpec(def, q.Mode)
	if err != nil {
		return nil, err
	}

	snap, err := s.snapshots.Snapshot(ctx, q.SourceID)
	if err != nil {
		return nil, err
	}

	rows, err := aggregate.Aggregate(BuildPlayerRecords(snap), spec)
	if err != nil {
		return nil, err
	}
	if q.Full {
		return rows, nil
	}
	return aggregate.Leaderboard(rows, q.Limit), nil
}

func leaderboardSpec(def MetricDef, mode aggregate.Mode) (aggregate.Spec, error) {
	spec := aggregate.Spec{
		GroupBy:  []string{dimPlayerID},
		LabelDim: dimPlayer,
		Metric:   def.Metric,
		Mode:     mode,
		Identity: playerIdentity,
	}
	if def.Percentage {
		if mode != "" && mode != aggregate.ModePercentage && mode != aggregate.ModeTotal {
			return aggregate.Spec{}, fmt.Errorf("%w: metric %s only supports percentage mode", ErrInvalidInput, def.Name)
		}
		spec.Mode = aggregate.ModePercentage
		spec.SuccessMetric = def.SuccessMetric
		return spec, nil
	}
	if mode == aggregate.ModePercentage {
		return aggregate.Spec{}, fmt.Errorf("%w: metric %s has no success counterpart", ErrInvalidInput, def.Name)
	}
	if mode == "" {
		spec.Mode = aggregate.ModeTotal
	}
	return spec, nil
}

// ShotSummary is a player's shooting profile.
type ShotSummary struct {
	PlayerID   string          `json:"player_id"`
	PlayerName string          `json:"player_name"`
	Minutes    float64         `json:"minutes"`
	Shots      int             `json:"shots"`
	Goals      int             `json:"goals"`
	XG         float64         `json:"xg"`
	XGPerShot  float64         `json:"xg_per_shot"`
	ShotsPer90 float64         `json:"shots_per_90"`
	XGPer90    float64         `json:"xg_per_90"`
	Conversion float64         `json:"conversion_pct"`
	ByZone     []aggregate.Row `json:"by_zone"`
}

func (s *AnalyticsService) ShotSummary(ctx context.Context, sourceID, playerID string) (ShotSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.ShotSummary")
	defer span.End()

	id := dataset.NormalizeID(playerID)
	if dataset.IsUnknownID(id) {
		return ShotSummary{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	snap, err := s.snapshots.Snapshot(ctx, sourceID)
	if err != nil {
		return ShotSummary{}, err
	}

	shots := make([]matchevent.Event, 0)
	name := ""
	for _, ev := range snap.Events {
		if ev.PlayerID != id {
			continue
		}
		if name == "" {
			name = ev.PlayerName
		}
		if ev.Type == matchevent.TypeShot {
			shots = append(shots, ev)
		}
	}

	p, listed := snap.Directory.Lookup(id)
	if !listed && name == "" {
		return ShotSummary{}, fmt.Errorf("%w: player %s", ErrNotFound, id)
	}
	if listed {
		name = p.Name
	}

	summary, err := SummarizeShots(shots, p.MinutesPlayed)
	if err != nil {
		return ShotSummary{}, err
	}
	summary.PlayerID = id
	summary.PlayerName = name
	return summary, nil
}

// SummarizeShots builds a shot profile from one player's shot events.
func SummarizeShots(shots []matchevent.Event, minutes float64) (ShotSummary, error) {
	out := ShotSummary{Minutes: minutes, ByZone: []aggregate.Row{}}
	records := make([]aggregate.Record, 0, len(shots))
	for _, ev := range shots {
		out.Shots++
		out.XG += ev.XGValue()
		goal := 0.0
		if ev.IsGoal {
			out.Goals++
			goal = 1
		}
		records = append(records, aggregate.Record{
			Dims:    map[string]string{dimZone: zoneLabel(ev)},
			Metrics: map[string]float64{metricShots: 1, metricGoals: goal},
		})
	}

	out.XGPerShot = aggregate.Ratio(out.XG, float64(out.Shots))
	out.ShotsPer90 = aggregate.Per90(float64(out.Shots), minutes)
	out.XGPer90 = aggregate.Per90(out.XG, minutes)
	out.Conversion = aggregate.Percentage(float64(out.Goals), float64(out.Shots))

	if len(records) > 0 {
		byZone, err := aggregate.Aggregate(records, aggregate.Spec{
			GroupBy: []string{dimZone},
			Metric:  metricShots,
			Mode:    aggregate.ModeTotal,
		})
		if err != nil {
			return ShotSummary{}, err
		}
		out.ByZone = byZone
	}
	return out, nil
}

type ZoneQuery struct {
	SourceID string
	TeamID   string
	Type     string
}

// ZoneShare is the event count in one zone and its share of all located events.
type ZoneShare struct {
	Zone  string  `json:"zone"`
	Count int     `json:"count"`
	Share float64 `json:"share_pct"`
}

// ZoneBreakdown counts located events per zone in zone declaration order.
// Zones without events are kept with a zero count.
func (s *AnalyticsService) ZoneBreakdown(ctx context.Context, q ZoneQuery) ([]ZoneShare, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.ZoneBreakdown")
	defer span.End()

	snap, err := s.snapshots.Snapshot(ctx, q.SourceID)
	if err != nil {
		return nil, err
	}
	events := filterEvents(snap, EventQuery{TeamID: q.TeamID, Type: q.Type})

	records := make([]aggregate.Record, 0, len(events))
	for _, ev := range events {
		if !ev.HasLocation() {
			continue
		}
		records = append(records, aggregate.Record{
			Dims:    map[string]string{dimZone: ev.Zone},
			Metrics: map[string]float64{"events": 1},
		})
	}
	rows, err := aggregate.Aggregate(records, aggregate.Spec{
		GroupBy: []string{dimZone},
		Metric:  "events",
		Mode:    aggregate.ModeTotal,
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Key[0]] = int(row.Total)
	}
	total := float64(len(records))

	names := append([]string(nil), snap.Zones...)
	if counts[pitch.Outside] > 0 {
		names = append(names, pitch.Outside)
	}
	out := make([]ZoneShare, 0, len(names))
	for _, name := range names {
		n := counts[name]
		out = append(out, ZoneShare{
			Zone:  name,
			Count: n,
			Share: aggregate.Percentage(float64(n), total),
		})
	}
	return out, nil
}

// PlayerComparison holds one player's per-90 rates and success percentages.
type PlayerComparison struct {
	PlayerID string             `json:"player_id"`
	Name     string             `json:"name"`
	Minutes  float64            `json:"minutes"`
	Values   map[string]float64 `json:"values"`
}

// ComparePlayers reports every catalog metric for the given players, per 90
// minutes for counts and as a percentage for success metrics.
func (s *AnalyticsService) ComparePlayers(ctx context.Context, sourceID string, playerIDs ...string) ([]PlayerComparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.ComparePlayers")
	defer span.End()

	if len(playerIDs) < 2 {
		return nil, fmt.Errorf("%w: at least two players are required", ErrInvalidInput)
	}
	wanted := make(map[string]int, len(playerIDs))
	ids := make([]string, 0, len(playerIDs))
	for _, raw := range playerIDs {
		id := dataset.NormalizeID(raw)
		if dataset.IsUnknownID(id) {
			return nil, fmt.Errorf("%w: invalid player id %q", ErrInvalidInput, raw)
		}
		if _, dup := wanted[id]; dup {
			continue
		}
		wanted[id] = len(ids)
		ids = append(ids, id)
	}

	snap, err := s.snapshots.Snapshot(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	records := make([]aggregate.Record, 0, len(ids))
	for _, rec := range BuildPlayerRecords(snap) {
		if _, ok := wanted[rec.Dims[dimPlayerID]]; ok {
			records = append(records, rec)
		}
	}

	out := make([]PlayerComparison, len(ids))
	found := make([]bool, len(ids))
	for i, id := range ids {
		out[i] = PlayerComparison{PlayerID: id, Values: make(map[string]float64)}
	}

	for _, def := range PlayerMetrics() {
		mode := aggregate.ModePer90
		if def.Percentage {
			mode = aggregate.ModePercentage
		}
		spec, err := leaderboardSpec(def, mode)
		if err != nil {
			return nil, err
		}
		rows, err := aggregate.Aggregate(records, spec)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			i := wanted[row.Key[0]]
			found[i] = true
			out[i].Name = row.Label
			out[i].Minutes = row.Minutes
			out[i].Values[def.Name] = row.Value
		}
	}

	for i, ok := range found {
		if !ok {
			return nil, fmt.Errorf("%w: player %s", ErrNotFound, ids[i])
		}
	}
	return out, nil
}

func normalizeFilterID(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return dataset.NormalizeID(raw)
}

func zoneLabel(ev matchevent.Event) string {
	if ev.Zone == "" {
		return "Unlocated"
	}
	return ev.Zone
}
