package usecase

import (
	"sort"

	"github.com/riskibarqy/club-analytics/internal/domain/aggregate"
	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
	"github.com/riskibarqy/club-analytics/internal/domain/matchevent"
	"github.com/riskibarqy/club-analytics/internal/domain/player"
)

// Record dimensions and metrics produced by BuildPlayerRecords.
const (
	dimPlayerID = "player_id"
	dimPlayer   = "player"
	dimTeamID   = "team_id"
	dimPosition = "position"
	dimZone     = "zone"

	metricMinutes          = aggregate.DefaultMinutesMetric
	metricGoals            = "goals"
	metricShots            = "shots"
	metricXG               = "xg"
	metricAssists          = "assists"
	metricPasses           = "passes"
	metricPassesSuccessful = "passes_successful"
	metricDuels            = "duels"
	metricDuelsWon         = "duels_won"
)

// playerIdentity is the de-duplication key for player records.
var playerIdentity = []string{dimPlayerID, metricMinutes, metricGoals, metricAssists}

// MetricDef describes one leaderboard metric over player records.
type MetricDef struct {
	Name          string `json:"name"`
	Metric        string `json:"metric"`
	SuccessMetric string `json:"success_metric,omitempty"`
	// Percentage metrics are always reported as success/total*100.
	Percentage bool `json:"percentage"`
}

var playerMetrics = map[string]MetricDef{
	"goals":         {Name: "goals", Metric: metricGoals},
	"shots":         {Name: "shots", Metric: metricShots},
	"xg":            {Name: "xg", Metric: metricXG},
	"assists":       {Name: "assists", Metric: metricAssists},
	"passes":        {Name: "passes", Metric: metricPasses},
	"duels":         {Name: "duels", Metric: metricDuels},
	"pass_accuracy": {Name: "pass_accuracy", Metric: metricPasses, SuccessMetric: metricPassesSuccessful, Percentage: true},
	"duel_success":  {Name: "duel_success", Metric: metricDuels, SuccessMetric: metricDuelsWon, Percentage: true},
}

// PlayerMetrics lists the leaderboard metrics sorted by name.
func PlayerMetrics() []MetricDef {
	out := make([]MetricDef, 0, len(playerMetrics))
	for _, def := range playerMetrics {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func LookupPlayerMetric(name string) (MetricDef, bool) {
	def, ok := playerMetrics[name]
	return def, ok
}

type playerTally struct {
	name    string
	teamID  string
	metrics map[string]float64
}

func newPlayerMetrics() map[string]float64 {
	return map[string]float64{
		metricMinutes:          0,
		metricGoals:            0,
		metricShots:            0,
		metricXG:               0,
		metricAssists:          0,
		metricPasses:           0,
		metricPassesSuccessful: 0,
		metricDuels:            0,
		metricDuelsWon:         0,
	}
}

// BuildPlayerRecords emits one record per distinct (player id, minutes)
// directory row followed by one record per event player missing from the
// directory. Event counts ride on the first directory row of each player only;
// later rows with other minutes add minutes and nothing else.
func BuildPlayerRecords(snap Snapshot) []aggregate.Record {
	tallies := make(map[string]*playerTally)
	order := make([]string, 0)

	for _, ev := range snap.Events {
		if dataset.IsUnknownID(ev.PlayerID) {
			continue
		}
		t, ok := tallies[ev.PlayerID]
		if !ok {
			t = &playerTally{name: ev.PlayerName, teamID: ev.TeamID, metrics: newPlayerMetrics()}
			tallies[ev.PlayerID] = t
			order = append(order, ev.PlayerID)
		}
		countEvent(t.metrics, ev)
	}

	out := make([]aggregate.Record, 0, len(snap.Players)+len(order))
	type directoryRow struct {
		id      string
		minutes float64
	}
	listed := make(map[string]struct{}, len(snap.Players))
	seen := make(map[directoryRow]struct{}, len(snap.Players))
	for _, p := range snap.Players {
		row := directoryRow{id: p.ID, minutes: p.MinutesPlayed}
		if _, dup := seen[row]; dup {
			continue
		}
		seen[row] = struct{}{}

		metrics := newPlayerMetrics()
		if _, again := listed[p.ID]; !again {
			if t, ok := tallies[p.ID]; ok {
				for k, v := range t.metrics {
					metrics[k] = v
				}
			}
		}
		listed[p.ID] = struct{}{}
		metrics[metricMinutes] = p.MinutesPlayed
		out = append(out, aggregate.Record{
			Dims: map[string]string{
				dimPlayerID: p.ID,
				dimPlayer:   p.Name,
				dimTeamID:   p.TeamID,
				dimPosition: string(p.Position),
			},
			Metrics: metrics,
		})
	}

	for _, id := range order {
		if _, ok := listed[id]; ok {
			continue
		}
		t := tallies[id]
		name := t.name
		if name == "" {
			name = player.UnknownName
		}
		out = append(out, aggregate.Record{
			Dims: map[string]string{
				dimPlayerID: id,
				dimPlayer:   name,
				dimTeamID:   t.teamID,
				dimPosition: string(player.PositionUnknown),
			},
			Metrics: t.metrics,
		})
	}

	return out
}

func countEvent(metrics map[string]float64, ev matchevent.Event) {
	switch ev.Type {
	case matchevent.TypeShot:
		metrics[metricShots]++
		metrics[metricXG] += ev.XGValue()
		if ev.IsGoal {
			metrics[metricGoals]++
		}
	case matchevent.TypeAssist:
		metrics[metricAssists]++
	case matchevent.TypePass:
		metrics[metricPasses]++
		if ev.Successful() {
			metrics[metricPassesSuccessful]++
		}
	case matchevent.TypeDuel:
		metrics[metricDuels]++
		if ev.Successful() {
			metrics[metricDuelsWon]++
		}
	}
}
