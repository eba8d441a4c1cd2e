package httpapi

import (
	"strconv"
	"time"

	"github.com/riskibarqy/club-analytics/internal/domain/aggregate"
	"github.com/riskibarqy/club-analytics/internal/domain/matchevent"
	"github.com/riskibarqy/club-analytics/internal/usecase"
)

type listDTO[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

type snapshotDTO struct {
	SourceID    string         `json:"source_id"`
	Sources     []string       `json:"sources"`
	BuiltAt     time.Time      `json:"built_at"`
	Events      int            `json:"events"`
	Teams       int            `json:"teams"`
	Players     int            `json:"players"`
	Zones       []string       `json:"zones"`
	PreEnriched bool           `json:"pre_enriched"`
	Drops       map[string]int `json:"drops"`
}

func snapshotToDTO(snap usecase.Snapshot, sources []string) snapshotDTO {
	return snapshotDTO{
		SourceID:    snap.SourceID,
		Sources:     sources,
		BuiltAt:     snap.BuiltAt,
		Events:      len(snap.Events),
		Teams:       len(snap.Teams),
		Players:     len(snap.Directory),
		Zones:       snap.Zones,
		PreEnriched: snap.PreEnriched,
		Drops:       snap.DropCounts(),
	}
}

type eventDTO struct {
	EventID    string   `json:"event_id,omitempty"`
	MatchID    string   `json:"match_id,omitempty"`
	TeamID     string   `json:"team_id"`
	TeamName   string   `json:"team_name"`
	PlayerID   string   `json:"player_id"`
	PlayerName string   `json:"player_name"`
	OpponentID string   `json:"opponent_id,omitempty"`
	Type       string   `json:"type"`
	Outcome    string   `json:"outcome,omitempty"`
	Minute     *float64 `json:"minute,omitempty"`
	X          *float64 `json:"x,omitempty"`
	Y          *float64 `json:"y,omitempty"`
	XG         *float64 `json:"xg,omitempty"`
	IsGoal     bool     `json:"is_goal"`
	Zone       string   `json:"zone,omitempty"`
}

func eventToDTO(ev matchevent.Event) eventDTO {
	out := eventDTO{
		EventID:    ev.EventID,
		MatchID:    ev.MatchID,
		TeamID:     ev.TeamID,
		TeamName:   ev.TeamName,
		PlayerID:   ev.PlayerID,
		PlayerName: ev.PlayerName,
		OpponentID: ev.OpponentID,
		Type:       ev.Type,
		Outcome:    ev.Outcome,
		Minute:     ev.Minute,
		XG:         ev.XG,
		IsGoal:     ev.IsGoal,
		Zone:       ev.Zone,
	}
	if ev.Location != nil {
		x, y := ev.Location.X, ev.Location.Y
		out.X, out.Y = &x, &y
	}
	return out
}

type classifyDTO struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zone string  `json:"zone"`
}

type leaderboardDTO struct {
	Metric string          `json:"metric"`
	Mode   string          `json:"mode"`
	Rows   []aggregate.Row `json:"rows"`
}

var leaderboardCSVHeader = []string{"rank", "player_id", "player", "total", "minutes", "value"}

func leaderboardCSVRows(rows []aggregate.Row) [][]string {
	out := make([][]string, 0, len(rows))
	for i, row := range rows {
		id := ""
		if len(row.Key) > 0 {
			id = row.Key[0]
		}
		out = append(out, []string{
			strconv.Itoa(i + 1),
			id,
			row.Label,
			formatFloat(row.Total),
			formatFloat(row.Minutes),
			formatFloat(row.Value),
		})
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
