package matchevent

import (
	"strings"

	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
	"github.com/riskibarqy/club-analytics/internal/domain/pitch"
	"github.com/riskibarqy/club-analytics/internal/domain/player"
)

const datasetName = "events"

var requiredColumns = map[string][]string{
	"TEAM_ID": {"TEAM_ID", "TEAMID"},
	"TYPE":    {"TYPE", "ACTION", "ACTION_TYPE", "EVENT_TYPE"},
}

var optionalColumns = map[string][]string{
	"EVENT_ID":    {"EVENT_ID", "EVENTID", "ID"},
	"MATCH_ID":    {"MATCH_ID", "MATCHID", "GAME_ID"},
	"PLAYER_ID":   {"PLAYER_ID", "PLAYERID"},
	"PLAYER_NAME": {"PLAYER_NAME", "PLAYERNAME"},
	"OPPONENT_ID": {"OPPONENT_ID", "OPPONENTID", "OPPONENT_TEAM_ID"},
	"OUTCOME":     {"OUTCOME", "RESULT"},
	"MINUTE":      {"MINUTE", "MIN"},
	"X":           {"X", "LOCATION_X", "X_START"},
	"Y":           {"Y", "LOCATION_Y", "Y_START"},
	"XG":          {"XG", "EXPECTED_GOALS", "SHOT_XG"},
	"IS_GOAL":     {"IS_GOAL", "ISGOAL", "GOAL"},
}

type columns struct {
	required map[string]int
	optional map[string]int
}

func (c columns) get(t dataset.Table, row int, field string) (any, bool) {
	if idx, ok := c.required[field]; ok {
		return t.Cell(row, idx), true
	}
	if idx, ok := c.optional[field]; ok {
		return t.Cell(row, idx), true
	}
	return nil, false
}

// FromTable validates the event schema once and converts every row into a
// typed Event. Column labels are normalized first. Rows with no action type,
// with only one coordinate, or with a coordinate outside [0,100] are dropped
// and counted.
func FromTable(raw dataset.Table) (Set, error) {
	if raw.Name == "" {
		raw.Name = datasetName
	}
	t, err := dataset.NormalizeColumns(raw)
	if err != nil {
		return Set{}, err
	}
	if err := dataset.RequireColumns(t, requiredColumns); err != nil {
		return Set{}, err
	}

	index := t.Index()
	cols := columns{required: map[string]int{}, optional: map[string]int{}}
	for field, aliases := range requiredColumns {
		idx, _ := dataset.Resolve(index, aliases...)
		cols.required[field] = idx
	}
	for field, aliases := range optionalColumns {
		if idx, ok := dataset.Resolve(index, aliases...); ok {
			cols.optional[field] = idx
		}
	}

	set := Set{Events: make([]Event, 0, t.Len())}
	_, set.PreEnriched = cols.optional["PLAYER_NAME"]

	for row := range t.Rows {
		ev, reason := convertRow(t, row, cols, set.PreEnriched)
		switch reason {
		case dropMissingType:
			set.Drops.MissingType++
			continue
		case dropInvalidLocation:
			set.Drops.InvalidLocation++
			continue
		}
		set.Events = append(set.Events, ev)
	}

	return set, nil
}

type dropReason int

const (
	keepRow dropReason = iota
	dropMissingType
	dropInvalidLocation
)

func convertRow(t dataset.Table, row int, cols columns, preEnriched bool) (Event, dropReason) {
	cell := func(field string) any {
		v, _ := cols.get(t, row, field)
		return v
	}

	ev := Event{
		Row:        row,
		EventID:    dataset.NormalizeID(cell("EVENT_ID")),
		MatchID:    dataset.NormalizeID(cell("MATCH_ID")),
		TeamID:     dataset.NormalizeID(cell("TEAM_ID")),
		PlayerID:   dataset.NormalizeID(cell("PLAYER_ID")),
		OpponentID: dataset.NormalizeID(cell("OPPONENT_ID")),
		Type:       strings.ToLower(dataset.Text(cell("TYPE"))),
		Outcome:    strings.ToLower(dataset.Text(cell("OUTCOME"))),
	}
	if ev.Type == "" {
		return Event{}, dropMissingType
	}

	x, hasX := dataset.Float(cell("X"))
	y, hasY := dataset.Float(cell("Y"))
	switch {
	case hasX && hasY:
		p := pitch.Point{X: x, Y: y}
		if !p.Valid() {
			return Event{}, dropInvalidLocation
		}
		ev.Location = &p
	case hasX != hasY:
		return Event{}, dropInvalidLocation
	}

	if minute, ok := dataset.Float(cell("MINUTE")); ok {
		ev.Minute = &minute
	}
	if xg, ok := dataset.Float(cell("XG")); ok && xg >= 0 {
		ev.XG = &xg
	}
	if goal, ok := cols.get(t, row, "IS_GOAL"); ok {
		ev.IsGoal = dataset.Truthy(goal)
	} else {
		ev.IsGoal = ev.Outcome == "goal"
	}

	if preEnriched {
		ev.PlayerName = dataset.Text(cell("PLAYER_NAME"))
		if ev.PlayerName == "" {
			ev.PlayerName = player.UnknownName
		}
	}

	return ev, keepRow
}
