package player

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
)

// Position is a coarse positional group.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
	PositionUnknown    Position = ""
)

var positionAliases = map[string]Position{
	"GK":         PositionGoalkeeper,
	"GOALKEEPER": PositionGoalkeeper,
	"DEF":        PositionDefender,
	"DF":         PositionDefender,
	"DEFENDER":   PositionDefender,
	"MID":        PositionMidfielder,
	"MF":         PositionMidfielder,
	"MIDFIELDER": PositionMidfielder,
	"FWD":        PositionForward,
	"FW":         PositionForward,
	"FORWARD":    PositionForward,
	"ATTACKER":   PositionForward,
}

func ParsePosition(raw string) Position {
	return positionAliases[strings.ToUpper(strings.TrimSpace(raw))]
}

// UnknownName is shown for events whose player is not in the directory.
const UnknownName = "Unknown"

// Player is a squad member with season minutes used for per-90 rates.
type Player struct {
	ID            string
	Name          string
	TeamID        string
	Position      Position
	MinutesPlayed float64
}

func (p Player) Validate() error {
	if p.ID == "" || dataset.IsUnknownID(p.ID) {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.MinutesPlayed < 0 {
		return fmt.Errorf("player minutes must be >= 0: %s", p.ID)
	}

	return nil
}

var columnAliases = map[string][]string{
	"PLAYER_ID": {"PLAYER_ID", "PLAYERID", "ID"},
	"NAME":      {"PLAYER_NAME", "PLAYERNAME", "NAME"},
}

var optionalAliases = map[string][]string{
	"TEAM_ID":  {"TEAM_ID", "TEAMID"},
	"POSITION": {"POSITION", "POS", "POSITION_CODE"},
	"MINUTES":  {"MINUTES_PLAYED", "MINUTESPLAYED", "MINUTES", "MINS"},
}

// FromTable reads a player directory. Rows without a usable id or name, or with
// negative minutes, are skipped. Duplicate ids are kept so aggregation can
// de-duplicate them explicitly.
func FromTable(raw dataset.Table) ([]Player, error) {
	t, err := dataset.NormalizeColumns(raw)
	if err != nil {
		return nil, err
	}
	if err := dataset.RequireColumns(t, columnAliases); err != nil {
		return nil, err
	}

	index := t.Index()
	idCol, _ := dataset.Resolve(index, columnAliases["PLAYER_ID"]...)
	nameCol, _ := dataset.Resolve(index, columnAliases["NAME"]...)
	teamCol, hasTeam := dataset.Resolve(index, optionalAliases["TEAM_ID"]...)
	posCol, hasPos := dataset.Resolve(index, optionalAliases["POSITION"]...)
	minCol, hasMinutes := dataset.Resolve(index, optionalAliases["MINUTES"]...)

	out := make([]Player, 0, t.Len())
	for row := range t.Rows {
		item := Player{
			ID:     dataset.NormalizeID(t.Cell(row, idCol)),
			Name:   dataset.Text(t.Cell(row, nameCol)),
			TeamID: dataset.UnknownID,
		}
		if hasTeam {
			item.TeamID = dataset.NormalizeID(t.Cell(row, teamCol))
		}
		if hasPos {
			item.Position = ParsePosition(dataset.Text(t.Cell(row, posCol)))
		}
		if hasMinutes {
			if minutes, ok := dataset.Float(t.Cell(row, minCol)); ok {
				item.MinutesPlayed = minutes
			}
		}
		if item.Validate() != nil {
			continue
		}
		out = append(out, item)
	}

	return out, nil
}

// Directory resolves players by normalized id; the first entry for an id wins.
type Directory map[string]Player

func NewDirectory(players []Player) Directory {
	out := make(Directory, len(players))
	for _, item := range players {
		if _, exists := out[item.ID]; exists {
			continue
		}
		out[item.ID] = item
	}
	return out
}

func (d Directory) Lookup(id string) (Player, bool) {
	if dataset.IsUnknownID(id) {
		return Player{}, false
	}
	item, ok := d[id]
	return item, ok
}
