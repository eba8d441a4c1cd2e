package team

import (
	"fmt"

	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
)

// Team is a club appearing in the event data, either ours or an opponent.
type Team struct {
	ID   string
	Name string
}

func (t Team) Validate() error {
	if t.ID == "" || dataset.IsUnknownID(t.ID) {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

var columnAliases = map[string][]string{
	"TEAM_ID": {"TEAM_ID", "TEAMID", "ID"},
	"NAME":    {"TEAM_NAME", "TEAMNAME", "NAME"},
}

// FromTable reads a team directory. Rows without a usable id or name are skipped.
func FromTable(raw dataset.Table) ([]Team, error) {
	t, err := dataset.NormalizeColumns(raw)
	if err != nil {
		return nil, err
	}
	if err := dataset.RequireColumns(t, columnAliases); err != nil {
		return nil, err
	}

	index := t.Index()
	idCol, _ := dataset.Resolve(index, columnAliases["TEAM_ID"]...)
	nameCol, _ := dataset.Resolve(index, columnAliases["NAME"]...)

	out := make([]Team, 0, t.Len())
	for row := range t.Rows {
		item := Team{
			ID:   dataset.NormalizeID(t.Cell(row, idCol)),
			Name: dataset.Text(t.Cell(row, nameCol)),
		}
		if item.Validate() != nil {
			continue
		}
		out = append(out, item)
	}

	return out, nil
}

// Directory resolves display names by normalized team id.
type Directory map[string]Team

func NewDirectory(teams []Team) Directory {
	out := make(Directory, len(teams))
	for _, item := range teams {
		if _, exists := out[item.ID]; exists {
			continue
		}
		out[item.ID] = item
	}
	return out
}

func (d Directory) Name(id string) (string, bool) {
	item, ok := d[id]
	if !ok {
		return "", false
	}
	return item.Name, true
}
