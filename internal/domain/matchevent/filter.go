package matchevent

import (
	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
	"github.com/riskibarqy/club-analytics/internal/domain/pitch"
	"github.com/riskibarqy/club-analytics/internal/domain/player"
	"github.com/riskibarqy/club-analytics/internal/domain/team"
)

// TeamFilter is the set of approved team ids. The zero value approves nothing.
type TeamFilter struct {
	ids      map[string]struct{}
	allowAll bool
}

// NewTeamFilter normalizes ids before storing them; unknown ids are ignored.
func NewTeamFilter(ids ...any) TeamFilter {
	out := TeamFilter{ids: make(map[string]struct{}, len(ids))}
	for _, raw := range ids {
		id := dataset.NormalizeID(raw)
		if dataset.IsUnknownID(id) {
			continue
		}
		out.ids[id] = struct{}{}
	}
	return out
}

// AllowAllTeams approves every known team id.
func AllowAllTeams() TeamFilter {
	return TeamFilter{allowAll: true}
}

func (f TeamFilter) Allows(teamID string) bool {
	if dataset.IsUnknownID(teamID) {
		return false
	}
	if f.allowAll {
		return true
	}
	_, ok := f.ids[teamID]
	return ok
}

func (f TeamFilter) Len() int {
	return len(f.ids)
}

// FilterAndJoin keeps events of approved teams and joins display names by
// normalized id. The join never changes the row count. When the source already
// carried player names the player join is skipped.
func FilterAndJoin(set Set, approved TeamFilter, players player.Directory, teams team.Directory) Set {
	out := Set{
		Events:      make([]Event, 0, len(set.Events)),
		PreEnriched: set.PreEnriched,
		Drops:       set.Drops,
	}

	for _, ev := range set.Events {
		if !approved.Allows(ev.TeamID) {
			out.Drops.UnapprovedTeam++
			continue
		}
		out.Events = append(out.Events, ev)
	}

	for i := range out.Events {
		ev := &out.Events[i]
		if name, ok := teams.Name(ev.TeamID); ok {
			ev.TeamName = name
		} else {
			ev.TeamName = ev.TeamID
		}

		if set.PreEnriched {
			continue
		}
		if p, ok := players.Lookup(ev.PlayerID); ok {
			ev.PlayerName = p.Name
			continue
		}
		ev.PlayerName = player.UnknownName
		out.Drops.UnknownPlayer++
	}

	return out
}

// AssignZones sets Zone on every event with a location. Ingestion has already
// dropped rows with partial or out-of-range coordinates.
func AssignZones(set Set, classifier *pitch.Classifier) Set {
	out := set
	out.Events = make([]Event, len(set.Events))
	copy(out.Events, set.Events)

	for i := range out.Events {
		if loc := out.Events[i].Location; loc != nil {
			out.Events[i].Zone = classifier.Locate(*loc)
		}
	}
	return out
}
