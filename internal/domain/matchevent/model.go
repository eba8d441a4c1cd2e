package matchevent

import (
	"github.com/riskibarqy/club-analytics/internal/domain/pitch"
)

const (
	TypeShot        = "shot"
	TypeShotAgainst = "shot_against"
	TypePass        = "pass"
	TypeDuel        = "duel"
	TypeAssist      = "assist"
)

// Event is one cleaned on-pitch action. Ids are normalized keys; PlayerID may
// be dataset.UnknownID for team-level actions.
type Event struct {
	Row        int
	EventID    string
	MatchID    string
	TeamID     string
	TeamName   string
	PlayerID   string
	PlayerName string
	OpponentID string
	Type       string
	Outcome    string
	Minute     *float64
	Location   *pitch.Point
	IsGoal     bool
	XG         *float64
	Zone       string
}

func (e Event) HasLocation() bool {
	return e.Location != nil
}

// XGValue returns the expected-goals value, 0 when absent.
func (e Event) XGValue() float64 {
	if e.XG == nil {
		return 0
	}
	return *e.XG
}

// Successful reports whether the recorded outcome counts as a completed action.
func (e Event) Successful() bool {
	switch e.Outcome {
	case "success", "successful", "complete", "completed", "won", "accurate", "goal":
		return true
	default:
		return e.IsGoal
	}
}

// Drops counts rows removed between the raw table and the clean set.
// UnknownPlayer rows are kept with the Unknown name; they are counted only.
type Drops struct {
	MissingType     int
	InvalidLocation int
	UnapprovedTeam  int
	UnknownPlayer   int
}

// Set is an ingested event table plus what ingestion learned about its source.
type Set struct {
	Events []Event
	// PreEnriched is set when the source already carried player display names.
	PreEnriched bool
	Drops       Drops
}
