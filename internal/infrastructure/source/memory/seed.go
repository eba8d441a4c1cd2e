package memory

import "github.com/riskibarqy/club-analytics/internal/domain/dataset"

const (
	SeedClubTeamID  = "38331"
	SeedRivalTeamID = "40"
	SeedCupTeamID   = "52"
)

func SeedTeams() dataset.Table {
	return dataset.Table{
		Name:    "teams",
		Columns: []string{"team_id", "team_name"},
		Rows: [][]any{
			{SeedClubTeamID, "Harbour City FC"},
			{SeedRivalTeamID, "Northbank Rovers"},
			{SeedCupTeamID, "Valley Athletic"},
		},
	}
}

// SeedPlayers mixes id spellings the way club exports do; 9.0 and 9 are the
// same player and the second row is a duplicate directory entry.
func SeedPlayers() dataset.Table {
	return dataset.Table{
		Name:    "players",
		Columns: []string{"Player ID", "Name", "Team ID", "Position", "Minutes Played"},
		Rows: [][]any{
			{"1", "Tomas Reyes", SeedClubTeamID, "GK", 900},
			{"4", "Ivo Brandt", SeedClubTeamID, "DEF", 870},
			{"5", "Kofi Mensah", SeedClubTeamID, "DEF", 810},
			{"8", "Luca Ferri", SeedClubTeamID, "MID", 760},
			{"9.0", "Ari Solberg", SeedClubTeamID, "FWD", 720},
			{9, "Ari Solberg", SeedClubTeamID, "FWD", 720},
			{"10", "Mateo Quiroga", SeedClubTeamID, "MID", 845},
			{"11", "Yusuf Adeyemi", SeedClubTeamID, "FWD", 430},
			{"21", "Callum Price", SeedRivalTeamID, "FWD", 900},
		},
	}
}

func SeedEvents() dataset.Table {
	return dataset.Table{
		Name: "events",
		Columns: []string{
			"Event ID", "Match ID", "Team ID", "Player ID", "Opponent ID",
			"Type", "Outcome", "Minute", "X", "Y", "xG", "Is Goal",
		},
		Rows: [][]any{
			{1, "m1", SeedClubTeamID, "9", SeedRivalTeamID, "shot", "goal", 12, 95.5, 48.0, 0.41, true},
			{2, "m1", SeedClubTeamID, "9", SeedRivalTeamID, "shot", "saved", 30, 89.0, 55.0, 0.18, false},
			{3, "m1", SeedClubTeamID, "10", SeedRivalTeamID, "assist", "", 12, 84.0, 30.0, nil, nil},
			{4, "m1", SeedClubTeamID, "10", SeedRivalTeamID, "pass", "complete", 14, 70.0, 40.0, nil, nil},
			{5, "m1", SeedClubTeamID, "10", SeedRivalTeamID, "pass", "incomplete", 19, 76.0, 62.0, nil, nil},
			{6, "m1", SeedClubTeamID, "8", SeedRivalTeamID, "pass", "complete", 22, 45.0, 50.0, nil, nil},
			{7, "m1", SeedClubTeamID, "8", SeedRivalTeamID, "pass", "complete", 23, 58.0, 20.0, nil, nil},
			{8, "m1", SeedClubTeamID, "4", SeedRivalTeamID, "duel", "won", 33, 25.0, 70.0, nil, nil},
			{9, "m1", SeedClubTeamID, "5", SeedRivalTeamID, "duel", "lost", 41, 18.0, 35.0, nil, nil},
			{10, "m1", SeedRivalTeamID, "21", SeedClubTeamID, "shot", "saved", 50, 90.0, 45.0, 0.22, false},
			{11, "m1", SeedClubTeamID, "", SeedRivalTeamID, "shot_against", "saved", 50, 10.0, 55.0, 0.22, nil},
			{12, "m1", SeedClubTeamID, "11", SeedRivalTeamID, "shot", "blocked", 77, 83.5, 22.0, 0.05, false},
			{13, "m2", SeedClubTeamID, "9.0", SeedCupTeamID, "shot", "goal", 8, 97.0, 52.0, 0.62, true},
			{14, "m2", SeedClubTeamID, "11", SeedCupTeamID, "shot", "goal", 64, 91.0, 39.0, 0.27, true},
			{15, "m2", SeedClubTeamID, "10", SeedCupTeamID, "pass", "complete", 63, 80.0, 45.0, nil, nil},
			{16, "m2", SeedClubTeamID, "10", SeedCupTeamID, "assist", "", 64, 80.0, 45.0, nil, nil},
			{17, "m2", SeedClubTeamID, "8", SeedCupTeamID, "pass", "complete", 70, 62.0, 85.0, nil, nil},
			{18, "m2", SeedClubTeamID, "1", SeedCupTeamID, "pass", "complete", 5, 4.0, 50.0, nil, nil},
			{19, "m2", SeedClubTeamID, "4", SeedCupTeamID, "duel", "won", 55, 35.0, 15.0, nil, nil},
			{20, "m2", SeedClubTeamID, "99", SeedCupTeamID, "pass", "complete", 88, 50.0, 50.0, nil, nil},
			{21, "m2", SeedClubTeamID, "9", SeedCupTeamID, "shot", "wide", 90, 101.5, 50.0, 0.1, false},
			{22, "m2", SeedClubTeamID, "8", SeedCupTeamID, "", "", 45, 50.0, 50.0, nil, nil},
		},
	}
}
