// Package warehouse loads club season data from the Postgres analytics
// warehouse. Rows come back as raw tables so the ingestion layer applies the
// same normalization as for file sources.
package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
	qb "github.com/riskibarqy/club-analytics/internal/platform/querybuilder"
	"github.com/riskibarqy/club-analytics/internal/platform/resilience"
)

const SourceID = "warehouse"

// Querier is the subset of *sqlx.DB the loader needs.
type Querier interface {
	QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error)
}

type Source struct {
	db      Querier
	season  string
	breaker *resilience.Breaker
}

// New binds the loader to one season; an empty season loads every row. A nil
// breaker sends every query straight to the database.
func New(db Querier, season string, breaker *resilience.Breaker) *Source {
	return &Source{db: db, season: strings.TrimSpace(season), breaker: breaker}
}

func (s *Source) ID() string {
	return SourceID
}

func (s *Source) LoadEvents(ctx context.Context) (dataset.Table, error) {
	query, args, err := eventsQuery(s.season)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("build select match events query: %w", err)
	}
	return s.loadTable(ctx, "match_events", query, args)
}

func (s *Source) LoadTeams(ctx context.Context) (dataset.Table, error) {
	query, args, err := teamsQuery()
	if err != nil {
		return dataset.Table{}, fmt.Errorf("build select teams query: %w", err)
	}
	return s.loadTable(ctx, "teams", query, args)
}

func (s *Source) LoadPlayers(ctx context.Context) (dataset.Table, error) {
	query, args, err := playersQuery(s.season)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("build select players query: %w", err)
	}
	return s.loadTable(ctx, "players", query, args)
}

func eventsQuery(season string) (string, []any, error) {
	b := qb.Select(
		"event_id",
		"match_id",
		"team_id",
		"player_id",
		"opponent_id",
		"type",
		"outcome",
		"minute",
		"x",
		"y",
		"xg",
		"is_goal",
	).From("match_events")
	if season != "" {
		b = b.Where(qb.Eq("season", season))
	}
	return b.OrderBy("match_id", "event_id").ToSQL()
}

func teamsQuery() (string, []any, error) {
	return qb.Select("team_id", "name").
		From("teams").
		Where(qb.IsNull("deleted_at")).
		OrderBy("team_id").
		ToSQL()
}

func playersQuery(season string) (string, []any, error) {
	b := qb.Select("player_id", "name", "team_id", "position", "minutes_played").
		From("players").
		Where(qb.IsNull("deleted_at"))
	if season != "" {
		b = b.Where(qb.Eq("season", season))
	}
	return b.OrderBy("player_id").ToSQL()
}

func (s *Source) loadTable(ctx context.Context, name, query string, args []any) (dataset.Table, error) {
	if s.breaker == nil {
		return s.query(ctx, name, query, args)
	}
	if err := s.breaker.Allow(); err != nil {
		return dataset.Table{}, fmt.Errorf("select %s: %w", name, err)
	}

	out, err := s.query(ctx, name, query, args)
	// Cancelled requests say nothing about the database.
	if err != nil && ctx.Err() != nil {
		s.breaker.Release()
		return out, err
	}
	s.breaker.Record(err)
	return out, err
}

func (s *Source) query(ctx context.Context, name, query string, args []any) (dataset.Table, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("select %s: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return dataset.Table{}, fmt.Errorf("read %s columns: %w", name, err)
	}

	out := dataset.Table{Name: name, Columns: columns}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return dataset.Table{}, fmt.Errorf("scan %s row: %w", name, err)
		}
		for i, v := range values {
			values[i] = normalizeCell(v)
		}
		out.Rows = append(out.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return dataset.Table{}, fmt.Errorf("iterate %s rows: %w", name, err)
	}

	return out, nil
}

// normalizeCell turns driver byte slices (numeric, text) into strings so the
// cell parsers see one representation.
func normalizeCell(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
