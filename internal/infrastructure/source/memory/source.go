// Package memory serves fixed in-process tables, for local development and tests.
package memory

import (
	"context"

	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
)

const SourceID = "memory"

type Source struct {
	id      string
	events  dataset.Table
	teams   dataset.Table
	players dataset.Table
}

func NewSource(id string, events, teams, players dataset.Table) *Source {
	if id == "" {
		id = SourceID
	}
	return &Source{id: id, events: events, teams: teams, players: players}
}

// NewSeedSource serves the bundled demo season.
func NewSeedSource() *Source {
	return NewSource(SourceID, SeedEvents(), SeedTeams(), SeedPlayers())
}

func (s *Source) ID() string {
	return s.id
}

func (s *Source) LoadEvents(ctx context.Context) (dataset.Table, error) {
	return load(ctx, s.events)
}

func (s *Source) LoadTeams(ctx context.Context) (dataset.Table, error) {
	return load(ctx, s.teams)
}

func (s *Source) LoadPlayers(ctx context.Context) (dataset.Table, error) {
	return load(ctx, s.players)
}

func load(ctx context.Context, t dataset.Table) (dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return dataset.Table{}, err
	}
	return t, nil
}
