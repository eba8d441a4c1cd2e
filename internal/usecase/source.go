package usecase

import (
	"context"

	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
)

// Source hands the pipeline raw tables for one club season. Implementations
// own all I/O; the pipeline never reaches past this interface.
type Source interface {
	ID() string
	LoadEvents(ctx context.Context) (dataset.Table, error)
	LoadTeams(ctx context.Context) (dataset.Table, error)
	LoadPlayers(ctx context.Context) (dataset.Table, error)
}
