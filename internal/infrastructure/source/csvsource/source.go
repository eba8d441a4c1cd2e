// Package csvsource loads club season data from CSV exports. Every cell is
// kept as text; typing happens during ingestion.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
)

const SourceID = "csv"

type Config struct {
	EventsPath  string
	TeamsPath   string
	PlayersPath string
}

type Source struct {
	cfg Config
}

func New(cfg Config) (*Source, error) {
	if strings.TrimSpace(cfg.EventsPath) == "" {
		return nil, dataset.NewConfigError("CSV_EVENTS_PATH", "events file path is required")
	}
	if strings.TrimSpace(cfg.TeamsPath) == "" {
		return nil, dataset.NewConfigError("CSV_TEAMS_PATH", "teams file path is required")
	}
	if strings.TrimSpace(cfg.PlayersPath) == "" {
		return nil, dataset.NewConfigError("CSV_PLAYERS_PATH", "players file path is required")
	}
	return &Source{cfg: cfg}, nil
}

func (s *Source) ID() string {
	return SourceID
}

func (s *Source) LoadEvents(ctx context.Context) (dataset.Table, error) {
	return readFile(ctx, "events", s.cfg.EventsPath)
}

func (s *Source) LoadTeams(ctx context.Context) (dataset.Table, error) {
	return readFile(ctx, "teams", s.cfg.TeamsPath)
}

func (s *Source) LoadPlayers(ctx context.Context) (dataset.Table, error) {
	return readFile(ctx, "players", s.cfg.PlayersPath)
}

func readFile(ctx context.Context, name, path string) (dataset.Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return dataset.Table{}, fmt.Errorf("open %s file: %w", name, err)
	}
	defer f.Close()

	t, err := Read(ctx, name, f)
	if err != nil {
		return dataset.Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// Read parses a CSV stream whose first record is the header. Short rows are
// padded with nil; extra trailing cells are dropped.
func Read(ctx context.Context, name string, r io.Reader) (dataset.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return dataset.Table{Name: name}, nil
	}
	if err != nil {
		return dataset.Table{}, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	out := dataset.Table{Name: name, Columns: header}
	for line := 2; ; line++ {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return dataset.Table{}, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dataset.Table{}, fmt.Errorf("read line %d: %w", line, err)
		}

		row := make([]any, len(header))
		for i := range header {
			if i < len(record) {
				row[i] = record[i]
			}
		}
		out.Rows = append(out.Rows, row)
	}

	return out, nil
}
