package app

import (
	"net/url"
	"strings"
	"testing"

	"github.com/riskibarqy/club-analytics/internal/config"
	"github.com/stretchr/testify/require"
)

func TestWarehouseDSN(t *testing.T) {
	t.Run("adds defaults", func(t *testing.T) {
		got := warehouseDSN(config.Config{
			DBURL:                   "postgres://u:p@localhost:5432/club_analytics?sslmode=disable",
			DBDisablePreparedBinary: true,
			ServiceName:             "club-analytics-api",
		})
		parsed, err := url.Parse(got)
		require.NoError(t, err)
		q := parsed.Query()
		require.Equal(t, "yes", q.Get("disable_prepared_binary_result"))
		require.Equal(t, "club-analytics-api", q.Get("application_name"))
		require.Equal(t, "disable", q.Get("sslmode"))
	})

	t.Run("explicit values win", func(t *testing.T) {
		got := warehouseDSN(config.Config{
			DBURL:                   "postgres://u:p@localhost/club_analytics?disable_prepared_binary_result=no&application_name=etl",
			DBDisablePreparedBinary: true,
			ServiceName:             "club-analytics-api",
		})
		require.Contains(t, got, "disable_prepared_binary_result=no")
		require.Contains(t, got, "application_name=etl")
	})

	t.Run("flag off", func(t *testing.T) {
		got := warehouseDSN(config.Config{DBURL: "postgres://localhost/club_analytics"})
		require.NotContains(t, got, "disable_prepared_binary_result")
	})

	t.Run("keyword dsn untouched", func(t *testing.T) {
		in := "host=localhost dbname=club_analytics sslmode=disable"
		require.Equal(t, in, warehouseDSN(config.Config{DBURL: in, DBDisablePreparedBinary: true}))
	})
}

func TestDatabaseName(t *testing.T) {
	require.Equal(t, "club_analytics", databaseName("postgres://u:p@localhost:5432/club_analytics?sslmode=disable"))
	require.Equal(t, "club_analytics", databaseName(`host=localhost user=postgres dbname='club_analytics'`))
	require.Equal(t, "", databaseName("host=localhost"))
}

func TestSpanStatement(t *testing.T) {
	require.Equal(t,
		"SELECT team_id, name FROM teams WHERE deleted_at IS NULL",
		spanStatement("  SELECT team_id, name\n\tFROM teams\n WHERE deleted_at IS NULL "),
	)

	long := "SELECT " + strings.Repeat("é", 400)
	got := spanStatement(long)
	require.True(t, strings.HasSuffix(got, "..."))
	require.LessOrEqual(t, len(got), maxSpanStatement+3)
	require.True(t, strings.HasPrefix(got, "SELECT é"))
}
