package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/club-analytics/internal/config"
)

const (
	warehousePingTimeout = 5 * time.Second
	warehouseMaxConns    = 8
	maxSpanStatement     = 512
)

func openWarehouse(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", warehouseDSN(cfg),
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("club_analytics.season", cfg.WarehouseSeason),
		),
		otelsql.WithDBName(databaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(spanStatement),
	)
	if err != nil {
		return nil, fmt.Errorf("open warehouse db: %w", err)
	}
	db.SetMaxOpenConns(warehouseMaxConns)
	db.SetMaxIdleConns(warehouseMaxConns / 2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), warehousePingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping warehouse db: %w", err)
	}
	return db, nil
}

// warehouseDSN tags the connection with the service name and, unless turned
// off, sets lib/pq's disable_prepared_binary_result. Values already present in
// the URL win. Keyword/value DSNs pass through untouched.
func warehouseDSN(cfg config.Config) string {
	parsed, err := url.Parse(strings.TrimSpace(cfg.DBURL))
	if err != nil || parsed.Scheme == "" {
		return cfg.DBURL
	}

	q := parsed.Query()
	setDefault := func(key, value string) {
		if value != "" && q.Get(key) == "" {
			q.Set(key, value)
		}
	}
	if cfg.DBDisablePreparedBinary {
		setDefault("disable_prepared_binary_result", "yes")
	}
	setDefault("application_name", cfg.ServiceName)
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

// databaseName reads the database from a postgres:// URL path or a dbname=
// keyword. It returns "" when neither is present.
func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if parsed, err := url.Parse(dsn); err == nil && parsed.Scheme != "" {
		return strings.Trim(parsed.Path, "/ ")
	}
	for _, pair := range strings.Fields(dsn) {
		if key, value, ok := strings.Cut(pair, "="); ok && key == "dbname" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

// spanStatement collapses whitespace and caps the statement length at a rune
// boundary.
func spanStatement(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) <= maxSpanStatement {
		return compact
	}
	cut := maxSpanStatement
	for cut > 0 && !utf8.RuneStart(compact[cut]) {
		cut--
	}
	return compact[:cut] + "..."
}
