package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/club-analytics/internal/domain/aggregate"
	"github.com/riskibarqy/club-analytics/internal/domain/dataset"
	"github.com/riskibarqy/club-analytics/internal/domain/pitch"
	"github.com/riskibarqy/club-analytics/internal/platform/logging"
	"github.com/riskibarqy/club-analytics/internal/usecase"
)

type Handler struct {
	pipeline  *usecase.PipelineService
	analytics *usecase.AnalyticsService
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(
	pipeline *usecase.PipelineService,
	analytics *usecase.AnalyticsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		pipeline:  pipeline,
		analytics: analytics,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSnapshot")
	defer span.End()

	snap, err := h.pipeline.Snapshot(ctx, sourceParam(r))
	if err != nil {
		h.logger.WarnContext(ctx, "get snapshot failed", "source", sourceParam(r), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snap, h.pipeline.SourceIDs()))
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Refresh")
	defer span.End()

	snap, err := h.pipeline.Refresh(ctx, sourceParam(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh snapshot failed", "source", sourceParam(r), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "snapshot refreshed", "source", snap.SourceID, "events", len(snap.Events))
	writeSuccess(ctx, w, http.StatusOK, snapshotToDTO(snap, h.pipeline.SourceIDs()))
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	q := r.URL.Query()
	req := listEventsRequest{
		TeamID:   strings.TrimSpace(q.Get("team_id")),
		PlayerID: strings.TrimSpace(q.Get("player_id")),
		Zone:     strings.TrimSpace(q.Get("zone")),
		Type:     strings.TrimSpace(q.Get("type")),
		Limit:    strings.TrimSpace(q.Get("limit")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	events, err := h.analytics.ListEvents(ctx, usecase.EventQuery{
		SourceID: sourceParam(r),
		TeamID:   req.TeamID,
		PlayerID: req.PlayerID,
		Zone:     req.Zone,
		Type:     req.Type,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list events failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	if req.Limit != "" {
		limit, _ := strconv.Atoi(req.Limit)
		if limit > 0 && limit < len(events) {
			events = events[:limit]
		}
	}

	items := make([]eventDTO, 0, len(events))
	for _, ev := range events {
		items = append(items, eventToDTO(ev))
	}
	writeSuccess(ctx, w, http.StatusOK, listDTO[eventDTO]{Items: items, Count: len(items)})
}

func (h *Handler) ListZones(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListZones")
	defer span.End()

	zones := h.pipeline.Classifier().Zones()
	writeSuccess(ctx, w, http.StatusOK, listDTO[pitch.Zone]{Items: zones, Count: len(zones)})
}

// ClassifyPoint takes x along the pitch length and y across it, the same
// frame events use.
func (h *Handler) ClassifyPoint(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClassifyPoint")
	defer span.End()

	q := r.URL.Query()
	req := classifyRequest{X: strings.TrimSpace(q.Get("x")), Y: strings.TrimSpace(q.Get("y"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	x, _ := strconv.ParseFloat(req.X, 64)
	y, _ := strconv.ParseFloat(req.Y, 64)
	point := pitch.Point{X: x, Y: y}
	if !point.Valid() {
		writeError(ctx, w, dataset.NewPreconditionError("coordinates (%g, %g) are outside the 0-100 pitch", x, y))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, classifyDTO{
		X:    x,
		Y:    y,
		Zone: h.pipeline.Classifier().Locate(point),
	})
}

func (h *Handler) GetZoneBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetZoneBreakdown")
	defer span.End()

	q := r.URL.Query()
	rows, err := h.analytics.ZoneBreakdown(ctx, usecase.ZoneQuery{
		SourceID: sourceParam(r),
		TeamID:   strings.TrimSpace(q.Get("team_id")),
		Type:     strings.TrimSpace(q.Get("type")),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "zone breakdown failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, listDTO[usecase.ZoneShare]{Items: rows, Count: len(rows)})
}

func (h *Handler) ListLeaderboardMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeaderboardMetrics")
	defer span.End()

	metrics := usecase.PlayerMetrics()
	writeSuccess(ctx, w, http.StatusOK, listDTO[usecase.MetricDef]{Items: metrics, Count: len(metrics)})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	q := r.URL.Query()
	metric := strings.TrimSpace(r.PathValue("metric"))
	asCSV := strings.EqualFold(strings.TrimSpace(q.Get("format")), "csv")
	if trimmed, ok := strings.CutSuffix(metric, ".csv"); ok {
		metric = trimmed
		asCSV = true
	}

	req := leaderboardRequest{
		Metric: metric,
		Mode:   strings.TrimSpace(q.Get("mode")),
		Limit:  strings.TrimSpace(q.Get("limit")),
		Full:   strings.TrimSpace(q.Get("full")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	mode, ok := aggregate.ParseMode(req.Mode)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown mode %q", usecase.ErrInvalidInput, req.Mode))
		return
	}
	limit := 10
	if req.Limit != "" {
		limit, _ = strconv.Atoi(req.Limit)
	}
	full, _ := strconv.ParseBool(req.Full)

	rows, err := h.analytics.PlayerLeaderboard(ctx, usecase.LeaderboardQuery{
		SourceID: sourceParam(r),
		Metric:   metric,
		Mode:     mode,
		Limit:    limit,
		Full:     full,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard failed", "metric", metric, "error", err)
		writeError(ctx, w, err)
		return
	}

	if asCSV {
		writeCSV(ctx, w, metric+".csv", leaderboardCSVHeader, leaderboardCSVRows(rows))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leaderboardDTO{Metric: metric, Mode: string(mode), Rows: rows})
}

func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComparePlayers")
	defer span.End()

	q := r.URL.Query()
	req := compareRequest{A: strings.TrimSpace(q.Get("a")), B: strings.TrimSpace(q.Get("b"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.analytics.ComparePlayers(ctx, sourceParam(r), req.A, req.B)
	if err != nil {
		h.logger.WarnContext(ctx, "compare players failed", "a", req.A, "b", req.B, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, listDTO[usecase.PlayerComparison]{Items: items, Count: len(items)})
}

func (h *Handler) GetShotSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetShotSummary")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	summary, err := h.analytics.ShotSummary(ctx, sourceParam(r), playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "shot summary failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func sourceParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("source"))
}

type listEventsRequest struct {
	TeamID   string `validate:"omitempty,max=64"`
	PlayerID string `validate:"omitempty,max=64"`
	Zone     string `validate:"omitempty,max=64"`
	Type     string `validate:"omitempty,max=32"`
	Limit    string `validate:"omitempty,number"`
}

type classifyRequest struct {
	X string `validate:"required,numeric"`
	Y string `validate:"required,numeric"`
}

type leaderboardRequest struct {
	Metric string `validate:"required,max=32"`
	Mode   string `validate:"omitempty,max=16"`
	Limit  string `validate:"omitempty,number"`
	Full   string `validate:"omitempty,boolean"`
}

type compareRequest struct {
	A string `validate:"required,max=64"`
	B string `validate:"required,max=64,nefield=A"`
}
