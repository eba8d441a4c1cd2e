package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}

func registerAnalyticsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/snapshot", handler.GetSnapshot)
	mux.HandleFunc("POST /v1/refresh", handler.Refresh)
	mux.HandleFunc("GET /v1/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/zones", handler.ListZones)
	mux.HandleFunc("GET /v1/zones/classify", handler.ClassifyPoint)
	mux.HandleFunc("GET /v1/zones/breakdown", handler.GetZoneBreakdown)
	mux.HandleFunc("GET /v1/leaderboards", handler.ListLeaderboardMetrics)
	// {metric} may carry a .csv suffix for the spreadsheet export.
	mux.HandleFunc("GET /v1/leaderboards/{metric}", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/players/compare", handler.ComparePlayers)
	mux.HandleFunc("GET /v1/players/{playerID}/shots", handler.GetShotSummary)
}
