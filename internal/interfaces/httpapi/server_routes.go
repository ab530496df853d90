package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/ping", handler.Ping)
	mux.HandleFunc("POST /api/ping", handler.Ping)
	mux.HandleFunc("GET /api/health", handler.Health)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /check", handler.Check)
	mux.HandleFunc("POST /save-locations", handler.SaveLocations)
	mux.HandleFunc("GET /api/registered", handler.Registered)
	mux.HandleFunc("GET /api/leaderboard", handler.Leaderboard)
}

func registerModerationRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("GET /api/all-teams", RequireAdminToken(adminToken, http.HandlerFunc(handler.AllTeams)))
	mux.Handle("POST /api/restrict-team", RequireAdminToken(adminToken, http.HandlerFunc(handler.RestrictTeam)))
	mux.Handle("GET /api/team-locations/{teamName}", RequireAdminToken(adminToken, http.HandlerFunc(handler.TeamLocations)))
	mux.Handle("GET /api/overview", RequireAdminToken(adminToken, http.HandlerFunc(handler.Overview)))
}
