package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.CreatePlayer)
	mux.HandleFunc("GET /v1/players/available", handler.ListAvailablePlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PUT /v1/players/{playerID}", handler.UpdatePlayer)
	mux.HandleFunc("DELETE /v1/players/{playerID}", handler.DeletePlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/placement", handler.GetPlayerPlacement)
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/lineups/{team}", handler.GetLineup)
	mux.HandleFunc("PUT /v1/lineups/{team}/slots", handler.AssignSlot)
	// Forward lines and defense pairs take the line as ?line=line1 or ?line=pair1.
	mux.HandleFunc("DELETE /v1/lineups/{team}/slots/{section}/{position}", handler.UnassignSlot)
	mux.HandleFunc("GET /v1/lineups/{team}/slots/{section}/{position}/candidates", handler.ListSlotCandidates)
}
