package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/gmmode/internal/domain/lineup"
	"github.com/riskibarqy/gmmode/internal/domain/player"
	"github.com/riskibarqy/gmmode/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	filter, order, err := parsePlayerQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0)
	for v := range h.roster.ListPlayers(ctx, filter, order) {
		items = append(items, playerToDTO(ctx, v.Player, v.Status))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.roster.AddPlayer(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(ctx, p, lineup.StatusUnassigned))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	view, err := h.roster.GetPlayer(ctx, playerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, view.Player, view.Status))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	var req playerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, found, err := h.roster.EditPlayer(ctx, playerID, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: player %q", usecase.ErrNotFound, playerID))
		return
	}

	status, err := h.lineups.Status(ctx, p.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve lineup status failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(ctx, p, status))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	deleted, err := h.roster.DeletePlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !deleted {
		writeError(ctx, w, fmt.Errorf("%w: player %q", usecase.ErrNotFound, playerID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, deletePlayerDTO{ID: playerID, Deleted: true})
}

func (h *Handler) ListAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailablePlayers")
	defer span.End()

	players, err := h.lineups.AvailablePlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list available players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, players))
}

func (h *Handler) GetPlayerPlacement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerPlacement")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	view, err := h.roster.GetPlayer(ctx, playerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	placement, found, err := h.lineups.Locate(ctx, playerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "locate player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, placementToDTO(playerID, view.Status, placement, found))
}

func parsePlayerQuery(r *http.Request) (usecase.PlayerFilter, usecase.PlayerSort, error) {
	query := r.URL.Query()

	filter := usecase.PlayerFilter{Query: strings.TrimSpace(query.Get("q"))}
	if raw := strings.TrimSpace(query.Get("position")); raw != "" {
		pos, ok := player.ParsePosition(raw)
		if !ok {
			return usecase.PlayerFilter{}, usecase.PlayerSort{}, fmt.Errorf("%w: unknown position %q", usecase.ErrInvalidInput, raw)
		}
		filter.Position = pos
	}
	if raw := strings.TrimSpace(query.Get("lineup")); raw != "" {
		status, ok := lineup.ParseStatus(raw)
		if !ok {
			return usecase.PlayerFilter{}, usecase.PlayerSort{}, fmt.Errorf("%w: unknown lineup filter %q", usecase.ErrInvalidInput, raw)
		}
		filter.Status = status
	}

	key, ok := usecase.ParseSortKey(query.Get("sort"))
	if !ok {
		return usecase.PlayerFilter{}, usecase.PlayerSort{}, fmt.Errorf("%w: unknown sort key %q", usecase.ErrInvalidInput, query.Get("sort"))
	}
	order := usecase.PlayerSort{Key: key}
	switch strings.ToLower(strings.TrimSpace(query.Get("order"))) {
	case "", "desc":
	case "asc":
		order.Ascending = true
	default:
		return usecase.PlayerFilter{}, usecase.PlayerSort{}, fmt.Errorf("%w: order must be asc or desc", usecase.ErrInvalidInput)
	}

	return filter, order, nil
}
