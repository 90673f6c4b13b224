package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/gmmode/internal/domain/lineup"
	"github.com/riskibarqy/gmmode/internal/usecase"
)

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	team := lineup.Team(strings.TrimSpace(r.PathValue("team")))
	view, err := h.lineups.View(ctx, team)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, view))
}

func (h *Handler) AssignSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignSlot")
	defer span.End()

	team, err := lineup.ParseTeam(r.PathValue("team"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req assignSlotRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	slot, err := lineup.ParseSlot(req.Section, req.Line, req.Position)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := strings.TrimSpace(req.PlayerID)
	assigned, err := h.lineups.Assign(ctx, playerID, team, slot)
	if err != nil {
		h.logger.WarnContext(ctx, "assign slot failed", "player_id", playerID, "team", team, "slot", slot.String(), "error", err)
		writeError(ctx, w, err)
		return
	}
	if !assigned {
		writeError(ctx, w, fmt.Errorf("%w: player %q", usecase.ErrNotFound, playerID))
		return
	}

	h.writeLineup(w, r.WithContext(ctx), team)
}

func (h *Handler) UnassignSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnassignSlot")
	defer span.End()

	team, slot, err := slotFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if _, err := h.lineups.Unassign(ctx, team, slot); err != nil {
		h.logger.WarnContext(ctx, "unassign slot failed", "team", team, "slot", slot.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.writeLineup(w, r.WithContext(ctx), team)
}

func (h *Handler) ListSlotCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSlotCandidates")
	defer span.End()

	_, slot, err := slotFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.lineups.CompatiblePlayers(ctx, slot.Position)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, players))
}

func (h *Handler) writeLineup(w http.ResponseWriter, r *http.Request, team lineup.Team) {
	ctx := r.Context()
	view, err := h.lineups.View(ctx, team)
	if err != nil {
		h.logger.ErrorContext(ctx, "view lineup failed", "team", team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(ctx, view))
}

func slotFromPath(r *http.Request) (lineup.Team, lineup.Slot, error) {
	team, err := lineup.ParseTeam(r.PathValue("team"))
	if err != nil {
		return "", lineup.Slot{}, err
	}
	slot, err := lineup.ParseSlot(r.PathValue("section"), r.URL.Query().Get("line"), r.PathValue("position"))
	if err != nil {
		return "", lineup.Slot{}, err
	}
	return team, slot, nil
}
