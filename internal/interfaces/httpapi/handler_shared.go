package httpapi

import (
	"context"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gmmode/internal/domain/lineup"
	"github.com/riskibarqy/gmmode/internal/domain/player"
	"github.com/riskibarqy/gmmode/internal/usecase"
)

// inputField holds the raw text of a form field. It accepts a JSON string or
// a bare number so clamping sees what the client typed.
type inputField string

func (f *inputField) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*f = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = inputField(s)
	default:
		*f = inputField(raw)
	}
	return nil
}

type playerRequest struct {
	FirstName    inputField `json:"first_name" validate:"max=64"`
	LastName     inputField `json:"last_name" validate:"max=64"`
	Number       inputField `json:"number" validate:"max=16"`
	Position     inputField `json:"position" validate:"max=16"`
	Overall      inputField `json:"overall" validate:"max=16"`
	ContractTerm inputField `json:"contract_term" validate:"max=16"`
	Salary       inputField `json:"salary" validate:"max=32"`
}

func (r playerRequest) toInput() player.Input {
	return player.Input{
		FirstName:    string(r.FirstName),
		LastName:     string(r.LastName),
		Number:       string(r.Number),
		Position:     string(r.Position),
		Overall:      string(r.Overall),
		ContractTerm: string(r.ContractTerm),
		Salary:       string(r.Salary),
	}
}

type assignSlotRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=128"`
	Section  string `json:"section" validate:"required,oneof=forwards defense goalies"`
	Line     string `json:"line" validate:"omitempty,max=16"`
	Position string `json:"position" validate:"required,max=16"`
}

type playerDTO struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	FullName     string  `json:"full_name"`
	Number       int     `json:"number"`
	Position     string  `json:"position"`
	Overall      int     `json:"overall"`
	ContractTerm int     `json:"contract_term"`
	Salary       float64 `json:"salary"`
	Lineup       string  `json:"lineup,omitempty"`
}

type slotDTO struct {
	Section  string     `json:"section"`
	Line     string     `json:"line,omitempty"`
	Position string     `json:"position"`
	Player   *playerDTO `json:"player"`
}

type lineupDTO struct {
	Team  string    `json:"team"`
	Slots []slotDTO `json:"slots"`
}

type placementDTO struct {
	PlayerID string `json:"player_id"`
	Status   string `json:"status"`
	Team     string `json:"team,omitempty"`
	Section  string `json:"section,omitempty"`
	Line     string `json:"line,omitempty"`
	Position string `json:"position,omitempty"`
}

type deletePlayerDTO struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func playerToDTO(ctx context.Context, p player.Player, status lineup.Status) playerDTO {
	ctx, span := startSpan(ctx, "httpapi.playerToDTO")
	defer span.End()

	return playerDTO{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		FullName:     p.FullName(),
		Number:       p.Number,
		Position:     string(p.Position),
		Overall:      p.Overall,
		ContractTerm: p.ContractTerm,
		Salary:       p.Salary,
		Lineup:       string(status),
	}
}

func playersToDTO(ctx context.Context, players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(ctx, p, ""))
	}
	return out
}

func lineupToDTO(ctx context.Context, view usecase.LineupView) lineupDTO {
	ctx, span := startSpan(ctx, "httpapi.lineupToDTO")
	defer span.End()

	out := lineupDTO{
		Team:  string(view.Team),
		Slots: make([]slotDTO, 0, len(view.Slots)),
	}
	for _, sv := range view.Slots {
		item := slotDTO{
			Section:  string(sv.Slot.Section),
			Line:     sv.Slot.Line,
			Position: string(sv.Slot.Position),
		}
		if sv.Player != nil {
			dto := playerToDTO(ctx, *sv.Player, "")
			item.Player = &dto
		}
		out.Slots = append(out.Slots, item)
	}
	return out
}

func placementToDTO(playerID string, status lineup.Status, placement usecase.Placement, found bool) placementDTO {
	out := placementDTO{PlayerID: playerID, Status: string(status)}
	if !found {
		return out
	}
	out.Team = string(placement.Team)
	out.Section = string(placement.Slot.Section)
	out.Line = placement.Slot.Line
	out.Position = string(placement.Slot.Position)
	return out
}
