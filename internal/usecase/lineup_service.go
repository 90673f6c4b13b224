package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/gmmode/internal/domain/lineup"
	"github.com/riskibarqy/gmmode/internal/domain/player"
	"github.com/riskibarqy/gmmode/internal/platform/logging"
)

// Placement is where a player sits: a lineup and a slot inside it.
type Placement struct {
	Team lineup.Team
	Slot lineup.Slot
}

// SlotView is one slot of a lineup with its occupant resolved against the
// current roster. Player is nil for an empty slot.
type SlotView struct {
	Slot   lineup.Slot
	Player *player.Player
}

type LineupView struct {
	Team  lineup.Team
	Slots []SlotView
}

// LineupService keeps the NHL and AHL lineups. A player occupies at most one
// slot across both lineups at any time.
type LineupService struct {
	mu         *sync.Mutex
	playerRepo player.Repository
	lineupRepo lineup.Repository
	writer     StateWriter
	logger     *logging.Logger
}

// Assign moves a roster player into slot. The player is first removed from
// wherever they sat, then written over any prior occupant, who becomes
// unassigned. An unknown player id is a no-op reported as false.
func (s *LineupService) Assign(ctx context.Context, playerID string, team lineup.Team, slot lineup.Slot) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Assign", playerAttr(playerID), teamAttr(string(team)))
	defer span.End()

	team, slot, err := validateAddress(team, slot)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return false, nil
	}

	lineups, err := s.loadLocked(ctx)
	if err != nil {
		return false, err
	}

	target := lineups[team]
	displaced, err := target.Get(slot)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, t := range lineup.Teams {
		item := lineups[t]
		item.ClearPlayer(playerID)
		lineups[t] = item
	}

	target = lineups[team]
	if err := target.Set(slot, playerID); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	lineups[team] = target

	for _, t := range lineup.Teams {
		if err := s.saveLocked(ctx, t, lineups[t]); err != nil {
			return false, err
		}
	}

	s.logger.DebugContext(ctx, "player assigned",
		"player_id", playerID,
		"team", team,
		"slot", slot.String(),
		"displaced_player_id", displaced,
	)
	return true, nil
}

// Unassign empties slot and reports whether it held anyone.
func (s *LineupService) Unassign(ctx context.Context, team lineup.Team, slot lineup.Slot) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Unassign", teamAttr(string(team)))
	defer span.End()

	team, slot, err := validateAddress(team, slot)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.lineupRepo.Get(ctx, team)
	if err != nil {
		return false, fmt.Errorf("get %s lineup: %w", team, err)
	}
	previous, err := item.Get(slot)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := item.Set(slot, ""); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.saveLocked(ctx, team, item); err != nil {
		return false, err
	}

	return previous != "", nil
}

// Locate returns the first slot holding playerID, searching the NHL lineup
// before the AHL one.
func (s *LineupService) Locate(ctx context.Context, playerID string) (Placement, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Locate", playerAttr(playerID))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.locateLocked(ctx, playerID)
}

func (s *LineupService) Status(ctx context.Context, playerID string) (lineup.Status, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Status", playerAttr(playerID))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.statusLocked(ctx, playerID)
}

func (s *LineupService) IsAssigned(ctx context.Context, playerID string) (bool, error) {
	status, err := s.Status(ctx, playerID)
	if err != nil {
		return false, err
	}
	return status != lineup.StatusUnassigned, nil
}

// CompatiblePlayers lists roster players whose position fits the slot
// position, in roster order. Players already in a lineup are included.
func (s *LineupService) CompatiblePlayers(ctx context.Context, position lineup.SlotPosition) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.CompatiblePlayers")
	defer span.End()

	required, ok := position.RequiredPosition()
	if !ok {
		return nil, fmt.Errorf("%w: unknown slot position %q", ErrInvalidInput, position)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.playersByPositionLocked(ctx, required)
}

func (s *LineupService) PlayersByPosition(ctx context.Context, position player.Position) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.PlayersByPosition")
	defer span.End()

	if _, ok := player.AllPositions[position]; !ok {
		return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, position)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.playersByPositionLocked(ctx, position)
}

// AvailablePlayers lists roster players that sit in neither lineup.
func (s *LineupService) AvailablePlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.AvailablePlayers")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	statuses, err := s.statusesLocked(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		if _, placed := statuses[p.ID]; placed {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// View resolves every slot of a lineup against the current roster, so an
// edited player shows their latest attributes.
func (s *LineupService) View(ctx context.Context, team lineup.Team) (LineupView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.View", teamAttr(string(team)))
	defer span.End()

	team, err := lineup.ParseTeam(string(team))
	if err != nil {
		return LineupView{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.lineupRepo.Get(ctx, team)
	if err != nil {
		return LineupView{}, fmt.Errorf("get %s lineup: %w", team, err)
	}

	view := LineupView{Team: team, Slots: make([]SlotView, 0, lineup.SlotsPerLineup)}
	for _, slot := range lineup.AllSlots() {
		sv := SlotView{Slot: slot}
		playerID, err := item.Get(slot)
		if err != nil {
			return LineupView{}, fmt.Errorf("read slot %s: %w", slot, err)
		}
		if playerID != "" {
			p, exists, err := s.playerRepo.GetByID(ctx, playerID)
			if err != nil {
				return LineupView{}, fmt.Errorf("get player: %w", err)
			}
			if exists {
				sv.Player = &p
			}
		}
		view.Slots = append(view.Slots, sv)
	}
	return view, nil
}

func (s *LineupService) loadLocked(ctx context.Context) (map[lineup.Team]lineup.Lineup, error) {
	out := make(map[lineup.Team]lineup.Lineup, len(lineup.Teams))
	for _, team := range lineup.Teams {
		item, err := s.lineupRepo.Get(ctx, team)
		if err != nil {
			return nil, fmt.Errorf("get %s lineup: %w", team, err)
		}
		out[team] = item
	}
	return out, nil
}

func (s *LineupService) saveLocked(ctx context.Context, team lineup.Team, item lineup.Lineup) error {
	if err := s.lineupRepo.Save(ctx, team, item); err != nil {
		return fmt.Errorf("save %s lineup: %w", team, err)
	}
	s.writer.SaveLineup(ctx, team, item)
	return nil
}

func (s *LineupService) locateLocked(ctx context.Context, playerID string) (Placement, bool, error) {
	for _, team := range lineup.Teams {
		item, err := s.lineupRepo.Get(ctx, team)
		if err != nil {
			return Placement{}, false, fmt.Errorf("get %s lineup: %w", team, err)
		}
		if slot, ok := item.Find(playerID); ok {
			return Placement{Team: team, Slot: slot}, true, nil
		}
	}
	return Placement{}, false, nil
}

func (s *LineupService) statusLocked(ctx context.Context, playerID string) (lineup.Status, error) {
	placement, found, err := s.locateLocked(ctx, playerID)
	if err != nil {
		return "", err
	}
	if !found {
		return lineup.StatusUnassigned, nil
	}
	return statusOf(placement.Team), nil
}

// statusesLocked maps every placed player id to its status. Players missing
// from the map are unassigned.
func (s *LineupService) statusesLocked(ctx context.Context) (map[string]lineup.Status, error) {
	out := make(map[string]lineup.Status)
	for _, team := range lineup.Teams {
		item, err := s.lineupRepo.Get(ctx, team)
		if err != nil {
			return nil, fmt.Errorf("get %s lineup: %w", team, err)
		}
		for _, occ := range item.Occupants() {
			if _, placed := out[occ.PlayerID]; placed {
				continue
			}
			out[occ.PlayerID] = statusOf(team)
		}
	}
	return out, nil
}

// clearPlayerLocked removes playerID from both lineups and persists the ones
// that changed.
func (s *LineupService) clearPlayerLocked(ctx context.Context, playerID string) (int, error) {
	total := 0
	for _, team := range lineup.Teams {
		item, err := s.lineupRepo.Get(ctx, team)
		if err != nil {
			return total, fmt.Errorf("get %s lineup: %w", team, err)
		}
		cleared := item.ClearPlayer(playerID)
		if cleared == 0 {
			continue
		}
		if err := s.saveLocked(ctx, team, item); err != nil {
			return total, err
		}
		total += cleared
	}
	return total, nil
}

func (s *LineupService) playersByPositionLocked(ctx context.Context, position player.Position) ([]player.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		if p.Position == position {
			out = append(out, p)
		}
	}
	return out, nil
}

func statusOf(team lineup.Team) lineup.Status {
	if team == lineup.TeamNHL {
		return lineup.StatusPrimary
	}
	return lineup.StatusSecondary
}

func validateAddress(team lineup.Team, slot lineup.Slot) (lineup.Team, lineup.Slot, error) {
	parsedTeam, err := lineup.ParseTeam(string(team))
	if err != nil {
		return "", lineup.Slot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	parsedSlot, err := lineup.ParseSlot(string(slot.Section), slot.Line, string(slot.Position))
	if err != nil {
		return "", lineup.Slot{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return parsedTeam, parsedSlot, nil
}
