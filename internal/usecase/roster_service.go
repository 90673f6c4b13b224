package usecase

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/riskibarqy/gmmode/internal/domain/lineup"
	"github.com/riskibarqy/gmmode/internal/domain/player"
	"github.com/riskibarqy/gmmode/internal/platform/id"
	"github.com/riskibarqy/gmmode/internal/platform/logging"
)

// PlayerView is a roster player with the lineup status it had when the view
// was taken.
type PlayerView struct {
	Player player.Player
	Status lineup.Status
}

// PlayerFilter narrows ListPlayers. Zero fields match everything.
type PlayerFilter struct {
	// Query matches first or last name case-insensitively, or the jersey
	// number as a substring.
	Query    string
	Position player.Position
	Status   lineup.Status
}

type SortKey string

const (
	SortByOverall SortKey = "overall"
	SortByName    SortKey = "name"
	SortByNumber  SortKey = "number"
	SortBySalary  SortKey = "salary"
)

func ParseSortKey(raw string) (SortKey, bool) {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case "", SortByOverall:
		return SortByOverall, true
	case SortByName:
		return SortByName, true
	case SortByNumber:
		return SortByNumber, true
	case SortBySalary:
		return SortBySalary, true
	default:
		return "", false
	}
}

// PlayerSort orders ListPlayers. The zero value sorts by overall, highest
// first.
type PlayerSort struct {
	Key       SortKey
	Ascending bool
}

type RosterService struct {
	mu         *sync.Mutex
	playerRepo player.Repository
	lineups    *LineupService
	ids        id.Generator
	writer     StateWriter
	logger     *logging.Logger
}

// AddPlayer clamps every field of in and appends the player to the roster.
// Only empty names are rejected.
func (s *RosterService) AddPlayer(ctx context.Context, in player.Input) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddPlayer")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	playerID, err := s.ids.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	p, err := player.Normalize(playerID, in, player.ModeCreate)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Insert(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}
	if err := s.persistLocked(ctx); err != nil {
		return player.Player{}, err
	}

	s.logger.DebugContext(ctx, "player added", "player_id", p.ID, "position", p.Position)
	return p, nil
}

// EditPlayer replaces every field of an existing player and keeps its id. An
// unknown id is a no-op reported as false.
func (s *RosterService) EditPlayer(ctx context.Context, playerID string, in player.Input) (player.Player, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.EditPlayer", playerAttr(playerID))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, false, nil
	}

	p, err := player.Normalize(playerID, in, player.ModeUpdate)
	if err != nil {
		return player.Player{}, true, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if _, err := s.playerRepo.Update(ctx, p); err != nil {
		return player.Player{}, true, fmt.Errorf("update player: %w", err)
	}
	if err := s.persistLocked(ctx); err != nil {
		return player.Player{}, true, err
	}

	s.logger.DebugContext(ctx, "player edited", "player_id", p.ID)
	return p, true, nil
}

// DeletePlayer removes a player and clears every lineup slot naming them. An
// unknown id is a no-op reported as false.
func (s *RosterService) DeletePlayer(ctx context.Context, playerID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DeletePlayer", playerAttr(playerID))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.playerRepo.Delete(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("delete player: %w", err)
	}
	if !deleted {
		return false, nil
	}

	cleared, err := s.lineups.clearPlayerLocked(ctx, playerID)
	if err != nil {
		return true, err
	}
	if err := s.persistLocked(ctx); err != nil {
		return true, err
	}

	s.logger.DebugContext(ctx, "player deleted", "player_id", playerID, "cleared_slots", cleared)
	return true, nil
}

func (s *RosterService) GetPlayer(ctx context.Context, playerID string) (PlayerView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetPlayer", playerAttr(playerID))
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return PlayerView{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return PlayerView{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return PlayerView{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	status, err := s.lineups.statusLocked(ctx, playerID)
	if err != nil {
		return PlayerView{}, err
	}
	return PlayerView{Player: p, Status: status}, nil
}

// ListPlayers yields the filtered, sorted roster. Each range over the result
// reads a fresh snapshot, and the lock is released before the first yield so
// the loop body may call back into the franchise. Ties keep roster order.
func (s *RosterService) ListPlayers(ctx context.Context, filter PlayerFilter, order PlayerSort) iter.Seq[PlayerView] {
	return func(yield func(PlayerView) bool) {
		ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListPlayers")
		defer span.End()

		views, err := s.snapshot(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "list players failed", "error", err)
			return
		}

		matcher := newPlayerMatcher(filter)
		matched := make([]PlayerView, 0, len(views))
		for _, v := range views {
			if matcher.match(v) {
				matched = append(matched, v)
			}
		}

		slices.SortStableFunc(matched, comparePlayers(order))
		for _, v := range matched {
			if !yield(v) {
				return
			}
		}
	}
}

func (s *RosterService) snapshot(ctx context.Context) ([]PlayerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	statuses, err := s.lineups.statusesLocked(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerView, 0, len(players))
	for _, p := range players {
		status, placed := statuses[p.ID]
		if !placed {
			status = lineup.StatusUnassigned
		}
		out = append(out, PlayerView{Player: p, Status: status})
	}
	return out, nil
}

func (s *RosterService) persistLocked(ctx context.Context) error {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	s.writer.SavePlayers(ctx, players)
	return nil
}

type playerMatcher struct {
	query    string
	position player.Position
	status   lineup.Status
}

func newPlayerMatcher(filter PlayerFilter) playerMatcher {
	return playerMatcher{
		query:    strings.ToLower(strings.TrimSpace(filter.Query)),
		position: filter.Position,
		status:   filter.Status,
	}
}

func (m playerMatcher) match(v PlayerView) bool {
	if m.position != "" && v.Player.Position != m.position {
		return false
	}
	if m.status != "" && v.Status != m.status {
		return false
	}
	if m.query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(v.Player.FirstName), m.query) ||
		strings.Contains(strings.ToLower(v.Player.LastName), m.query) ||
		strings.Contains(strconv.Itoa(v.Player.Number), m.query)
}

func comparePlayers(order PlayerSort) func(a, b PlayerView) int {
	var base func(a, b player.Player) int
	switch order.Key {
	case SortByName:
		base = func(a, b player.Player) int {
			if c := cmp.Compare(strings.ToLower(a.LastName), strings.ToLower(b.LastName)); c != 0 {
				return c
			}
			return cmp.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName))
		}
	case SortByNumber:
		base = func(a, b player.Player) int { return cmp.Compare(a.Number, b.Number) }
	case SortBySalary:
		base = func(a, b player.Player) int { return cmp.Compare(a.Salary, b.Salary) }
	default:
		base = func(a, b player.Player) int { return cmp.Compare(a.Overall, b.Overall) }
	}

	if order.Ascending {
		return func(a, b PlayerView) int { return base(a.Player, b.Player) }
	}
	return func(a, b PlayerView) int { return base(b.Player, a.Player) }
}
