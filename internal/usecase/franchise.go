package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/gmmode/internal/domain/lineup"
	"github.com/riskibarqy/gmmode/internal/domain/player"
	"github.com/riskibarqy/gmmode/internal/platform/id"
	"github.com/riskibarqy/gmmode/internal/platform/logging"
)

// StateWriter receives a snapshot after every mutation. Implementations must
// not block the caller on storage I/O and must not report failures back.
type StateWriter interface {
	SavePlayers(ctx context.Context, players []player.Player)
	SaveLineup(ctx context.Context, team lineup.Team, item lineup.Lineup)
}

type discardWriter struct{}

func (discardWriter) SavePlayers(context.Context, []player.Player)           {}
func (discardWriter) SaveLineup(context.Context, lineup.Team, lineup.Lineup) {}

// Franchise is one GM session: the roster and its NHL and AHL lineups. Both
// services share one mutex so every operation runs to completion before the
// next one starts.
type Franchise struct {
	mu sync.Mutex

	Roster  *RosterService
	Lineups *LineupService
}

func NewFranchise(
	playerRepo player.Repository,
	lineupRepo lineup.Repository,
	idGen id.Generator,
	writer StateWriter,
	logger *logging.Logger,
) *Franchise {
	if writer == nil {
		writer = discardWriter{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	f := &Franchise{}
	f.Lineups = &LineupService{
		mu:         &f.mu,
		playerRepo: playerRepo,
		lineupRepo: lineupRepo,
		writer:     writer,
		logger:     logger,
	}
	f.Roster = &RosterService{
		mu:         &f.mu,
		playerRepo: playerRepo,
		lineups:    f.Lineups,
		ids:        idGen,
		writer:     writer,
		logger:     logger,
	}
	return f
}

type RestoreResult struct {
	Players      int
	DroppedSlots int
}

// Restore installs previously persisted state. Slots naming a player that is
// not on the roster are dropped, and a player found in more than one slot
// keeps only the first one in search order. Repaired lineups are written
// back.
func (f *Franchise) Restore(ctx context.Context, players []player.Player, lineups map[lineup.Team]lineup.Lineup) (RestoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Franchise.Restore")
	defer span.End()

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.Roster.playerRepo.ReplaceAll(ctx, players); err != nil {
		return RestoreResult{}, fmt.Errorf("replace roster: %w", err)
	}
	stored, err := f.Roster.playerRepo.List(ctx)
	if err != nil {
		return RestoreResult{}, fmt.Errorf("list players: %w", err)
	}

	known := make(map[string]struct{}, len(stored))
	for _, p := range stored {
		known[p.ID] = struct{}{}
	}

	result := RestoreResult{Players: len(stored)}
	seen := make(map[string]struct{}, len(stored))
	for _, team := range lineup.Teams {
		item := lineups[team]
		dropped := 0
		for _, occ := range item.Occupants() {
			_, onRoster := known[occ.PlayerID]
			_, dup := seen[occ.PlayerID]
			if !onRoster || dup {
				if err := item.Set(occ.Slot, ""); err != nil {
					return RestoreResult{}, fmt.Errorf("clear slot %s: %w", occ.Slot, err)
				}
				dropped++
				continue
			}
			seen[occ.PlayerID] = struct{}{}
		}

		if err := f.Lineups.lineupRepo.Save(ctx, team, item); err != nil {
			return RestoreResult{}, fmt.Errorf("save %s lineup: %w", team, err)
		}
		if dropped > 0 {
			f.Lineups.writer.SaveLineup(ctx, team, item)
			f.Lineups.logger.WarnContext(ctx, "dropped invalid lineup slots on restore",
				"team", team,
				"dropped", dropped,
			)
		}
		result.DroppedSlots += dropped
	}

	return result, nil
}
