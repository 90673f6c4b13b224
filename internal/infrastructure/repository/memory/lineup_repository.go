package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/gmmode/internal/domain/lineup"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[lineup.Team]lineup.Lineup
}

// NewLineupRepository starts both lineups empty.
func NewLineupRepository() *LineupRepository {
	items := make(map[lineup.Team]lineup.Lineup, len(lineup.Teams))
	for _, team := range lineup.Teams {
		items[team] = lineup.Lineup{}
	}
	return &LineupRepository{items: items}
}

func (r *LineupRepository) Get(_ context.Context, team lineup.Team) (lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[team]
	if !ok {
		return lineup.Lineup{}, fmt.Errorf("%w: %s", lineup.ErrUnknownTeam, team)
	}

	// Lineup is made of arrays, so the copy is deep.
	return item, nil
}

func (r *LineupRepository) Save(_ context.Context, team lineup.Team, item lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[team]; !ok {
		return fmt.Errorf("%w: %s", lineup.ErrUnknownTeam, team)
	}
	r.items[team] = item
	return nil
}
