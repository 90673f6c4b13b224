package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/gmmode/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	items  map[string]player.Player
	orders []string
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{}
	r.reset(players)
	return r
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[playerID]
	if !ok {
		return player.Player{}, false, nil
	}

	return p, true, nil
}

func (r *PlayerRepository) Insert(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; exists {
		return fmt.Errorf("player %s already exists", p.ID)
	}
	r.items[p.ID] = p
	r.orders = append(r.orders, p.ID)
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, p player.Player) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; !exists {
		return false, nil
	}
	r.items[p.ID] = p
	return true, nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[playerID]; !exists {
		return false, nil
	}
	delete(r.items, playerID)
	for idx, id := range r.orders {
		if id == playerID {
			r.orders = append(r.orders[:idx], r.orders[idx+1:]...)
			break
		}
	}
	return true, nil
}

func (r *PlayerRepository) ReplaceAll(_ context.Context, players []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reset(players)
	return nil
}

// reset keeps the first record of a duplicated id.
func (r *PlayerRepository) reset(players []player.Player) {
	r.items = make(map[string]player.Player, len(players))
	r.orders = make([]string, 0, len(players))
	for _, p := range players {
		if _, dup := r.items[p.ID]; dup {
			continue
		}
		r.items[p.ID] = p
		r.orders = append(r.orders, p.ID)
	}
}
