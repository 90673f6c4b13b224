package snapshot

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/gmmode/internal/domain/lineup"
	"github.com/riskibarqy/gmmode/internal/domain/player"
	"github.com/riskibarqy/gmmode/internal/domain/storage"
)

// State is everything a session persists.
type State struct {
	Players []player.Player
	Lineups map[lineup.Team]lineup.Lineup
	// Found is false when no key was present at all.
	Found bool
}

// Load reads the players and both lineups concurrently. Missing keys decode
// to an empty roster or an empty lineup.
func Load(ctx context.Context, store storage.KeyValueStore) (State, error) {
	keys := make([]string, len(lineup.Teams))
	for i, team := range lineup.Teams {
		key, err := LineupKey(team)
		if err != nil {
			return State{}, err
		}
		keys[i] = key
	}

	var (
		players     []player.Player
		playersSeen bool
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		raw, ok, err := store.Get(ctx, storage.KeyPlayers)
		if err != nil {
			return crerr.Wrapf(err, "load %s", storage.KeyPlayers)
		}
		if !ok {
			return nil
		}
		decoded, err := DecodePlayers(raw)
		if err != nil {
			return err
		}
		players, playersSeen = decoded, true
		return nil
	})

	results := make([]lineup.Lineup, len(lineup.Teams))
	found := make([]bool, len(lineup.Teams))
	for i, key := range keys {
		p.Go(func(ctx context.Context) error {
			raw, ok, err := store.Get(ctx, key)
			if err != nil {
				return crerr.Wrapf(err, "load %s", key)
			}
			if !ok {
				return nil
			}
			decoded, err := DecodeLineup(raw)
			if err != nil {
				return crerr.Wrapf(err, "load %s", key)
			}
			results[i], found[i] = decoded, true
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return State{}, err
	}

	state := State{
		Players: players,
		Lineups: make(map[lineup.Team]lineup.Lineup, len(lineup.Teams)),
		Found:   playersSeen,
	}
	for i, team := range lineup.Teams {
		state.Lineups[team] = results[i]
		state.Found = state.Found || found[i]
	}
	return state, nil
}
