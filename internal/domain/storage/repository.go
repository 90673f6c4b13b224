package storage

import "context"

// Keys of the persisted session state.
const (
	KeyPlayers   = "players"
	KeyNHLLineup = "nhlLineup"
	KeyAHLLineup = "ahlLineup"
)

// KeyValueStore is the external blob store session state is written to.
// Get reports false for a key that was never written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}
