package player

import "context"

// Repository describes the roster storage the use cases need. List keeps
// insertion order.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	Insert(ctx context.Context, p Player) error
	Update(ctx context.Context, p Player) (bool, error)
	Delete(ctx context.Context, playerID string) (bool, error)
	ReplaceAll(ctx context.Context, players []Player) error
}
