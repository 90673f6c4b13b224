package lineup

import "context"

// Repository exposes the two lineups of a session.
type Repository interface {
	Get(ctx context.Context, team Team) (Lineup, error)
	Save(ctx context.Context, team Team, item Lineup) error
}
