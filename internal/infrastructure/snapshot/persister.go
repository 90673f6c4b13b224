package snapshot

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/gmmode/internal/domain/lineup"
	"github.com/riskibarqy/gmmode/internal/domain/player"
	"github.com/riskibarqy/gmmode/internal/domain/storage"
	"github.com/riskibarqy/gmmode/internal/platform/logging"
)

const defaultWriteTimeout = 5 * time.Second

// LineupKey maps a lineup to its storage key.
func LineupKey(team lineup.Team) (string, error) {
	switch team {
	case lineup.TeamNHL:
		return storage.KeyNHLLineup, nil
	case lineup.TeamAHL:
		return storage.KeyAHLLineup, nil
	default:
		return "", crerr.Wrapf(lineup.ErrUnknownTeam, "storage key for %q", team)
	}
}

// Persister writes snapshots to a KeyValueStore from a worker pool. Each key
// has one pending slot holding its latest snapshot and at most one task
// draining it, so callers never wait for storage and the newest snapshot
// always wins. Failures are logged and never returned.
type Persister struct {
	store        storage.KeyValueStore
	pool         *ants.Pool
	logger       *logging.Logger
	writeTimeout time.Duration

	mu       sync.Mutex
	pending  map[string]pendingWrite
	draining map[string]bool
	closed   bool

	inflight sync.WaitGroup
}

type pendingWrite struct {
	ctx    context.Context
	encode func() ([]byte, error)
}

type PersisterOption func(*Persister)

func WithWriteTimeout(timeout time.Duration) PersisterOption {
	return func(p *Persister) {
		if timeout > 0 {
			p.writeTimeout = timeout
		}
	}
}

func NewPersister(store storage.KeyValueStore, workers int, logger *logging.Logger, opts ...PersisterOption) (*Persister, error) {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, crerr.Wrap(err, "create persist worker pool")
	}

	p := &Persister{
		store:        store,
		pool:         pool,
		logger:       logger,
		writeTimeout: defaultWriteTimeout,
		pending:      make(map[string]pendingWrite),
		draining:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Persister) SavePlayers(ctx context.Context, players []player.Player) {
	items := append([]player.Player(nil), players...)
	p.submit(ctx, storage.KeyPlayers, func() ([]byte, error) {
		return EncodePlayers(items)
	})
}

func (p *Persister) SaveLineup(ctx context.Context, team lineup.Team, item lineup.Lineup) {
	key, err := LineupKey(team)
	if err != nil {
		p.logger.ErrorContext(ctx, "skip lineup snapshot", "team", team, "error", err)
		return
	}
	p.submit(ctx, key, func() ([]byte, error) {
		return EncodeLineup(item)
	})
}

// Close waits for pending writes and releases the pool. Writes submitted
// after Close are dropped.
func (p *Persister) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()
	defer p.pool.Release()

	done := make(chan struct{})
	go func() {
		p.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return crerr.Wrap(ctx.Err(), "wait for pending snapshot writes")
	}
}

func (p *Persister) submit(ctx context.Context, key string, encode func() ([]byte, error)) {
	// the request context ends with the response; the write must outlive it
	write := pendingWrite{ctx: context.WithoutCancel(ctx), encode: encode}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.logger.WarnContext(ctx, "persister closed, snapshot dropped", "key", key)
		return
	}
	p.pending[key] = write
	if p.draining[key] {
		p.mu.Unlock()
		return
	}
	p.draining[key] = true
	p.inflight.Add(1)
	p.mu.Unlock()

	task := func() {
		defer p.inflight.Done()
		p.drain(key)
	}
	if err := p.pool.Submit(task); err != nil {
		p.logger.DebugContext(ctx, "persist pool busy, draining on a dedicated goroutine", "key", key, "error", err)
		go task()
	}
}

// drain writes the pending snapshot of key until none is left.
func (p *Persister) drain(key string) {
	for {
		p.mu.Lock()
		write, ok := p.pending[key]
		if !ok {
			p.draining[key] = false
			p.mu.Unlock()
			return
		}
		delete(p.pending, key)
		p.mu.Unlock()

		p.write(write.ctx, key, write.encode)
	}
}

func (p *Persister) write(ctx context.Context, key string, encode func() ([]byte, error)) {
	raw, err := encode()
	if err != nil {
		p.logger.ErrorContext(ctx, "encode snapshot failed", "key", key, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	if err := p.store.Put(ctx, key, raw); err != nil {
		p.logger.ErrorContext(ctx, "persist snapshot failed", "key", key, "error", err)
	}
}
