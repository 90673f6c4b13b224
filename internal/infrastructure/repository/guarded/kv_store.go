package guarded

import (
	"context"
	"errors"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/gmmode/internal/domain/storage"
	"github.com/riskibarqy/gmmode/internal/platform/logging"
	"github.com/riskibarqy/gmmode/internal/platform/resilience"
)

// KeyValueStore puts a circuit breaker in front of another store. While the
// breaker is open, calls fail with resilience.ErrCircuitOpen without touching
// the backend.
type KeyValueStore struct {
	next    storage.KeyValueStore
	breaker *resilience.CircuitBreaker
}

func NewKeyValueStore(next storage.KeyValueStore, cfg resilience.CircuitBreakerConfig, logger *logging.Logger) *KeyValueStore {
	if logger == nil {
		logger = logging.Default()
	}

	breaker := resilience.NewCircuitBreaker(cfg)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("storage circuit breaker state changed", "from", from, "to", to)
	})

	return &KeyValueStore{next: next, breaker: breaker}
}

func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := s.breaker.Allow(); err != nil {
		return nil, false, crerr.Wrapf(err, "get %s", key)
	}

	value, found, err := s.next.Get(ctx, key)
	s.record(err)
	return value, found, err
}

func (s *KeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.breaker.Allow(); err != nil {
		return crerr.Wrapf(err, "put %s", key)
	}

	err := s.next.Put(ctx, key, value)
	s.record(err)
	return err
}

func (s *KeyValueStore) State() resilience.CircuitState {
	return s.breaker.State()
}

// record leaves caller cancellation out of the breaker's counts.
func (s *KeyValueStore) record(err error) {
	if errors.Is(err, context.Canceled) {
		s.breaker.Release()
		return
	}
	s.breaker.Record(err)
}
