package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/gmmode/internal/config"
	"github.com/riskibarqy/gmmode/internal/domain/storage"
	"github.com/riskibarqy/gmmode/internal/infrastructure/repository/file"
	"github.com/riskibarqy/gmmode/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/gmmode/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/gmmode/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/gmmode/internal/infrastructure/snapshot"
	"github.com/riskibarqy/gmmode/internal/interfaces/httpapi"
	"github.com/riskibarqy/gmmode/internal/platform/id"
	"github.com/riskibarqy/gmmode/internal/platform/logging"
	"github.com/riskibarqy/gmmode/internal/usecase"
)

// App owns the HTTP server, the franchise session and the storage behind it.
type App struct {
	Server    *http.Server
	Franchise *usecase.Franchise

	persister    *snapshot.Persister
	closeStore   func() error
	flushTimeout time.Duration
	logger       *logging.Logger
}

// New opens storage, restores the persisted session and builds the HTTP
// server. An empty store is seeded with the demo roster when configured.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	store, closeStore, err := newKeyValueStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.StorageBreaker.Enabled && cfg.StorageDriver != config.StorageMemory {
		store = guarded.NewKeyValueStore(store, cfg.StorageBreaker, logger.Named("storage"))
	}

	persister, err := snapshot.NewPersister(store, cfg.PersistWorkers, logger.Named("persister"),
		snapshot.WithWriteTimeout(cfg.PersistWriteTimeout),
	)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("create persister: %w", err)
	}

	franchise := usecase.NewFranchise(
		memory.NewPlayerRepository(nil),
		memory.NewLineupRepository(),
		id.NewUUIDGenerator(),
		persister,
		logger,
	)

	a := &App{
		Franchise:    franchise,
		persister:    persister,
		closeStore:   closeStore,
		flushTimeout: cfg.PersistFlushTimeout,
		logger:       logger,
	}
	if err := a.restore(ctx, store, cfg.SeedDemoRoster); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	handler := httpapi.NewHandler(franchise, logger)
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

func (a *App) restore(ctx context.Context, store storage.KeyValueStore, seed bool) error {
	state, err := snapshot.Load(ctx, store)
	if err != nil {
		return fmt.Errorf("%w: load persisted state: %v", usecase.ErrDependencyUnavailable, err)
	}

	players := state.Players
	seeded := false
	if !state.Found && seed {
		players = memory.SeedPlayers()
		seeded = true
	}

	result, err := a.Franchise.Restore(ctx, players, state.Lineups)
	if err != nil {
		return fmt.Errorf("restore franchise: %w", err)
	}
	if seeded {
		a.persister.SavePlayers(ctx, players)
	}

	a.logger.InfoContext(ctx, "franchise restored",
		"players", result.Players,
		"dropped_slots", result.DroppedSlots,
		"found", state.Found,
		"seeded", seeded,
	)
	return nil
}

// Close flushes pending snapshot writes and releases storage. The HTTP server
// must already be shut down.
func (a *App) Close(ctx context.Context) error {
	flushCtx, cancel := context.WithTimeout(ctx, a.flushTimeout)
	defer cancel()

	var firstErr error
	if err := a.persister.Close(flushCtx); err != nil {
		firstErr = fmt.Errorf("flush snapshots: %w", err)
	}
	if err := a.closeStore(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close storage: %w", err)
	}
	return firstErr
}

func newKeyValueStore(ctx context.Context, cfg config.Config) (storage.KeyValueStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.StorageMemory:
		return memory.NewKeyValueStore(), noop, nil
	case config.StorageFile:
		store, err := file.NewKeyValueStore(cfg.StorageFileDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file storage: %w", err)
		}
		return store, noop, nil
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewKeyValueStore(db), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", DatabaseURL(cfg),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping postgres: %v", usecase.ErrDependencyUnavailable, err)
	}

	return db, nil
}

// DatabaseURL is the connection string used by the service and the migration
// command.
func DatabaseURL(cfg config.Config) string {
	return normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
}
