package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
)

const (
	selectKVBlobQuery = `SELECT key, value, updated_at FROM ` + kvBlobsTable + ` WHERE key = $1`
	upsertKVBlobQuery = `INSERT INTO ` + kvBlobsTable + ` (key, value, updated_at)
VALUES ($1, $2::jsonb, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// KeyValueStore keeps one JSON blob per key in the kv_blobs table.
type KeyValueStore struct {
	db *sqlx.DB
}

func NewKeyValueStore(db *sqlx.DB) *KeyValueStore {
	return &KeyValueStore{db: db}
}

func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	row, err := s.get(ctx, key)
	if isRetryable(err) {
		row, err = s.get(ctx, key)
	}
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, crerr.Wrapf(err, "get blob %s", key)
	}

	return row.Value, true, nil
}

func (s *KeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	err := s.put(ctx, key, value)
	if isRetryable(err) {
		err = s.put(ctx, key, value)
	}
	if err != nil {
		return crerr.Wrapf(err, "put blob %s", key)
	}
	return nil
}

func (s *KeyValueStore) get(ctx context.Context, key string) (kvBlobTableModel, error) {
	var row kvBlobTableModel
	err := s.db.GetContext(ctx, &row, selectKVBlobQuery, key)
	return row, err
}

func (s *KeyValueStore) put(ctx context.Context, key string, value []byte) error {
	// jsonb takes text; lib/pq would send []byte as bytea
	_, err := s.db.ExecContext(ctx, upsertKVBlobQuery, key, string(value))
	return err
}
