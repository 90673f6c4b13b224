package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	crerr "github.com/cockroachdb/errors"
)

const blobExt = ".json"

// KeyValueStore keeps each key as <dir>/<key>.json. Writes go to a temp file
// first and are renamed into place, so a reader never sees a torn blob.
type KeyValueStore struct {
	dir string
	mu  sync.Mutex
}

func NewKeyValueStore(dir string) (*KeyValueStore, error) {
	if dir == "" {
		return nil, crerr.New("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, crerr.Wrapf(err, "create storage dir %s", dir)
	}
	return &KeyValueStore{dir: dir}, nil
}

func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, crerr.Wrapf(err, "read blob %s", key)
	}
	return raw, true, nil
}

func (s *KeyValueStore) Put(ctx context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return crerr.Wrapf(err, "create temp blob %s", key)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return crerr.Wrapf(err, "write blob %s", key)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return crerr.Wrapf(err, "sync blob %s", key)
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close blob %s", key)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return crerr.Wrapf(err, "replace blob %s", key)
	}
	return nil
}

func (s *KeyValueStore) path(key string) (string, error) {
	if !validKey(key) {
		return "", crerr.Newf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+blobExt), nil
}

func validKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
