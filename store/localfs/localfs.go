package localfs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"

	"xdao.co/reflector/store"
)

// KV is a local filesystem-backed key-value store.
//
// Each key maps to one file named by the hex sha2-256 of the key, sharded by
// its first two characters. Writes go through a temp file and rename so a
// crashed Set never leaves a partial value behind.
type KV struct {
	root string
}

// New constructs a filesystem KV rooted at root. The directory will be created if needed.
func New(root string) (*KV, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &KV{root: root}, nil
}

func (k *KV) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, store.ErrEmptyKey
	}
	b, err := os.ReadFile(k.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (k *KV) Set(key, value []byte) error {
	if len(key) == 0 {
		return store.ErrEmptyKey
	}
	path := k.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".set-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func (k *KV) Has(key []byte) bool {
	if len(key) == 0 {
		return false
	}
	_, err := os.Stat(k.pathFor(key))
	return err == nil
}

func (k *KV) pathFor(key []byte) string {
	sum := sha256.Sum256(key)
	s := hex.EncodeToString(sum[:])
	return filepath.Join(k.root, s[:2], s)
}
