package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists keys as a single JSON document, written atomically via a
// temp file rename. This mirrors what a browser keeps in local storage.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFileStore loads (or creates) the store at path. An empty path resolves
// to a file under the user cache directory.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolving cache dir: %w", err)
		}
		path = filepath.Join(cacheDir, "heddiekitchen", "session.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}

	store := &FileStore{path: path, values: map[string]string{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("reading storage file: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &store.values); err != nil {
			return nil, fmt.Errorf("decoding storage file: %w", err)
		}
	}
	return store, nil
}

func (f *FileStore) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.flushLocked()
}

func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.flushLocked()
}

func (f *FileStore) Close() error { return nil }

func (f *FileStore) flushLocked() error {
	raw, err := json.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("encoding storage file: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing storage file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing storage file: %w", err)
	}
	return nil
}
