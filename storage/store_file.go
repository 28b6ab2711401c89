package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const stateFile = "state.json"

// FileStore implements Store over a single JSON file in a client-owned
// folder. The file is chmod 0600 and the folder 0700, matching what a
// credentials file deserves.
type FileStore struct {
	path string
	mu   sync.Mutex
	data map[string]string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates the folder if needed and loads any existing state.
// A corrupt state file is discarded rather than failing construction; the
// stores treat missing state as logged-out.
func NewFileStore(folder string) (*FileStore, error) {
	if err := os.MkdirAll(folder, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state folder: %w", err)
	}
	fs := &FileStore{
		path: filepath.Join(folder, stateFile),
		data: make(map[string]string),
	}
	raw, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if err := json.Unmarshal(raw, &fs.data); err != nil {
		fs.data = make(map[string]string)
	}
	return fs, nil
}

func (fs *FileStore) Get(key string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	value, ok := fs.data[key]
	return value, ok
}

func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.data[key] = value
	return fs.flush()
}

func (fs *FileStore) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.data[key]; !ok {
		return nil
	}
	delete(fs.data, key)
	return fs.flush()
}

func (fs *FileStore) flush() error {
	data, err := json.MarshalIndent(fs.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return os.WriteFile(fs.path, data, 0600)
}
