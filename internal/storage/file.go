package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/graph-chase/internal/config"
	"github.com/vovakirdan/graph-chase/internal/engine"
)

// ErrCorrupt is returned when a persisted snapshot cannot be decoded.
var ErrCorrupt = errors.New("storage: corrupt snapshot")

// FileStore keeps a single snapshot in a file.
// Files ending in .json are JSON; anything else is YAML.
type FileStore struct {
	path string
}

// NewFileStore returns a store for path. A leading ~ is expanded.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("storage: empty state path")
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return &FileStore{path: expanded}, nil
}

// Path returns the snapshot file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) isJSON() bool {
	return strings.EqualFold(filepath.Ext(f.path), ".json")
}

// Load reads the snapshot. A missing file returns nil, nil.
func (f *FileStore) Load() (*engine.State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}

	var state engine.State
	if f.isJSON() {
		err = json.Unmarshal(data, &state)
	} else {
		err = yaml.Unmarshal(data, &state)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	return &state, nil
}

// Save writes the snapshot, replacing any previous one.
// The file is written to a temporary sibling and renamed into place.
func (f *FileStore) Save(state engine.State) error {
	var (
		data []byte
		err  error
	)
	if f.isJSON() {
		data, err = json.MarshalIndent(state, "", "  ")
	} else {
		data, err = yaml.Marshal(state)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("storage: cannot replace %s: %w", f.path, err)
	}
	return nil
}

// Reset deletes the snapshot file. A missing file is not an error.
func (f *FileStore) Reset() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: cannot remove %s: %w", f.path, err)
	}
	return nil
}
