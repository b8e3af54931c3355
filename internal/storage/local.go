package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalBacking implements Backing on the local filesystem,
// one file per key under a base directory.
type LocalBacking struct {
	basePath string
}

// NewLocalBacking creates a filesystem-backed store.
func NewLocalBacking(cfg Config) (*LocalBacking, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./data"
	}

	// Create base directory if it doesn't exist
	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalBacking{basePath: cfg.BasePath}, nil
}

func (b *LocalBacking) keyPath(key string) string {
	// Keys are fixed identifiers (chatMessages, students, ...), not user
	// input, but keep them contained to the base directory regardless.
	return filepath.Join(b.basePath, filepath.Base(key)+".json")
}

func (b *LocalBacking) Get(key string) (string, bool) {
	data, err := os.ReadFile(b.keyPath(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (b *LocalBacking) Set(key, value string) error {
	if err := os.WriteFile(b.keyPath(key), []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (b *LocalBacking) Remove(key string) {
	// Ignore missing files, matching Backing semantics.
	_ = os.Remove(b.keyPath(key))
}
