package storage

import "fmt"

// Backing is the opaque string-keyed store the repositories persist to.
// It is the Go stand-in for browser local storage: whole values are
// written and read atomically per key, with no partial updates.
type Backing interface {
	// Get retrieves the value stored under key.
	// The second return value is false when the key is absent.
	Get(key string) (string, bool)

	// Set writes value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes the key. Removing an absent key is a no-op.
	Remove(key string)
}

// Config holds backing-store configuration.
type Config struct {
	Type     string // memory, local
	BasePath string // For local storage
}

// NewBacking creates a backing store based on configuration.
func NewBacking(cfg Config) (Backing, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryBacking(), nil
	case "local":
		return NewLocalBacking(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
