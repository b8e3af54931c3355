package storage

// MemoryBacking implements Backing over an in-process map.
// Used by tests and by demo runs that should not touch disk.
type MemoryBacking struct {
	values map[string]string
}

// NewMemoryBacking creates an empty in-memory backing store.
func NewMemoryBacking() *MemoryBacking {
	return &MemoryBacking{values: make(map[string]string)}
}

func (b *MemoryBacking) Get(key string) (string, bool) {
	v, ok := b.values[key]
	return v, ok
}

func (b *MemoryBacking) Set(key, value string) error {
	b.values[key] = value
	return nil
}

func (b *MemoryBacking) Remove(key string) {
	delete(b.values, key)
}
