package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Collection persists one entity kind as a single JSON document
// holding an array. Every mutation is read whole, transform, write
// whole; Update serializes those cycles under the collection mutex so
// a capacity check and the write it guards cannot interleave.
type Collection[T any] struct {
	name string
	path string
	mu   sync.Mutex
}

func NewCollection[T any](dataDir, name string) *Collection[T] {
	return &Collection[T]{name: name, path: filepath.Join(dataDir, name+".json")}
}

// Load returns the collection's contents. An absent or unparsable
// backing file yields an empty slice; the file self-heals on the next
// save.
func (c *Collection[T]) Load() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// SaveAll replaces the backing document with items, creating the data
// directory if needed.
func (c *Collection[T]) SaveAll(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveAll(items)
}

// Update runs fn on the current contents and persists what it returns.
// If fn errors nothing is written. The mutex is held across the whole
// read-modify-write cycle.
func (c *Collection[T]) Update(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := fn(c.load())
	if err != nil {
		return err
	}
	return c.saveAll(items)
}

func (c *Collection[T]) load() []T {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("⚠️  storage: %s is not a valid JSON array, treating %q as empty", c.path, c.name)
		return []T{}
	}
	return items
}

func (c *Collection[T]) saveAll(items []T) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, raw, 0o644)
}
