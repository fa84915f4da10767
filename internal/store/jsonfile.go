package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// collection is a whole-file JSON list of records. Every mutation is a
// read-modify-write of the entire file, serialized by a per-collection
// mutex so concurrent mutations within the process cannot lose updates.
type collection[T any] struct {
	path string
	mu   sync.Mutex
}

func newCollection[T any](path string) (*collection[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	c := &collection[T]{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := c.write(nil); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// read parses the collection file. A missing file reads as an empty list
// (first boot); a file that fails to parse is reported as
// ErrStorageUnavailable rather than silently treated as empty.
func (c *collection[T]) read() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, c.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, c.path, err)
	}
	return records, nil
}

// write serializes records and overwrites the file through a rename so a
// crash mid-write cannot leave a torn file behind.
func (c *collection[T]) write(records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

// List returns all records.
func (c *collection[T]) List() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

// Mutate runs fn over the current records under the collection lock and
// persists whatever fn returns. When fn returns an error nothing is written.
func (c *collection[T]) Mutate(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return c.write(updated)
}
