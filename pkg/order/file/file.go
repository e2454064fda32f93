// Package file stores orders as a single JSON array on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"foodorder/pkg/order"
)

// Store persists orders to a JSON document at Path.
type Store struct {
	path string
}

// New returns a file-backed store. The file and its directory are created
// on the first Save.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the order document.
func (s *Store) Path() string {
	return s.path
}

// Load reads all orders. A missing file is an empty store.
func (s *Store) Load(ctx context.Context) ([]order.Order, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []order.Order{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var orders []order.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if orders == nil {
		orders = []order.Order{}
	}
	return orders, nil
}

// Save writes orders to a temporary file in the same directory and renames
// it over the document, so readers never see a partial write.
func (s *Store) Save(ctx context.Context, orders []order.Order) error {
	if orders == nil {
		orders = []order.Order{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}
