// Package memory implements an in-memory order store.
package memory

import (
	"context"
	"sync"

	"foodorder/pkg/order"
)

// Store provides an in-memory implementation of order.Store.
type Store struct {
	mu     sync.RWMutex
	orders []order.Order
}

// New creates an empty in-memory store.
func New(seed ...order.Order) *Store {
	return &Store{orders: append([]order.Order(nil), seed...)}
}

// Load returns a copy of the stored orders.
func (s *Store) Load(ctx context.Context) ([]order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]order.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

// Save replaces the stored orders with a copy of orders.
func (s *Store) Save(ctx context.Context, orders []order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders[:0:0], orders...)
	return nil
}
