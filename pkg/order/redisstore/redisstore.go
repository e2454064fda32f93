// Package redisstore keeps the order document in Redis and provides a
// Redis lock for serializing writers across processes.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"foodorder/pkg/order"
)

// Store saves all orders as one JSON document under a single key.
type Store struct {
	client redis.UniversalClient
	key    string
}

// New returns a store using key on client.
func New(client redis.UniversalClient, key string) *Store {
	return &Store{client: client, key: key}
}

// Load returns the stored orders, or an empty slice when the key is unset.
func (s *Store) Load(ctx context.Context) ([]order.Order, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return []order.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}

	var orders []order.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	if orders == nil {
		orders = []order.Order{}
	}
	return orders, nil
}

// Save overwrites the document. A single SET is atomic for readers.
func (s *Store) Save(ctx context.Context, orders []order.Order) error {
	if orders == nil {
		orders = []order.Order{}
	}
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}

// ErrLockLost is returned on release when the lock expired or was taken
// over by another holder.
var ErrLockLost = errors.New("order lock lost")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a single-key Redis mutex implementing order.Locker.
type Locker struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
	retry  time.Duration
}

// NewLocker returns a lock on key that expires after ttl if never released.
func NewLocker(client redis.UniversalClient, key string, ttl time.Duration) *Locker {
	return &Locker{client: client, key: key, ttl: ttl, retry: 25 * time.Millisecond}
}

// Lock blocks until the lock is held or ctx is done.
func (l *Locker) Lock(ctx context.Context) (func(context.Context) error, error) {
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", l.key, err)
		}
		if ok {
			return func(ctx context.Context) error { return l.release(ctx, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire %s: %w", l.key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *Locker) release(ctx context.Context, token string) error {
	n, err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Int()
	if err != nil {
		return fmt.Errorf("release %s: %w", l.key, err)
	}
	if n == 0 {
		return ErrLockLost
	}
	return nil
}
