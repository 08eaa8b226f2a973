package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/elbaul-api/internal/application/order"
)

var _ order.IdempotencyStore = (*IdempotencyStore)(nil)

const pendingMarker = "pending"

// IdempotencyStore guarda por usuario y clave el id de la orden creada.
// Mientras el checkout está en curso el valor es "pending" con el TTL corto que pasa Claim;
// Complete lo reemplaza por el id con el TTL largo.
type IdempotencyStore struct {
	c *Client
}

func NewIdempotencyStore(c *Client) *IdempotencyStore {
	return &IdempotencyStore{c: c}
}

func (s *IdempotencyStore) Claim(ctx context.Context, userID, key string, ttl time.Duration) (bool, string, error) {
	k := s.c.key("idempotency", "checkout", userID, key)
	ok, err := s.c.store.SetNX(ctx, k, pendingMarker, ttl).Result()
	if err != nil {
		return false, "", fmt.Errorf("claim idempotency key: %w", err)
	}
	if ok {
		return true, "", nil
	}
	v, err := s.c.store.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// expiró entre SETNX y GET: se trata como en curso
			return false, "", nil
		}
		return false, "", fmt.Errorf("read idempotency key: %w", err)
	}
	if v == pendingMarker {
		return false, "", nil
	}
	return false, v, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, userID, key, orderID string, ttl time.Duration) error {
	if err := s.c.store.Set(ctx, s.c.key("idempotency", "checkout", userID, key), orderID, ttl).Err(); err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, userID, key string) error {
	if err := s.c.store.Del(ctx, s.c.key("idempotency", "checkout", userID, key)).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
