package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/elbaul-api/internal/application/auth"
)

var _ auth.TokenRevoker = (*TokenStore)(nil)

// TokenStore lista de tokens revocados (logout), compartida entre instancias.
// Cada entrada expira cuando expiraría el propio token.
type TokenStore struct {
	c *Client
}

func NewTokenStore(c *Client) *TokenStore {
	return &TokenStore{c: c}
}

func (s *TokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.c.store.Set(ctx, s.c.key("revoked", jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.c.store.Exists(ctx, s.c.key("revoked", jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}
