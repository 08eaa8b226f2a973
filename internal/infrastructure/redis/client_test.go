package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elbaul-api/pkg/config"
)

type mockCmdable struct {
	data map[string]string
	ttl  map[string]time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(_ context.Context, key string, value any, exp time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	m.ttl[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(_ context.Context, key string, value any, exp time.Duration) *redis.BoolCmd {
	if _, ok := m.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	m.ttl[key] = exp
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (m *mockCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(m.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestKey_OmiteVacios(t *testing.T) {
	c := &Client{}
	assert.Equal(t, "elbaul:idempotency:checkout:US100001:abc", c.key("idempotency", "checkout", "US100001", "abc"))
	assert.Equal(t, "elbaul:revoked", c.key("revoked", " "))
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	assert.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:secreto@cache:6380/2"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = optionsFromConfig(config.RedisConfig{Addr: "localhost:6379", DB: 1})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 1, opts.DB)
}

func TestTokenStore_RevocaHastaExpirar(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	store := NewTokenStore(&Client{store: mock})

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", 30*time.Minute))
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 30*time.Minute, mock.ttl["elbaul:revoked:jti-1"])
}

func TestTokenStore_TokenYaExpiradoNoSeGuarda(t *testing.T) {
	mock := newMockCmdable()
	store := NewTokenStore(&Client{store: mock})

	require.NoError(t, store.Revoke(context.Background(), "jti-2", -time.Second))
	assert.Empty(t, mock.data)
}

func TestIdempotencyStore_Ciclo(t *testing.T) {
	ctx := context.Background()
	store := NewIdempotencyStore(&Client{store: newMockCmdable()})

	claimed, orderID, err := store.Claim(ctx, "US100001", "k1", time.Hour)
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Empty(t, orderID)

	// segundo intento mientras el primero sigue en curso
	claimed, orderID, err = store.Claim(ctx, "US100001", "k1", time.Hour)
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Empty(t, orderID)

	require.NoError(t, store.Complete(ctx, "US100001", "k1", "OR700001", time.Hour))
	claimed, orderID, err = store.Claim(ctx, "US100001", "k1", time.Hour)
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, "OR700001", orderID)

	// la misma clave de otro usuario es independiente
	claimed, _, err = store.Claim(ctx, "US100002", "k1", time.Hour)
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestIdempotencyStore_ReleaseLiberaLaClave(t *testing.T) {
	ctx := context.Background()
	store := NewIdempotencyStore(&Client{store: newMockCmdable()})

	_, _, err := store.Claim(ctx, "US100001", "k2", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "US100001", "k2"))

	claimed, _, err := store.Claim(ctx, "US100001", "k2", time.Hour)
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestIdempotencyStore_PendienteConTTLCorto(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	store := NewIdempotencyStore(&Client{store: mock})
	k := store.c.key("idempotency", "checkout", "US100001", "k3")

	_, _, err := store.Claim(ctx, "US100001", "k3", 20*time.Second)
	require.NoError(t, err)
	assert.Equal(t, pendingMarker, mock.data[k])
	assert.Equal(t, 20*time.Second, mock.ttl[k])

	require.NoError(t, store.Complete(ctx, "US100001", "k3", "OR700001", 24*time.Hour))
	assert.Equal(t, "OR700001", mock.data[k])
	assert.Equal(t, 24*time.Hour, mock.ttl[k])
}
