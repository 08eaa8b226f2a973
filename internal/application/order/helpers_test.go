package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/testutil"
	"github.com/jhoicas/elbaul-api/pkg/clock"
)

const buyer = "US100001"

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type line struct {
	productID string
	qty       int
	price     string // precio guardado en el carrito
}

// seedCart crea el carrito activo del comprador con las líneas dadas.
func seedCart(t *testing.T, store *testutil.MemStore, userID, cartID string, lines ...line) {
	t.Helper()
	ctx := context.Background()
	r := store.Repos()
	require.NoError(t, r.Carts.Create(ctx, &entity.Cart{ID: cartID, UserID: userID, Status: entity.CartActive, CreatedAt: testNow, UpdatedAt: testNow}))
	for i, l := range lines {
		price := decimal.RequireFromString(l.price)
		require.NoError(t, r.CartItems.Create(ctx, &entity.CartItem{
			ID:        cartID + "-" + string(rune('a'+i)),
			CartID:    cartID,
			ProductID: l.productID,
			Quantity:  l.qty,
			UnitPrice: price,
			Subtotal:  price.Mul(decimal.NewFromInt(int64(l.qty))),
		}))
	}
}

type recordedPublisher struct {
	mu     sync.Mutex
	events []OrderEvent
	err    error
}

func (p *recordedPublisher) Publish(_ context.Context, evt OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

type recordedMetrics struct {
	mu        sync.Mutex
	succeeded int
	failed    []string
	cancelled int
}

func (m *recordedMetrics) CheckoutSucceeded(decimal.Decimal, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.succeeded++
}

func (m *recordedMetrics) CheckoutFailed(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, reason)
}

func (m *recordedMetrics) OrderCancelled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelled++
}

// memIdempotency doble de IdempotencyStore sin TTL.
type memIdempotency struct {
	mu          sync.Mutex
	keys        map[string]string // "" = en curso
	claimTTL    time.Duration
	completeTTL time.Duration
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{keys: map[string]string{}}
}

func (m *memIdempotency) Claim(_ context.Context, userID, key string, ttl time.Duration) (bool, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claimTTL = ttl
	k := userID + ":" + key
	if v, ok := m.keys[k]; ok {
		return false, v, nil
	}
	m.keys[k] = ""
	return true, "", nil
}

func (m *memIdempotency) Complete(_ context.Context, userID, key, orderID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completeTTL = ttl
	m.keys[userID+":"+key] = orderID
	return nil
}

func (m *memIdempotency) Release(_ context.Context, userID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, userID+":"+key)
	return nil
}

type checkoutEnv struct {
	uc      *CheckoutUseCase
	store   *testutil.MemStore
	events  *recordedPublisher
	metrics *recordedMetrics
	idem    *memIdempotency
	clock   *clock.Fixed
}

func newCheckoutEnv(t *testing.T) checkoutEnv {
	t.Helper()
	env := checkoutEnv{
		store:   testutil.NewMemStore(),
		events:  &recordedPublisher{},
		metrics: &recordedMetrics{},
		idem:    newMemIdempotency(),
		clock:   clock.NewFixed(testNow),
	}
	env.uc = NewCheckoutUseCase(env.store, env.store.Repos(), env.events, env.metrics, env.idem, env.clock, nil, CheckoutConfig{})
	return env
}
