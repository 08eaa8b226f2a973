package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/testutil"
)

// placeOrder ejecuta un checkout de PR300001 x2 y PR300002 x1 y devuelve el id de la orden.
func placeOrder(t *testing.T, env checkoutEnv) string {
	t.Helper()
	env.store.SeedProduct("PR300001", "50", 5)
	env.store.SeedProduct("PR300002", "30", 3)
	seedCart(t, env.store, buyer, "CR500001",
		line{productID: "PR300001", qty: 2, price: "50"},
		line{productID: "PR300002", qty: 1, price: "30"},
	)
	out, _, err := env.uc.Checkout(context.Background(), buyer, validCheckout, "")
	require.NoError(t, err)
	return out.Order.ID
}

func newCancel(store *testutil.MemStore, env checkoutEnv) *CancelUseCase {
	return NewCancelUseCase(store, env.events, env.metrics, env.clock, nil)
}

func TestCancel_DevuelveStockYReembolsa(t *testing.T) {
	env := newCheckoutEnv(t)
	orderID := placeOrder(t, env)
	uc := newCancel(env.store, env)

	out, err := uc.Cancel(context.Background(), buyer, orderID, "ya no lo necesito")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, out.Status)

	assert.Equal(t, entity.OrderCancelled, env.store.OrderByID(orderID).Status)
	assert.Equal(t, entity.PaymentRefunded, env.store.PaymentOf(orderID).Status)
	assert.Equal(t, 5, env.store.InventoryOf("PR300001").Available)
	assert.Equal(t, 3, env.store.InventoryOf("PR300002").Available)
	assert.Equal(t, 5, env.store.Product("PR300001").Stock)
	assert.Equal(t, 3, env.store.Product("PR300002").Stock)

	require.Len(t, env.events.events, 2)
	evt := env.events.events[1]
	assert.Equal(t, EventOrderCancelled, evt.Type)
	assert.Equal(t, "ya no lo necesito", evt.Reason)
	assert.Equal(t, 1, env.metrics.cancelled)
}

func TestCancel_DosVecesFalla(t *testing.T) {
	env := newCheckoutEnv(t)
	orderID := placeOrder(t, env)
	uc := newCancel(env.store, env)
	ctx := context.Background()

	_, err := uc.Cancel(ctx, buyer, orderID, "")
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, buyer, orderID, "")
	assert.ErrorIs(t, err, domain.ErrCannotCancelOrder)
	assert.Equal(t, 5, env.store.InventoryOf("PR300001").Available, "no se repone dos veces")
}

func TestCancel_OrdenEnviadaNoSeCancela(t *testing.T) {
	env := newCheckoutEnv(t)
	orderID := placeOrder(t, env)
	ctx := context.Background()
	require.NoError(t, env.store.Repos().Orders.UpdateStatus(ctx, orderID, entity.OrderShipped))

	_, err := newCancel(env.store, env).Cancel(ctx, buyer, orderID, "")
	assert.ErrorIs(t, err, domain.ErrCannotCancelOrder)
}

func TestCancel_OrdenAjenaOInexistente(t *testing.T) {
	env := newCheckoutEnv(t)
	orderID := placeOrder(t, env)
	uc := newCancel(env.store, env)
	ctx := context.Background()

	_, err := uc.Cancel(ctx, "US100099", orderID, "")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = uc.Cancel(ctx, buyer, "OR799999", "")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestCancel_FalloHaceRollback(t *testing.T) {
	env := newCheckoutEnv(t)
	orderID := placeOrder(t, env)
	env.store.FailOn("payments.update_status", errors.New("db caída"))

	_, err := newCancel(env.store, env).Cancel(context.Background(), buyer, orderID, "")
	require.Error(t, err)

	assert.Equal(t, entity.OrderPending, env.store.OrderByID(orderID).Status)
	assert.Equal(t, entity.PaymentApproved, env.store.PaymentOf(orderID).Status)
	assert.Equal(t, 3, env.store.InventoryOf("PR300001").Available)
	assert.Equal(t, 2, env.store.InventoryOf("PR300002").Available)
}
