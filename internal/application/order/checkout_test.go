package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
)

var validCheckout = dto.CheckoutRequest{ShippingAddress: "Calle 1 # 2-3, Bogotá", PaymentMethod: "tarjeta"}

func TestCheckout_EscenarioCompleto(t *testing.T) {
	env := newCheckoutEnv(t)
	env.store.SeedProduct("PR300001", "50", 5)
	env.store.SeedProduct("PR300002", "30", 3)
	seedCart(t, env.store, buyer, "CR500001",
		line{productID: "PR300001", qty: 2, price: "50"},
		line{productID: "PR300002", qty: 1, price: "30"},
	)

	out, replayed, err := env.uc.Checkout(context.Background(), buyer, validCheckout, "")
	require.NoError(t, err)
	assert.False(t, replayed)

	assert.Equal(t, "OR700001", out.Order.ID)
	assert.True(t, decimal.NewFromInt(130).Equal(out.Order.Total), "total = %s", out.Order.Total)
	assert.Equal(t, entity.OrderPending, out.Order.Status)
	assert.Equal(t, "COMP-2026-700001", out.Order.ReceiptNumber)
	assert.Equal(t, 2, out.ItemsCount)

	assert.Equal(t, "PA900001", out.Payment.ID)
	assert.Equal(t, entity.PaymentApproved, out.Payment.Status)
	assert.Equal(t, "TRX-2026-900001", out.Payment.TransactionCode)
	assert.True(t, out.Order.Total.Equal(out.Payment.Amount))

	assert.Equal(t, 3, env.store.InventoryOf("PR300001").Available)
	assert.Equal(t, 2, env.store.InventoryOf("PR300002").Available)
	assert.Equal(t, 3, env.store.Product("PR300001").Stock)
	assert.Equal(t, 2, env.store.Product("PR300002").Stock)

	assert.Equal(t, entity.CartConverted, env.store.CartByID("CR500001").Status)
	assert.Zero(t, env.store.CartItemCount("CR500001"))
	assert.Equal(t, 2, env.store.OrderLineCount())

	require.Len(t, env.events.events, 1)
	assert.Equal(t, EventOrderCreated, env.events.events[0].Type)
	assert.Len(t, env.events.events[0].Items, 2)
	assert.Equal(t, 1, env.metrics.succeeded)
}

func TestCheckout_CobraPrecioVigente(t *testing.T) {
	env := newCheckoutEnv(t)
	p := env.store.SeedProduct("PR300001", "50", 5)
	seedCart(t, env.store, buyer, "CR500001", line{productID: "PR300001", qty: 2, price: "50"})

	p.Price = decimal.NewFromInt(45)
	env.store.SetProduct(p)

	out, _, err := env.uc.Checkout(context.Background(), buyer, validCheckout, "")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(90).Equal(out.Order.Total), "total = %s", out.Order.Total)
}

func TestCheckout_IDsMonotonicos(t *testing.T) {
	env := newCheckoutEnv(t)
	env.store.SeedProduct("PR300001", "10", 10)
	ctx := context.Background()

	var ids []string
	for i, cart := range []string{"CR500001", "CR500002", "CR500003"} {
		user := []string{"US100001", "US100002", "US100003"}[i]
		seedCart(t, env.store, user, cart, line{productID: "PR300001", qty: 1, price: "10"})
		out, _, err := env.uc.Checkout(ctx, user, validCheckout, "")
		require.NoError(t, err)
		ids = append(ids, out.Order.ID)
	}
	assert.Equal(t, []string{"OR700001", "OR700002", "OR700003"}, ids)
}

func TestCheckout_ErroresDeValidacion(t *testing.T) {
	tests := []struct {
		name    string
		arrange func(env checkoutEnv)
		req     dto.CheckoutRequest
		wantErr error
	}{
		{
			name:    "faltan campos",
			arrange: func(checkoutEnv) {},
			req:     dto.CheckoutRequest{ShippingAddress: "   ", PaymentMethod: "tarjeta"},
			wantErr: domain.ErrMissingFields,
		},
		{
			name:    "sin carrito activo",
			arrange: func(checkoutEnv) {},
			req:     validCheckout,
			wantErr: domain.ErrNoActiveCart,
		},
		{
			name: "carrito vacío",
			arrange: func(env checkoutEnv) {
				seedCart(t, env.store, buyer, "CR500001")
			},
			req:     validCheckout,
			wantErr: domain.ErrEmptyCart,
		},
		{
			name: "producto desactivado",
			arrange: func(env checkoutEnv) {
				p := env.store.SeedProduct("PR300001", "50", 5)
				p.Active = false
				env.store.SetProduct(p)
				seedCart(t, env.store, buyer, "CR500001", line{productID: "PR300001", qty: 1, price: "50"})
			},
			req:     validCheckout,
			wantErr: domain.ErrProductNotAvailable,
		},
		{
			name: "stock insuficiente",
			arrange: func(env checkoutEnv) {
				env.store.SeedProduct("PR300001", "50", 1)
				seedCart(t, env.store, buyer, "CR500001", line{productID: "PR300001", qty: 2, price: "50"})
			},
			req:     validCheckout,
			wantErr: domain.ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCheckoutEnv(t)
			tt.arrange(env)

			_, _, err := env.uc.Checkout(context.Background(), buyer, tt.req, "")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, env.store.OrderCount())
			assert.Zero(t, env.store.PaymentCount())
			assert.Empty(t, env.events.events)
			assert.Len(t, env.metrics.failed, 1)
		})
	}
}

func TestCheckout_StockInsuficienteNoTocaNada(t *testing.T) {
	env := newCheckoutEnv(t)
	env.store.SeedProduct("PR300001", "50", 5)
	env.store.SeedProduct("PR300002", "30", 1)
	seedCart(t, env.store, buyer, "CR500001",
		line{productID: "PR300001", qty: 2, price: "50"},
		line{productID: "PR300002", qty: 3, price: "30"},
	)

	_, _, err := env.uc.Checkout(context.Background(), buyer, validCheckout, "")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var itemErr *domain.ItemError
	require.True(t, errors.As(err, &itemErr))
	assert.Equal(t, "PR300002", itemErr.ProductID)
	assert.Equal(t, 1, itemErr.Available)

	assert.Equal(t, 5, env.store.InventoryOf("PR300001").Available)
	assert.Equal(t, 1, env.store.InventoryOf("PR300002").Available)
	assert.Equal(t, entity.CartActive, env.store.CartByID("CR500001").Status)
	assert.Equal(t, 2, env.store.CartItemCount("CR500001"))
}

func TestCheckout_FalloTardioHaceRollback(t *testing.T) {
	for _, op := range []string{"payments.create", "cart_items.delete_by_cart", "carts.update_status", "inventory.decrement"} {
		t.Run(op, func(t *testing.T) {
			env := newCheckoutEnv(t)
			env.store.SeedProduct("PR300001", "50", 5)
			seedCart(t, env.store, buyer, "CR500001", line{productID: "PR300001", qty: 2, price: "50"})
			env.store.FailOn(op, errors.New("db caída"))

			_, _, err := env.uc.Checkout(context.Background(), buyer, validCheckout, "")
			require.Error(t, err)

			assert.Zero(t, env.store.OrderCount())
			assert.Zero(t, env.store.OrderLineCount())
			assert.Zero(t, env.store.PaymentCount())
			assert.Equal(t, 5, env.store.InventoryOf("PR300001").Available)
			assert.Equal(t, 5, env.store.Product("PR300001").Stock)
			assert.Equal(t, entity.CartActive, env.store.CartByID("CR500001").Status)
			assert.Equal(t, 1, env.store.CartItemCount("CR500001"))
			assert.Equal(t, []string{"internal"}, env.metrics.failed)
		})
	}
}

func TestCheckout_ErrorAlPublicarNoFallaLaCompra(t *testing.T) {
	env := newCheckoutEnv(t)
	env.events.err = errors.New("broker caído")
	env.store.SeedProduct("PR300001", "50", 5)
	seedCart(t, env.store, buyer, "CR500001", line{productID: "PR300001", qty: 1, price: "50"})

	_, _, err := env.uc.Checkout(context.Background(), buyer, validCheckout, "")
	require.NoError(t, err)
	assert.Equal(t, 1, env.store.OrderCount())
}

func TestCheckout_ClaveDeIdempotenciaDevuelveLaMismaOrden(t *testing.T) {
	env := newCheckoutEnv(t)
	env.store.SeedProduct("PR300001", "50", 5)
	seedCart(t, env.store, buyer, "CR500001", line{productID: "PR300001", qty: 1, price: "50"})
	ctx := context.Background()

	first, replayed, err := env.uc.Checkout(ctx, buyer, validCheckout, "clave-1")
	require.NoError(t, err)
	assert.False(t, replayed)

	second, replayed, err := env.uc.Checkout(ctx, buyer, validCheckout, "clave-1")
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, first.Order.ID, second.Order.ID)
	assert.Equal(t, first.Payment.ID, second.Payment.ID)
	assert.Equal(t, 1, second.ItemsCount)
	assert.Equal(t, 1, env.store.OrderCount())
	assert.Equal(t, 4, env.store.InventoryOf("PR300001").Available)
}

func TestCheckout_ClaveEnCursoExpiraPronto(t *testing.T) {
	env := newCheckoutEnv(t)
	env.uc = NewCheckoutUseCase(env.store, env.store.Repos(), env.events, env.metrics, env.idem, env.clock, nil,
		CheckoutConfig{Timeout: 5 * time.Second})
	env.store.SeedProduct("PR300001", "50", 5)
	seedCart(t, env.store, buyer, "CR500001", line{productID: "PR300001", qty: 1, price: "50"})

	_, _, err := env.uc.Checkout(context.Background(), buyer, validCheckout, "clave-1")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, env.idem.claimTTL)
	assert.Equal(t, 24*time.Hour, env.idem.completeTTL)
}

func TestCheckout_ClaveEnCurso(t *testing.T) {
	env := newCheckoutEnv(t)
	_, _, err := env.idem.Claim(context.Background(), buyer, "clave-1", time.Minute)
	require.NoError(t, err)

	_, _, err = env.uc.Checkout(context.Background(), buyer, validCheckout, "clave-1")
	assert.ErrorIs(t, err, domain.ErrIdempotencyInProgress)
}

func TestCheckout_FalloLiberaLaClave(t *testing.T) {
	env := newCheckoutEnv(t)
	ctx := context.Background()

	_, _, err := env.uc.Checkout(ctx, buyer, validCheckout, "clave-1")
	require.ErrorIs(t, err, domain.ErrNoActiveCart)

	env.store.SeedProduct("PR300001", "50", 5)
	seedCart(t, env.store, buyer, "CR500001", line{productID: "PR300001", qty: 1, price: "50"})

	out, replayed, err := env.uc.Checkout(ctx, buyer, validCheckout, "clave-1")
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, "OR700001", out.Order.ID)
}
