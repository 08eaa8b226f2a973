package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elbaul-api/internal/application/cart"
	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/application/order"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/internal/infrastructure/postgres"
	"github.com/jhoicas/elbaul-api/internal/testutil"
)

var checkoutIn = dto.CheckoutRequest{ShippingAddress: "Calle 1 # 2-3", PaymentMethod: "tarjeta"}

type pgEnv struct {
	tx    *postgres.TxRunner
	repos repository.Repos
	cart  *cart.CartUseCase
	buy   *order.CheckoutUseCase
	undo  *order.CancelUseCase
}

func newPgEnv(t *testing.T) pgEnv {
	t.Helper()
	pool := testutil.NewTestPool(t)
	tx := postgres.NewTxRunner(pool)
	repos := postgres.NewRepos(pool)
	return pgEnv{
		tx:    tx,
		repos: repos,
		cart:  cart.NewCartUseCase(tx, repos, nil, nil),
		buy:   order.NewCheckoutUseCase(tx, repos, nil, nil, nil, nil, nil, order.CheckoutConfig{}),
		undo:  order.NewCancelUseCase(tx, nil, nil, nil, nil),
	}
}

func (e pgEnv) seedUser(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, e.repos.Users.Create(context.Background(), &entity.User{
		ID: id, FirstName: "Test", LastName: id, Email: id + "@example.com", PasswordHash: "x",
		Role: entity.RoleCliente, Active: true, CreatedAt: time.Now(),
	}))
}

// seedProduct crea categoría (si falta), producto e inventario con available = stock.
func (e pgEnv) seedProduct(t *testing.T, id, price string, stock int) {
	t.Helper()
	ctx := context.Background()
	cat, err := e.repos.Categories.GetByID(ctx, "CA200001")
	require.NoError(t, err)
	if cat == nil {
		require.NoError(t, e.repos.Categories.Create(ctx, &entity.Category{ID: "CA200001", Name: "Electrónica", Active: true, CreatedAt: time.Now()}))
	}
	now := time.Now()
	require.NoError(t, e.repos.Products.Create(ctx, &entity.Product{
		ID: id, Title: "Producto " + id, Price: decimal.RequireFromString(price), Condition: entity.ConditionGood,
		Stock: stock, CategoryID: "CA200001", Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, e.repos.Inventory.Create(ctx, &entity.Inventory{ID: "IN" + id[2:], ProductID: id, Available: stock, UpdatedAt: now}))
}

func (e pgEnv) inventory(t *testing.T, productID string) (*entity.Inventory, *entity.Product) {
	t.Helper()
	ctx := context.Background()
	inv, err := e.repos.Inventory.GetByProductID(ctx, productID)
	require.NoError(t, err)
	p, err := e.repos.Products.GetByID(ctx, productID)
	require.NoError(t, err)
	return inv, p
}

func TestPostgres_SecuenciasMonotonicas(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := e.repos.Sequences.Next(ctx, domain.KindOrder)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"OR700001", "OR700002", "OR700003"}, ids)
}

func TestPostgres_CheckoutYCancelacion(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()
	e.seedUser(t, "US100001")
	e.seedProduct(t, "PR300001", "50", 5)
	e.seedProduct(t, "PR300002", "30", 3)

	_, _, err := e.cart.AddItem(ctx, "US100001", dto.AddCartItemRequest{ProductID: "PR300001", Quantity: 2})
	require.NoError(t, err)
	_, _, err = e.cart.AddItem(ctx, "US100001", dto.AddCartItemRequest{ProductID: "PR300002", Quantity: 1})
	require.NoError(t, err)

	out, _, err := e.buy.Checkout(ctx, "US100001", checkoutIn, "")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(130).Equal(out.Order.Total), "total = %s", out.Order.Total)
	assert.Equal(t, 2, out.ItemsCount)

	inv, p := e.inventory(t, "PR300001")
	assert.Equal(t, 3, inv.Available)
	assert.Equal(t, 3, p.Stock)

	active, err := e.repos.Carts.GetActiveByUser(ctx, "US100001")
	require.NoError(t, err)
	assert.Nil(t, active, "el carrito queda convertido")

	cancelled, err := e.undo.Cancel(ctx, "US100001", out.Order.ID, "prueba")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, cancelled.Status)

	inv, p = e.inventory(t, "PR300001")
	assert.Equal(t, 5, inv.Available)
	assert.Equal(t, 5, p.Stock)
	pay, err := e.repos.Payments.GetByOrderID(ctx, out.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentRefunded, pay.Status)
}

func TestPostgres_CheckoutFallidoNoDejaRastro(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()
	e.seedUser(t, "US100001")
	e.seedProduct(t, "PR300001", "50", 5)
	e.seedProduct(t, "PR300002", "30", 3)

	_, _, err := e.cart.AddItem(ctx, "US100001", dto.AddCartItemRequest{ProductID: "PR300001", Quantity: 2})
	require.NoError(t, err)
	_, _, err = e.cart.AddItem(ctx, "US100001", dto.AddCartItemRequest{ProductID: "PR300002", Quantity: 3})
	require.NoError(t, err)

	// Otro proceso se lleva el stock del segundo producto.
	ok, err := e.repos.Inventory.Decrement(ctx, "PR300002", 2)
	require.NoError(t, err)
	require.True(t, ok)

	_, _, err = e.buy.Checkout(ctx, "US100001", checkoutIn, "")
	var itemErr *domain.ItemError
	require.True(t, errors.As(err, &itemErr), "err = %v", err)
	assert.Equal(t, "PR300002", itemErr.ProductID)
	assert.Equal(t, 1, itemErr.Available)

	inv, _ := e.inventory(t, "PR300001")
	assert.Equal(t, 5, inv.Available, "sin decrementos parciales")
	active, err := e.repos.Carts.GetActiveByUser(ctx, "US100001")
	require.NoError(t, err)
	assert.NotNil(t, active, "el carrito sigue activo")
}

func TestPostgres_CheckoutsConcurrentesUltimaUnidad(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()
	e.seedProduct(t, "PR300001", "50", 1)
	buyers := []string{"US100001", "US100002"}
	for _, u := range buyers {
		e.seedUser(t, u)
		_, _, err := e.cart.AddItem(ctx, u, dto.AddCartItemRequest{ProductID: "PR300001", Quantity: 1})
		require.NoError(t, err)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, u := range buyers {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, _, err := e.buy.Checkout(ctx, userID, checkoutIn, "")
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}(u)
	}
	wg.Wait()

	var succeeded, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, insufficient)

	inv, p := e.inventory(t, "PR300001")
	assert.Zero(t, inv.Available)
	assert.Zero(t, p.Stock)
}

func TestPostgres_PublicacionesYReacciones(t *testing.T) {
	e := newPgEnv(t)
	ctx := context.Background()
	e.seedUser(t, "US100001")
	e.seedUser(t, "US100002")
	e.seedProduct(t, "PR300001", "50", 1)
	now := time.Now().UTC().Truncate(time.Millisecond)

	post := &entity.Post{ID: "POST700001", UserID: "US100001", Content: "hola", Images: []string{"a.jpg"}, ProductID: "PR300001", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.repos.Posts.Create(ctx, post))
	require.NoError(t, e.repos.Posts.Create(ctx, &entity.Post{ID: "POST700002", UserID: "US100002", Content: "sin producto", CreatedAt: now.Add(time.Second), UpdatedAt: now}))
	require.NoError(t, e.repos.Comments.Create(ctx, &entity.Comment{ID: "CMT800001", PostID: post.ID, UserID: "US100002", Content: "hey", CreatedAt: now, UpdatedAt: now}))

	got, err := e.repos.Posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg"}, got.Images)
	assert.Equal(t, "Producto PR300001", got.ProductTitle)
	assert.Equal(t, 1, got.CommentCount)

	feed, err := e.repos.Posts.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "POST700002", feed[0].ID)
	assert.Empty(t, feed[0].ProductID)

	rc := &entity.Reaction{ID: "RCN900001", UserID: "US100002", Type: "like", TargetKind: entity.TargetPost, TargetID: post.ID, CreatedAt: now}
	require.NoError(t, e.repos.Reactions.Create(ctx, rc))
	dup := *rc
	dup.ID = "RCN900002"
	assert.ErrorIs(t, e.repos.Reactions.Create(ctx, &dup), domain.ErrDuplicate)
	require.NoError(t, e.repos.Reactions.Create(ctx, &entity.Reaction{ID: "RCN900003", UserID: "US100001", Type: "love", TargetKind: entity.TargetComment, TargetID: "CMT800001", CreatedAt: now}))

	require.NoError(t, e.repos.Posts.AdjustLikes(ctx, post.ID, -1))
	got, err = e.repos.Posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Likes, "likes no baja de cero")

	ids, err := e.repos.Comments.DeleteByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"CMT800001"}, ids)
	require.NoError(t, e.repos.Reactions.DeleteByTargets(ctx, entity.TargetComment, ids...))
	counts, err := e.repos.Reactions.CountByTarget(ctx, entity.TargetComment, "CMT800001")
	require.NoError(t, err)
	assert.Empty(t, counts)
	counts, err = e.repos.Reactions.CountByTarget(ctx, entity.TargetPost, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []entity.ReactionCount{{Type: "like", Count: 1}}, counts)
}
