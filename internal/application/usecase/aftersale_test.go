package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/testutil"
	"github.com/jhoicas/elbaul-api/pkg/clock"
)

const buyer = "US100001"

// seedOrder crea una orden con una línea de PR300001 x2 a 50.
func seedOrder(t *testing.T, store *testutil.MemStore, status string) {
	t.Helper()
	ctx := context.Background()
	store.SeedProduct("PR300001", "50", 5)
	r := store.Repos()
	require.NoError(t, r.Orders.Create(ctx, &entity.Order{ID: "OR700001", UserID: buyer, OrderedAt: testNow, Total: decimal.NewFromInt(100), Status: status}))
	require.NoError(t, r.OrderLines.Create(ctx, &entity.OrderLine{
		ID: "IO800001", OrderID: "OR700001", ProductID: "PR300001", Quantity: 2,
		UnitPrice: decimal.NewFromInt(50), Subtotal: decimal.NewFromInt(100),
	}))
}

func TestShipment_DespachaYEntrega(t *testing.T) {
	store := testutil.NewMemStore()
	seedOrder(t, store, entity.OrderConfirmed)
	uc := NewShipmentUseCase(store, store.Repos(), clock.NewFixed(testNow), nil)
	ctx := context.Background()

	sh, err := uc.Create(ctx, dto.CreateShipmentRequest{OrderID: "OR700001", Carrier: "Servientrega", EstimatedDays: 3})
	require.NoError(t, err)
	assert.Equal(t, "EN100001", sh.ID)
	assert.Equal(t, TrackingNumber("EN100001", testNow), sh.TrackingNumber)
	assert.Equal(t, testNow.AddDate(0, 0, 3), sh.EstimatedAt)
	assert.Equal(t, entity.OrderShipped, store.OrderByID("OR700001").Status)

	_, err = uc.Create(ctx, dto.CreateShipmentRequest{OrderID: "OR700001", Carrier: "Otra"})
	assert.ErrorIs(t, err, domain.ErrShipmentAlreadyExists)

	tracked, err := uc.Track(ctx, sh.TrackingNumber)
	require.NoError(t, err)
	assert.Equal(t, sh.ID, tracked.ID)

	_, err = uc.Get(ctx, "US100099", false, sh.ID)
	assert.ErrorIs(t, err, domain.ErrShipmentNotFound)

	delivered, err := uc.Deliver(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentDelivered, delivered.Status)
	assert.Equal(t, entity.OrderDelivered, store.OrderByID("OR700001").Status)

	mine, err := uc.List(ctx, buyer, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, mine.Shipments, 1)
}

func TestShipment_OrdenPendienteNoSeDespacha(t *testing.T) {
	store := testutil.NewMemStore()
	seedOrder(t, store, entity.OrderPending)
	uc := NewShipmentUseCase(store, store.Repos(), clock.NewFixed(testNow), nil)

	_, err := uc.Create(context.Background(), dto.CreateShipmentRequest{OrderID: "OR700001", Carrier: "Servientrega"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrderStatus)
}

func TestReturn_ReembolsoEsElSubtotal(t *testing.T) {
	store := testutil.NewMemStore()
	seedOrder(t, store, entity.OrderDelivered)
	uc := NewReturnUseCase(store, store.Repos(), clock.NewFixed(testNow), nil)
	ctx := context.Background()
	req := dto.CreateReturnRequest{OrderID: "OR700001", ProductID: "PR300001", Reason: "Llegó dañado"}

	out, err := uc.Create(ctx, buyer, req)
	require.NoError(t, err)
	assert.Equal(t, "DE150001", out.ID)
	assert.Equal(t, entity.ReturnRequested, out.Status)
	assert.True(t, decimal.NewFromInt(100).Equal(out.RefundAmount))

	_, err = uc.Create(ctx, buyer, req)
	assert.ErrorIs(t, err, domain.ErrReturnAlreadyExists)

	other := req
	other.ProductID = "PR300009"
	_, err = uc.Create(ctx, buyer, other)
	assert.ErrorIs(t, err, domain.ErrProductNotInOrder)

	_, err = uc.Get(ctx, "US100099", out.ID)
	assert.ErrorIs(t, err, domain.ErrReturnNotFound)

	list, err := uc.List(ctx, buyer, dto.ReturnListRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Returns, 1)
}

func TestReturn_OrdenPendienteNoAdmiteDevolucion(t *testing.T) {
	store := testutil.NewMemStore()
	seedOrder(t, store, entity.OrderPending)
	uc := NewReturnUseCase(store, store.Repos(), clock.NewFixed(testNow), nil)

	_, err := uc.Create(context.Background(), buyer, dto.CreateReturnRequest{OrderID: "OR700001", ProductID: "PR300001", Reason: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidOrderStatus)
}

func TestFavorite_AgregarDuplicadoYQuitar(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedProduct("PR300001", "50", 5)
	uc := NewFavoriteUseCase(store, store.Repos(), clock.NewFixed(testNow))
	ctx := context.Background()

	fav, err := uc.Add(ctx, buyer, "PR300001")
	require.NoError(t, err)
	assert.Equal(t, "FA130001", fav.ID)

	_, err = uc.Add(ctx, buyer, "PR300001")
	assert.ErrorIs(t, err, domain.ErrAlreadyInFavorites)

	_, err = uc.Add(ctx, buyer, "PR399999")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	list, err := uc.List(ctx, buyer)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Remove(ctx, buyer, "PR300001"))
	assert.ErrorIs(t, uc.Remove(ctx, buyer, "PR300001"), domain.ErrFavoriteNotFound)
}

func TestReview_EditarReiniciaAprobacion(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedProduct("PR300001", "50", 5)
	store.SeedUser(entity.User{ID: buyer, FirstName: "Ana", LastName: "Gómez", Active: true})
	uc := NewReviewUseCase(store, store.Repos(), clock.NewFixed(testNow))
	ctx := context.Background()

	_, _, err := uc.Upsert(ctx, buyer, "PR300001", dto.UpsertReviewRequest{Rating: 6})
	assert.ErrorIs(t, err, domain.ErrInvalidRating)

	rv, created, err := uc.Upsert(ctx, buyer, "PR300001", dto.UpsertReviewRequest{Rating: 4, Comment: "Bien"})
	require.NoError(t, err)
	assert.True(t, created)

	out, err := uc.ListByProduct(ctx, "PR300001")
	require.NoError(t, err)
	assert.Empty(t, out.Reviews, "pendiente de aprobación")

	require.NoError(t, uc.Approve(ctx, rv.ID))
	out, err = uc.ListByProduct(ctx, "PR300001")
	require.NoError(t, err)
	require.Len(t, out.Reviews, 1)
	assert.Equal(t, "Ana Gómez", out.Reviews[0].UserName)
	assert.Equal(t, 4.0, out.Stats.Average)
	assert.Equal(t, 1, out.Stats.Distribution["4"])

	_, created, err = uc.Upsert(ctx, buyer, "PR300001", dto.UpsertReviewRequest{Rating: 5})
	require.NoError(t, err)
	assert.False(t, created)
	out, err = uc.ListByProduct(ctx, "PR300001")
	require.NoError(t, err)
	assert.Empty(t, out.Reviews)

	assert.ErrorIs(t, uc.Approve(ctx, "RE129999"), domain.ErrReviewNotFound)
}

func TestFavorite_Verificar(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedProduct("PR300001", "50", 5)
	uc := NewFavoriteUseCase(store, store.Repos(), clock.NewFixed(testNow))
	ctx := context.Background()

	out, err := uc.Check(ctx, buyer, "PR300001")
	require.NoError(t, err)
	assert.False(t, out.IsFavorite)
	assert.Nil(t, out.FavoriteID)

	fav, err := uc.Add(ctx, buyer, "PR300001")
	require.NoError(t, err)
	out, err = uc.Check(ctx, buyer, "PR300001")
	require.NoError(t, err)
	assert.True(t, out.IsFavorite)
	require.NotNil(t, out.FavoriteID)
	assert.Equal(t, fav.ID, *out.FavoriteID)

	out, err = uc.Check(ctx, "US100002", "PR300001")
	require.NoError(t, err)
	assert.False(t, out.IsFavorite)
}

func TestReview_MiResenaYEliminar(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedProduct("PR300001", "50", 5)
	uc := NewReviewUseCase(store, store.Repos(), clock.NewFixed(testNow))
	ctx := context.Background()

	mine, err := uc.Mine(ctx, buyer, "PR300001")
	require.NoError(t, err)
	assert.Nil(t, mine.Review)
	assert.ErrorIs(t, uc.DeleteMine(ctx, buyer, "PR300001"), domain.ErrReviewNotFound)

	rv, _, err := uc.Upsert(ctx, buyer, "PR300001", dto.UpsertReviewRequest{Rating: 3, Comment: "Regular"})
	require.NoError(t, err)

	// la propia se ve aunque siga pendiente de aprobación
	mine, err = uc.Mine(ctx, buyer, "PR300001")
	require.NoError(t, err)
	require.NotNil(t, mine.Review)
	assert.Equal(t, rv.ID, mine.Review.ID)
	assert.False(t, mine.Review.Approved)

	assert.ErrorIs(t, uc.DeleteMine(ctx, "US100002", "PR300001"), domain.ErrReviewNotFound)
	require.NoError(t, uc.DeleteMine(ctx, buyer, "PR300001"))
	mine, err = uc.Mine(ctx, buyer, "PR300001")
	require.NoError(t, err)
	assert.Nil(t, mine.Review)
}
