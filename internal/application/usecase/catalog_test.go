package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/testutil"
	"github.com/jhoicas/elbaul-api/pkg/clock"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

func newProductUC(t *testing.T) (*ProductUseCase, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	store.SeedCategory(entity.Category{ID: "CA200001", Name: "Electrónica", Active: true})
	store.SeedCategory(entity.Category{ID: "CA200002", Name: "Vieja", Active: false})
	return NewProductUseCase(store, store.Repos(), clock.NewFixed(testNow), nil), store
}

var camara = dto.CreateProductRequest{
	Title:       "Cámara Réflex Canon",
	Description: "Poco uso, con estuche",
	Price:       decimal.NewFromInt(450),
	Condition:   entity.ConditionLikeNew,
	CategoryID:  "CA200001",
	Stock:       intPtr(3),
	Brand:       "Canon",
	Location:    "Bodega A",
}

func TestProduct_CreaConInventario(t *testing.T) {
	uc, store := newProductUC(t)

	out, err := uc.Create(context.Background(), "US100001", camara)
	require.NoError(t, err)
	assert.Equal(t, "PR300001", out.Product.ID)
	require.NotNil(t, out.Inventory)
	assert.Equal(t, "IN110001", out.Inventory.ID)
	assert.Equal(t, 3, out.Inventory.Available)
	assert.Equal(t, 3, store.Product("PR300001").Stock)
	assert.Equal(t, "camara reflex canon poco uso, con estuche canon", store.Product("PR300001").SearchText)
}

func TestProduct_CreaValidaciones(t *testing.T) {
	uc, store := newProductUC(t)
	ctx := context.Background()

	in := camara
	in.CategoryID = "CA200002"
	_, err := uc.Create(ctx, "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	in = camara
	in.Price = decimal.Zero
	_, err = uc.Create(ctx, "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = camara
	in.Condition = "roto"
	_, err = uc.Create(ctx, "", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Zero(t, store.Product("PR300001").Stock)
	assert.Empty(t, store.InventoryOf("PR300001").ID)
}

func TestProduct_BusquedaSinTildes(t *testing.T) {
	uc, _ := newProductUC(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, "", camara)
	require.NoError(t, err)
	other := camara
	other.Title = "Bicicleta"
	other.Description = "Rin 26"
	other.Brand = "GW"
	_, err = uc.Create(ctx, "", other)
	require.NoError(t, err)

	out, err := uc.List(ctx, dto.ProductListRequest{Query: "CAMARA"})
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "PR300001", out.Products[0].ID)

	out, err = uc.List(ctx, dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Pagination.Total)
}

func TestProduct_UpdateNoTocaStockYDeleteOculta(t *testing.T) {
	uc, store := newProductUC(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, "", camara)
	require.NoError(t, err)

	price := decimal.NewFromInt(400)
	out, err := uc.Update(ctx, "PR300001", dto.UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(out.Price))
	assert.Equal(t, 3, store.Product("PR300001").Stock)

	require.NoError(t, uc.Delete(ctx, "PR300001"))
	_, err = uc.GetByID(ctx, "PR300001")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "PR300001"), domain.ErrProductNotFound)
}

func TestCategory_CreaYLista(t *testing.T) {
	store := testutil.NewMemStore()
	uc := NewCategoryUseCase(store, store.Repos().Categories, clock.NewFixed(testNow))
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateCategoryRequest{Name: "Hogar"})
	require.NoError(t, err)
	assert.Equal(t, "CA200001", out.ID)

	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Name: "hogar"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCategory_GetSoloActivas(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedCategory(entity.Category{ID: "CA200001", Name: "Electrónica", Active: true})
	store.SeedCategory(entity.Category{ID: "CA200002", Name: "Vieja", Active: false})
	uc := NewCategoryUseCase(store, store.Repos().Categories, clock.NewFixed(testNow))
	ctx := context.Background()

	out, err := uc.Get(ctx, "CA200001")
	require.NoError(t, err)
	assert.Equal(t, "Electrónica", out.Name)

	_, err = uc.Get(ctx, "CA200002")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	_, err = uc.Get(ctx, "CA299999")
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
