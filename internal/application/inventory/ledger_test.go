package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/repository"
	"github.com/jhoicas/elbaul-api/internal/testutil"
)

func newLedger(t *testing.T) (*LedgerUseCase, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	return NewLedgerUseCase(store, store.Repos(), nil), store
}

func TestCheckAvailability(t *testing.T) {
	uc, store := newLedger(t)
	store.SeedProduct("PR300001", "50", 3)
	ctx := context.Background()

	out, err := uc.CheckAvailability(ctx, "PR300001", 3)
	require.NoError(t, err)
	assert.True(t, out.Available)

	out, err = uc.CheckAvailability(ctx, "PR300001", 4)
	require.NoError(t, err)
	assert.False(t, out.Available)

	_, err = uc.CheckAvailability(ctx, "PR399999", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = uc.CheckAvailability(ctx, "PR300001", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestReserveYReleaseReservation_SonSimetricos(t *testing.T) {
	uc, store := newLedger(t)
	store.SeedProduct("PR300001", "50", 5)
	ctx := context.Background()

	out, err := uc.Reserve(ctx, "PR300001", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Available)
	assert.Equal(t, 2, out.Reserved)
	assert.Equal(t, 3, store.Product("PR300001").Stock)

	out, err = uc.ReleaseReservation(ctx, "PR300001", 2)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Available)
	assert.Equal(t, 0, out.Reserved)
	assert.Equal(t, 5, store.Product("PR300001").Stock)
}

func TestReserve_SinStockNoCambiaNada(t *testing.T) {
	uc, store := newLedger(t)
	store.SeedProduct("PR300001", "50", 1)

	_, err := uc.Reserve(context.Background(), "PR300001", 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	inv := store.InventoryOf("PR300001")
	assert.Equal(t, 1, inv.Available)
	assert.Equal(t, 0, inv.Reserved)
}

func TestReleaseReservation_MasDeLoReservadoFalla(t *testing.T) {
	uc, store := newLedger(t)
	store.SeedProduct("PR300001", "50", 5)
	ctx := context.Background()

	_, err := uc.Reserve(ctx, "PR300001", 1)
	require.NoError(t, err)

	_, err = uc.ReleaseReservation(ctx, "PR300001", 2)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, store.InventoryOf("PR300001").Reserved)
}

func TestRestock(t *testing.T) {
	uc, store := newLedger(t)
	store.SeedProduct("PR300001", "50", 0)

	out, err := uc.Restock(context.Background(), "PR300001", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Available)
	assert.Equal(t, 4, store.Product("PR300001").Stock)

	_, err = uc.Restock(context.Background(), "PR399999", 1)
	assert.ErrorIs(t, err, domain.ErrInventoryNotFound)
}

func TestTakeFromStock_FallaSinEfectosParciales(t *testing.T) {
	store := testutil.NewMemStore()
	store.SeedProduct("PR300001", "50", 2)
	ctx := context.Background()

	err := store.Run(ctx, func(r repository.Repos) error {
		return TakeFromStock(ctx, r, "PR300001", 3)
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, store.InventoryOf("PR300001").Available)
	assert.Equal(t, 2, store.Product("PR300001").Stock)
}
