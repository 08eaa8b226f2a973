package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elbaul-api/internal/application/dto"
	"github.com/jhoicas/elbaul-api/internal/domain"
	"github.com/jhoicas/elbaul-api/internal/domain/entity"
	"github.com/jhoicas/elbaul-api/internal/testutil"
	"github.com/jhoicas/elbaul-api/pkg/clock"
	"github.com/jhoicas/elbaul-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (m *memRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = ttl
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}

func setup(t *testing.T) (*AuthUseCase, *testutil.MemStore, *memRevoker) {
	t.Helper()
	store := testutil.NewMemStore()
	rev := &memRevoker{revoked: map[string]time.Duration{}}
	uc := NewAuthUseCase(store, store.Repos().Users, rev, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "elbaul-test"}, clock.NewSystem(), nil)
	return uc, store, rev
}

var ana = dto.RegisterRequest{FirstName: "Ana", LastName: "Gómez", Email: " Ana@Test.com ", Password: "secreta123"}

func TestRegister_CreaClienteConID(t *testing.T) {
	uc, _, _ := setup(t)

	out, err := uc.RegisterUser(context.Background(), ana)
	require.NoError(t, err)
	assert.Equal(t, "US100001", out.ID)
	assert.Equal(t, "ana@test.com", out.Email)
	assert.Equal(t, entity.RoleCliente, out.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, ana)
	require.NoError(t, err)

	again := ana
	again.Email = "ANA@test.com"
	_, err = uc.RegisterUser(ctx, again)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesYToken(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, ana)
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@test.com", Password: "secreta123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "US100001", claims.UserID)
	assert.Equal(t, entity.RoleCliente, claims.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@test.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@test.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_CuentaDesactivada(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, ana)
	require.NoError(t, err)

	u, err := store.Repos().Users.GetByID(ctx, "US100001")
	require.NoError(t, err)
	u.Active = false
	store.SeedUser(*u)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@test.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)
}

func TestLogout_RevocaElToken(t *testing.T) {
	uc, _, rev := setup(t)
	ctx := context.Background()
	tok, err := jwt.Generate(testSecret, "US100001", entity.RoleCliente, "elbaul-test", 60)
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, tok)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, claims))

	revoked, err := uc.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.InDelta(t, time.Hour.Seconds(), rev.revoked[claims.ID].Seconds(), 5)
}

func TestProfile(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, ana)
	require.NoError(t, err)

	out, err := uc.Profile(ctx, "US100001")
	require.NoError(t, err)
	assert.Equal(t, "Ana", out.FirstName)

	_, err = uc.Profile(ctx, "US199999")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
