package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/elbaul-api/internal/infrastructure/postgres"
	"github.com/jhoicas/elbaul-api/pkg/config"
)

const testDBLockID int64 = 804711001

// NewTestPool abre un pool contra TEST_DATABASE_URL, aplica las migraciones y toma un advisory lock
// para que los paquetes de integración no se pisen. Sin la variable o sin servidor el test se salta.
func NewTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido: se omiten tests de integración con PostgreSQL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 8})
	if err != nil {
		t.Skipf("PostgreSQL no disponible: %v", err)
	}
	t.Cleanup(pool.Close)

	lockTestDB(t, pool)

	if err := postgres.Migrate(ctx, pool, "up"); err != nil {
		t.Fatalf("aplicar migraciones: %v", err)
	}
	TruncateAll(t, pool)
	return pool
}

// TruncateAll vacía todas las tablas del esquema, incluidos los contadores de ids.
func TruncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE reacciones, comentarios, publicaciones, resenas, favoritos, devoluciones, envios, pagos, items_orden, ordenes,
			items_carrito, carritos, inventarios, productos, categorias, usuarios, secuencias
		RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func lockTestDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("adquirir conexión para lock: %v", err)
	}
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, testDBLockID); err != nil {
		conn.Release()
		t.Fatalf("tomar lock de tests: %v", err)
	}
	t.Cleanup(func() {
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, testDBLockID)
		conn.Release()
	})
}
