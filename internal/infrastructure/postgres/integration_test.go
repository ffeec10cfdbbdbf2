package postgres

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronalogitech/whmapping/internal/application/inventory"
	"github.com/dronalogitech/whmapping/internal/domain"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	invdomain "github.com/dronalogitech/whmapping/internal/domain/inventory"
	"github.com/dronalogitech/whmapping/pkg/config"
)

// testPool abre una base real con TEST_DATABASE_URL, aplica migraciones y deja las tablas vacías.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	require.NoError(t, Migrate(dsn))

	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE movement_logs, inventory, skus, locations, users CASCADE`)
	require.NoError(t, err)
	return pool
}

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db", pgx5URL("postgres://u:p@h:5432/db"))
	assert.Equal(t, "pgx5://u@h/db", pgx5URL("postgresql://u@h/db"))
	assert.Equal(t, "pgx5://x", pgx5URL("pgx5://x"))
}

func TestLedger_Postgres(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	ledger := inventory.NewLedgerUseCase(NewTxRunner(pool), nil)
	lookup := inventory.NewLookupUseCase(NewLocationRepository(pool), NewSKURepository(pool), NewInventoryRepository(pool))

	recs, err := ledger.Putaway(ctx, inventory.PutawayInput{
		LocationCode: "a1-01",
		Items:        []inventory.PutawayItem{{SKUCode: "7501", ItemCode: "IT-1", Qty: 10}},
		User:         "ana",
	})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 10, recs[0].Qty)
	assert.Equal(t, "A1-01", recs[0].LocationCode)

	moved, err := ledger.Move(ctx, inventory.MoveInput{FromLocationCode: "A1-01", ToLocationCode: "B2-01", SKUCode: "7501", Qty: 4, User: "ana"})
	require.NoError(t, err)
	assert.Equal(t, 6, moved.From.Qty)
	assert.Equal(t, 4, moved.To.Qty)

	_, err = ledger.Move(ctx, inventory.MoveInput{FromLocationCode: "A1-01", ToLocationCode: "B2-01", SKUCode: "7501", Qty: 7, User: "ana"})
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	_, err = ledger.Adjust(ctx, inventory.AdjustInput{LocationCode: "B2-01", SKUCode: "7501", Qty: -5, Note: "conteo", User: "ana"})
	assert.ErrorIs(t, err, domain.ErrNegativeBalance)

	adj, err := ledger.Adjust(ctx, inventory.AdjustInput{LocationCode: "B2-01", SKUCode: "7501", Qty: -1, Note: "roto", User: "luis"})
	require.NoError(t, err)
	assert.Equal(t, 3, adj.Qty)

	stock, err := lookup.LookupBySKU(ctx, "it-1")
	require.NoError(t, err)
	assert.Equal(t, 9, stock.TotalQty)
	assert.Equal(t, 2, stock.TotalLocations)

	logs := NewMovementLogRepository(pool)
	list, total, err := logs.List(ctx, entity.MovementFilter{Location: "B2-01"}, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, entity.ActionAdjust, list[0].Action)
	assert.Equal(t, "A1-01", list[1].FromLocationCode)

	stats, err := logs.Stats(ctx, entity.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, &entity.MovementStats{TotalLocations: 2, TotalSKUs: 1, TotalEANs: 1, TotalQuantity: 13}, stats)
}

func TestLedger_PostgresMovesConcurrentesNoSobregiran(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	ledger := inventory.NewLedgerUseCase(NewTxRunner(pool), nil)

	_, err := ledger.Putaway(ctx, inventory.PutawayInput{
		LocationCode: "SRC",
		Items:        []inventory.PutawayItem{{SKUCode: "S1", Qty: 10}},
	})
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledger.Move(ctx, inventory.MoveInput{FromLocationCode: "SRC", ToLocationCode: "DST", SKUCode: "S1", Qty: 3})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// 10 alcanza para exactamente tres movimientos de 3
	assert.Equal(t, 3, ok)
	src, _, err := NewInventoryRepository(pool).Available(ctx, "SRC", "S1")
	require.NoError(t, err)
	dst, _, err := NewInventoryRepository(pool).Available(ctx, "DST", "S1")
	require.NoError(t, err)
	assert.Equal(t, 1, src)
	assert.Equal(t, 9, dst)
}

func TestLedger_PostgresMovesEnSentidosOpuestosNoSeBloquean(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	ledger := inventory.NewLedgerUseCase(NewTxRunner(pool), nil)

	for _, loc := range []string{"A", "B"} {
		_, err := ledger.Putaway(ctx, inventory.PutawayInput{
			LocationCode: loc,
			Items:        []inventory.PutawayItem{{SKUCode: "S1", Qty: 50}},
		})
		require.NoError(t, err)
	}

	const rounds = 10
	var wg sync.WaitGroup
	errs := make(chan error, 2*rounds)
	for i := 0; i < rounds; i++ {
		for _, dir := range [][2]string{{"A", "B"}, {"B", "A"}} {
			wg.Add(1)
			go func(from, to string) {
				defer wg.Done()
				_, err := ledger.Move(ctx, inventory.MoveInput{FromLocationCode: from, ToLocationCode: to, SKUCode: "S1", Qty: 1})
				errs <- err
			}(dir[0], dir[1])
		}
	}
	wg.Wait()
	close(errs)

	// ningún Move cae en deadlock (40P01) ni en otro fallo de transacción
	for err := range errs {
		assert.NoError(t, err)
	}
	a, _, err := NewInventoryRepository(pool).Available(ctx, "A", "S1")
	require.NoError(t, err)
	b, _, err := NewInventoryRepository(pool).Available(ctx, "B", "S1")
	require.NoError(t, err)
	assert.Equal(t, 50, a)
	assert.Equal(t, 50, b)
}

func TestLedger_PostgresSaldoMaximo(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	ledger := inventory.NewLedgerUseCase(NewTxRunner(pool), nil)

	_, err := ledger.Putaway(ctx, inventory.PutawayInput{
		LocationCode: "A",
		Items:        []inventory.PutawayItem{{SKUCode: "S1", Qty: invdomain.MaxQty}},
	})
	require.NoError(t, err)

	// INTEGER desborda en la base: 22003 llega como validación, no como 500
	_, err = ledger.Putaway(ctx, inventory.PutawayInput{
		LocationCode: "A",
		Items:        []inventory.PutawayItem{{SKUCode: "S1", Qty: 1}},
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "VALIDATION", domain.ErrorCode(err))
}

func TestResolveOrCreate_PostgresDevuelveLaFilaExistente(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	locations := NewLocationRepository(pool)
	skus := NewSKURepository(pool)

	first, err := locations.ResolveOrCreate(ctx, "A1")
	require.NoError(t, err)
	again, err := locations.ResolveOrCreate(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	s, err := skus.ResolveOrCreate(ctx, "EAN7", "")
	require.NoError(t, err)
	assert.Empty(t, s.ItemCode)

	// item code vacío se completa una sola vez
	filled, err := skus.ResolveOrCreate(ctx, "EAN7", "IT-7")
	require.NoError(t, err)
	assert.Equal(t, s.ID, filled.ID)
	assert.Equal(t, "IT-7", filled.ItemCode)

	kept, err := skus.ResolveOrCreate(ctx, "EAN7", "IT-8")
	require.NoError(t, err)
	assert.Equal(t, "IT-7", kept.ItemCode)

	plain, err := skus.ResolveOrCreate(ctx, "EAN7", "")
	require.NoError(t, err)
	assert.Equal(t, "IT-7", plain.ItemCode)
}

func TestSKURepo_PostgresUpsertMaster(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewSKURepository(pool)

	created, err := repo.UpsertMaster(ctx, &entity.SKU{Code: "EAN1", ItemCode: "IT-1", Name: "Widget"})
	require.NoError(t, err)
	assert.True(t, created)

	sku := &entity.SKU{Code: "EAN1", ItemCode: "IT-9"}
	created, err = repo.UpsertMaster(ctx, sku)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "IT-9", sku.ItemCode)
	assert.Equal(t, "Widget", sku.Name)

	again, err := repo.ResolveOrCreate(ctx, "EAN1", "OTRO")
	require.NoError(t, err)
	assert.Equal(t, "IT-9", again.ItemCode)
}

func TestUserRepo_PostgresEmailDuplicado(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	require.NoError(t, repo.Create(ctx, &entity.User{Email: "ana@example.com", PasswordHash: "x", Role: entity.RoleAdmin}))
	err := repo.Create(ctx, &entity.User{Email: "ANA@example.com", PasswordHash: "x", Role: entity.RoleOperator})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	u, err := repo.GetByEmail(ctx, "Ana@Example.com")
	require.NoError(t, err)
	require.NotNil(t, u)

	missing, err := repo.GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
