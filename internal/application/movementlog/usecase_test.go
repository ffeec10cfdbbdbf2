package movementlog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronalogitech/whmapping/internal/application/inventory"
	"github.com/dronalogitech/whmapping/internal/application/movementlog"
	"github.com/dronalogitech/whmapping/internal/domain"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/internal/infrastructure/memory"
)

func seed(t *testing.T) (*memory.Store, *movementlog.UseCase) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	ledger := inventory.NewLedgerUseCase(s, nil)

	_, err := ledger.Putaway(ctx, inventory.PutawayInput{
		LocationCode: "A1",
		Items:        []inventory.PutawayItem{{SKUCode: "EAN1", ItemCode: "IT-1", Qty: 10}, {SKUCode: "EAN2", ItemCode: "IT-1", Qty: 5}},
		User:         "ana",
	})
	require.NoError(t, err)
	_, err = ledger.Move(ctx, inventory.MoveInput{FromLocationCode: "A1", ToLocationCode: "B1", SKUCode: "EAN1", Qty: 4, User: "luis"})
	require.NoError(t, err)
	_, err = ledger.Adjust(ctx, inventory.AdjustInput{LocationCode: "C1", SKUCode: "EAN3", Qty: 2, Note: "hallazgo", User: "ana"})
	require.NoError(t, err)

	return s, movementlog.NewUseCase(s.MovementLogs(), nil)
}

func TestList_PaginacionPorDefecto(t *testing.T) {
	_, uc := seed(t)

	page, err := uc.List(context.Background(), movementlog.Query{})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, movementlog.DefaultLimit, page.Limit)
	assert.False(t, page.HasMore)
	assert.Equal(t, entity.ActionAdjust, page.Records[0].Action)

	page, err = uc.List(context.Background(), movementlog.Query{Limit: 1000, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, movementlog.MaxLimit, page.Limit)
	assert.Zero(t, page.Offset)

	page, err = uc.List(context.Background(), movementlog.Query{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, page.Records, 2)
	assert.True(t, page.HasMore)
}

func TestList_Filtros(t *testing.T) {
	_, uc := seed(t)
	ctx := context.Background()

	page, err := uc.List(ctx, movementlog.Query{Action: "move"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	// acción desconocida no filtra
	page, err = uc.List(ctx, movementlog.Query{Action: "DELETE"})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)

	page, err = uc.List(ctx, movementlog.Query{Location: " b1 "})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	page, err = uc.List(ctx, movementlog.Query{SKU: "ean1", User: "ana"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "IT-1", page.Records[0].ItemCode)

	page, err = uc.List(ctx, movementlog.Query{User: "nadie"})
	require.NoError(t, err)
	assert.Empty(t, page.Records)
	assert.NotNil(t, page.Records)
}

func TestStats(t *testing.T) {
	_, uc := seed(t)

	stats, err := uc.Stats(context.Background(), movementlog.Query{})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalLocations)
	assert.Equal(t, 1, stats.TotalSKUs)
	assert.Equal(t, 3, stats.TotalEANs)
	assert.Equal(t, 21, stats.TotalQuantity)

	stats, err = uc.Stats(context.Background(), movementlog.Query{User: "ana"})
	require.NoError(t, err)
	assert.Equal(t, 17, stats.TotalQuantity)
}

func TestDelete(t *testing.T) {
	_, uc := seed(t)
	ctx := context.Background()

	page, err := uc.List(ctx, movementlog.Query{})
	require.NoError(t, err)
	id := page.Records[0].ID

	require.NoError(t, uc.Delete(ctx, id, "admin"))
	assert.ErrorIs(t, uc.Delete(ctx, id, "admin"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, " ", "admin"), domain.ErrValidation)
}

func TestDeleteMany(t *testing.T) {
	_, uc := seed(t)
	ctx := context.Background()

	_, err := uc.DeleteMany(ctx, nil, "admin")
	assert.ErrorIs(t, err, domain.ErrValidation)

	page, err := uc.List(ctx, movementlog.Query{})
	require.NoError(t, err)
	n, err := uc.DeleteMany(ctx, []string{page.Records[0].ID, page.Records[1].ID, "no-existe"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	page, err = uc.List(ctx, movementlog.Query{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}
