package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dronalogitech/whmapping/internal/application/inventory"
	"github.com/dronalogitech/whmapping/internal/domain"
)

func TestLookupByLocation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.putaway(t, "A1-01", "SKU-B", 4)
	f.putaway(t, "A1-01", "SKU-A", 9)
	f.putaway(t, "A1-01", "SKU-C", 1)
	_, err := f.ledger.Adjust(ctx, inventory.AdjustInput{LocationCode: "A1-01", SKUCode: "SKU-C", Qty: -1, Note: "vacío"})
	require.NoError(t, err)

	got, err := f.lookup.LookupByLocation(ctx, "a1-01")
	require.NoError(t, err)
	assert.Equal(t, "A1-01", got.Location.Code)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "SKU-A", got.Items[0].SKUCode)
	assert.Equal(t, "SKU-B", got.Items[1].SKUCode)

	_, err = f.lookup.LookupByLocation(ctx, "ZZ")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.lookup.LookupByLocation(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLookupBySKU_TotalesYFallbackItemCode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.ledger.Putaway(ctx, inventory.PutawayInput{
		LocationCode: "B2",
		Items:        []inventory.PutawayItem{{SKUCode: "7501000000017", ItemCode: "it-100", Qty: 5}},
	})
	require.NoError(t, err)
	f.putaway(t, "A1", "7501000000017", 3)

	got, err := f.lookup.LookupBySKU(ctx, "7501000000017")
	require.NoError(t, err)
	assert.Equal(t, 8, got.TotalQty)
	assert.Equal(t, 2, got.TotalLocations)
	require.Len(t, got.Locations, 2)
	assert.Equal(t, "A1", got.Locations[0].LocationCode)
	assert.Equal(t, "B2", got.Locations[1].LocationCode)

	byItem, err := f.lookup.LookupBySKU(ctx, "IT-100")
	require.NoError(t, err)
	assert.Equal(t, "7501000000017", byItem.SKU.Code)
	assert.Equal(t, 8, byItem.TotalQty)

	_, err = f.lookup.LookupBySKU(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAvailableQty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.putaway(t, "A1", "S1", 11)

	av, err := f.lookup.AvailableQty(ctx, "a1", "s1")
	require.NoError(t, err)
	assert.Equal(t, 11, av.Qty)
	assert.Equal(t, "A1", av.LocationCode)

	av, err = f.lookup.AvailableQty(ctx, "B9", "S1")
	require.NoError(t, err)
	assert.Zero(t, av.Qty)

	_, err = f.lookup.AvailableQty(ctx, "A1", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
