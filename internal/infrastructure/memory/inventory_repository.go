package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/dronalogitech/whmapping/internal/domain"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	invdomain "github.com/dronalogitech/whmapping/internal/domain/inventory"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo saldos en memoria.
type InventoryRepo struct {
	store *Store
	tx    *state
}

// GetForUpdate dentro de Run el mutex ya serializa la transacción completa.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, locationID, skuID string) (*entity.Inventory, error) {
	var out *entity.Inventory
	err := r.store.view(r.tx, func(st *state) error {
		if inv, ok := st.inventory[invKey{locationID, skuID}]; ok {
			cp := *inv
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *InventoryRepo) Increment(ctx context.Context, locationID, skuID string, delta int) (*entity.Inventory, error) {
	var out entity.Inventory
	err := r.store.view(r.tx, func(st *state) error {
		now := r.store.clock()
		k := invKey{locationID, skuID}
		inv, ok := st.inventory[k]
		if !ok {
			inv = &entity.Inventory{ID: uuid.New().String(), LocationID: locationID, SKUID: skuID, CreatedAt: now}
		}
		// mismos límites que la columna INTEGER con CHECK (qty >= 0)
		switch {
		case delta > 0 && inv.Qty > invdomain.MaxQty-delta:
			return fmt.Errorf("increment inventory: %w", domain.ErrQuantityOverflow)
		case delta < 0 && inv.Qty < -delta:
			return fmt.Errorf("increment inventory: %w", domain.ErrNegativeBalance)
		}
		inv.Qty += delta
		inv.UpdatedAt = now
		st.inventory[k] = inv
		out = *inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *InventoryRepo) Decrement(ctx context.Context, locationID, skuID string, qty int) (*entity.Inventory, error) {
	var out entity.Inventory
	err := r.store.view(r.tx, func(st *state) error {
		inv, ok := st.inventory[invKey{locationID, skuID}]
		if !ok || inv.Qty < qty {
			return domain.ErrInsufficientQuantity
		}
		inv.Qty -= qty
		inv.UpdatedAt = r.store.clock()
		out = *inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *InventoryRepo) ListByLocation(ctx context.Context, locationID string) ([]entity.InventoryRecord, error) {
	var out []entity.InventoryRecord
	err := r.store.view(r.tx, func(st *state) error {
		loc := st.locations[locationID]
		if loc == nil {
			return nil
		}
		for k, inv := range st.inventory {
			if k.locationID != locationID || inv.Qty <= 0 {
				continue
			}
			if sku := st.skus[k.skuID]; sku != nil {
				out = append(out, entity.NewInventoryRecord(inv, loc, sku))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SKUCode < out[j].SKUCode })
	return out, err
}

func (r *InventoryRepo) ListBySKU(ctx context.Context, skuID string) ([]entity.InventoryRecord, error) {
	var out []entity.InventoryRecord
	err := r.store.view(r.tx, func(st *state) error {
		sku := st.skus[skuID]
		if sku == nil {
			return nil
		}
		for k, inv := range st.inventory {
			if k.skuID != skuID || inv.Qty <= 0 {
				continue
			}
			if loc := st.locations[k.locationID]; loc != nil {
				out = append(out, entity.NewInventoryRecord(inv, loc, sku))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].LocationCode < out[j].LocationCode })
	return out, err
}

func (r *InventoryRepo) Available(ctx context.Context, locationCode, skuCode string) (int, string, error) {
	qty, name := 0, ""
	err := r.store.view(r.tx, func(st *state) error {
		sku := st.skuByCode(skuCode)
		if sku == nil {
			return nil
		}
		name = sku.Name
		loc := st.locationByCode(locationCode)
		if loc == nil {
			return nil
		}
		if inv, ok := st.inventory[invKey{loc.ID, sku.ID}]; ok {
			qty = inv.Qty
		}
		return nil
	})
	return qty, name, err
}

func (r *InventoryRepo) DeleteAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.store.view(r.tx, func(st *state) error {
		n = int64(len(st.inventory))
		st.inventory = make(map[invKey]*entity.Inventory)
		return nil
	})
	return n, err
}
