package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dronalogitech/whmapping/internal/domain"
	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, location_id, sku_id, qty, created_at, updated_at`

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	if err := row.Scan(&inv.ID, &inv.LocationID, &inv.SKUID, &inv.Qty, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila hasta el fin de la tx (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(ctx context.Context, locationID, skuID string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory
		WHERE location_id = $1 AND sku_id = $2
		FOR UPDATE`
	inv, err := scanInventory(r.q.QueryRow(ctx, query, locationID, skuID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return inv, nil
}

// Increment el CHECK (qty >= 0) de la tabla rechaza cualquier resultado negativo y
// la suma que no cabe en INTEGER falla con 22003.
func (r *InventoryRepo) Increment(ctx context.Context, locationID, skuID string, delta int) (*entity.Inventory, error) {
	query := `
		INSERT INTO inventory (id, location_id, sku_id, qty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (location_id, sku_id)
		DO UPDATE SET qty = inventory.qty + EXCLUDED.qty, updated_at = now()
		RETURNING ` + inventoryColumns
	inv, err := scanInventory(r.q.QueryRow(ctx, query, uuid.New().String(), locationID, skuID, delta))
	if err != nil {
		if isCheckViolation(err) {
			return nil, fmt.Errorf("increment inventory: %w", domain.ErrNegativeBalance)
		}
		if isOutOfRange(err) {
			return nil, fmt.Errorf("increment inventory: %w", domain.ErrQuantityOverflow)
		}
		return nil, fmt.Errorf("increment inventory: %w", err)
	}
	return inv, nil
}

// Decrement sin fila afectada significa que no existe o no alcanza el saldo.
func (r *InventoryRepo) Decrement(ctx context.Context, locationID, skuID string, qty int) (*entity.Inventory, error) {
	query := `
		UPDATE inventory SET qty = qty - $3, updated_at = now()
		WHERE location_id = $1 AND sku_id = $2 AND qty >= $3
		RETURNING ` + inventoryColumns
	inv, err := scanInventory(r.q.QueryRow(ctx, query, locationID, skuID, qty))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInsufficientQuantity
		}
		return nil, fmt.Errorf("decrement inventory: %w", err)
	}
	return inv, nil
}

const recordSelect = `
	SELECT i.id, l.id, l.code, s.id, s.code, s.item_code, s.name, i.qty, i.updated_at
	FROM inventory i
	JOIN locations l ON l.id = i.location_id
	JOIN skus s ON s.id = i.sku_id`

func (r *InventoryRepo) ListByLocation(ctx context.Context, locationID string) ([]entity.InventoryRecord, error) {
	return r.listRecords(ctx, recordSelect+` WHERE i.location_id = $1 AND i.qty > 0 ORDER BY s.code`, locationID)
}

func (r *InventoryRepo) ListBySKU(ctx context.Context, skuID string) ([]entity.InventoryRecord, error) {
	return r.listRecords(ctx, recordSelect+` WHERE i.sku_id = $1 AND i.qty > 0 ORDER BY l.code`, skuID)
}

func (r *InventoryRepo) listRecords(ctx context.Context, query string, arg string) ([]entity.InventoryRecord, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		var itemCode, name *string
		if err := rows.Scan(
			&rec.ID, &rec.LocationID, &rec.LocationCode, &rec.SKUID, &rec.SKUCode,
			&itemCode, &name, &rec.Qty, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		rec.ItemCode = fromNull(itemCode)
		rec.SKUName = fromNull(name)
		list = append(list, rec)
	}
	return list, rows.Err()
}

func (r *InventoryRepo) Available(ctx context.Context, locationCode, skuCode string) (int, string, error) {
	query := `
		SELECT COALESCE((
			SELECT i.qty FROM inventory i
			JOIN locations l ON l.id = i.location_id
			WHERE l.code = $1 AND i.sku_id = s.id
		), 0), s.name
		FROM skus s WHERE s.code = $2`
	var qty int
	var name *string
	err := r.q.QueryRow(ctx, query, locationCode, skuCode).Scan(&qty, &name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", fmt.Errorf("available inventory: %w", err)
	}
	return qty, fromNull(name), nil
}

func (r *InventoryRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory`)
	if err != nil {
		return 0, fmt.Errorf("delete inventory: %w", err)
	}
	return tag.RowsAffected(), nil
}
