package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
)

var _ repository.SKURepository = (*SKURepo)(nil)

// SKURepo implementación de SKURepository sobre PostgreSQL (usable con pool o tx).
type SKURepo struct {
	q Querier
}

// NewSKURepository construye el adaptador. Pasar pool o tx (Querier).
func NewSKURepository(q Querier) *SKURepo {
	return &SKURepo{q: q}
}

const skuColumns = `id, code, item_code, name, details, barcode, created_at, updated_at`

func scanSKU(row pgx.Row) (*entity.SKU, error) {
	var s entity.SKU
	var itemCode, name, details, barcode *string
	if err := row.Scan(&s.ID, &s.Code, &itemCode, &name, &details, &barcode, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.ItemCode = fromNull(itemCode)
	s.Name = fromNull(name)
	s.Details = fromNull(details)
	s.Barcode = fromNull(barcode)
	return &s, nil
}

func (r *SKURepo) GetByCode(ctx context.Context, code string) (*entity.SKU, error) {
	s, err := scanSKU(r.q.QueryRow(ctx, `SELECT `+skuColumns+` FROM skus WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sku by code: %w", err)
	}
	return s, nil
}

// GetByItemCode con varios EAN por item code gana el menor código.
func (r *SKURepo) GetByItemCode(ctx context.Context, itemCode string) (*entity.SKU, error) {
	query := `SELECT ` + skuColumns + ` FROM skus
		WHERE upper(item_code) = upper(btrim($1)) AND btrim($1) <> ''
		ORDER BY code LIMIT 1`
	s, err := scanSKU(r.q.QueryRow(ctx, query, itemCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sku by item code: %w", err)
	}
	return s, nil
}

// ResolveOrCreate inserta sin bloquear si el SKU ya existe. Solo toma el lock de la fila
// cuando hay que completar un item_code vacío.
func (r *SKURepo) ResolveOrCreate(ctx context.Context, code, itemCode string) (*entity.SKU, error) {
	insert := `
		INSERT INTO skus (id, code, item_code, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (code) DO NOTHING
		RETURNING ` + skuColumns
	s, err := scanSKU(r.q.QueryRow(ctx, insert, uuid.New().String(), code, nullIfEmpty(itemCode)))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("resolve sku: %w", err)
	}

	if itemCode != "" {
		backfill := `
			UPDATE skus SET item_code = $2, updated_at = now()
			WHERE code = $1 AND item_code IS NULL
			RETURNING ` + skuColumns
		s, err := scanSKU(r.q.QueryRow(ctx, backfill, code, itemCode))
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("backfill sku item code: %w", err)
		}
	}

	existing, err := r.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("resolve sku %q: conflicto sin fila visible", code)
	}
	return existing, nil
}

// UpsertMaster xmax = 0 en RETURNING distingue la fila recién insertada de la actualizada.
func (r *SKURepo) UpsertMaster(ctx context.Context, sku *entity.SKU) (bool, error) {
	query := `
		INSERT INTO skus (id, code, item_code, name, details, barcode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (code) DO UPDATE
		SET item_code  = EXCLUDED.item_code,
		    name       = COALESCE(EXCLUDED.name, skus.name),
		    details    = COALESCE(EXCLUDED.details, skus.details),
		    barcode    = COALESCE(skus.barcode, EXCLUDED.barcode),
		    updated_at = now()
		RETURNING ` + skuColumns + `, (xmax = 0)`
	var s entity.SKU
	var itemCode, name, details, barcode *string
	var created bool
	err := r.q.QueryRow(ctx, query,
		uuid.New().String(), sku.Code, nullIfEmpty(sku.ItemCode),
		nullIfEmpty(sku.Name), nullIfEmpty(sku.Details), nullIfEmpty(sku.Barcode),
	).Scan(&s.ID, &s.Code, &itemCode, &name, &details, &barcode, &s.CreatedAt, &s.UpdatedAt, &created)
	if err != nil {
		return false, fmt.Errorf("upsert sku master: %w", err)
	}
	s.ItemCode = fromNull(itemCode)
	s.Name = fromNull(name)
	s.Details = fromNull(details)
	s.Barcode = fromNull(barcode)
	*sku = s
	return created, nil
}

func (r *SKURepo) Search(ctx context.Context, search string, limit int) ([]entity.SKUSummary, error) {
	query := `
		SELECT s.id, s.code, s.item_code, s.name, s.barcode,
		       COALESCE(SUM(i.qty) FILTER (WHERE i.qty > 0), 0),
		       COUNT(i.id) FILTER (WHERE i.qty > 0)
		FROM skus s
		LEFT JOIN inventory i ON i.sku_id = s.id
		WHERE $1 = ''
		   OR s.code ILIKE '%' || $1 || '%'
		   OR s.barcode ILIKE '%' || $1 || '%'
		   OR s.name ILIKE '%' || $1 || '%'
		GROUP BY s.id
		ORDER BY s.code
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, search, limit)
	if err != nil {
		return nil, fmt.Errorf("search skus: %w", err)
	}
	defer rows.Close()
	var list []entity.SKUSummary
	for rows.Next() {
		var s entity.SKUSummary
		var itemCode, name, barcode *string
		if err := rows.Scan(&s.ID, &s.Code, &itemCode, &name, &barcode, &s.TotalQty, &s.LocationCount); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		s.ItemCode = fromNull(itemCode)
		s.Name = fromNull(name)
		s.Barcode = fromNull(barcode)
		list = append(list, s)
	}
	return list, rows.Err()
}
