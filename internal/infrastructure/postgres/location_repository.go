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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) GetByCode(ctx context.Context, code string) (*entity.Location, error) {
	query := `SELECT id, code, created_at, updated_at FROM locations WHERE code = $1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, code).Scan(&l.ID, &l.Code, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by code: %w", err)
	}
	return &l, nil
}

// ResolveOrCreate DO NOTHING no bloquea la fila existente; si otra transacción ya la
// insertó, RETURNING viene vacío y se lee con GetByCode.
func (r *LocationRepo) ResolveOrCreate(ctx context.Context, code string) (*entity.Location, error) {
	query := `
		INSERT INTO locations (id, code, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (code) DO NOTHING
		RETURNING id, code, created_at, updated_at`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, uuid.New().String(), code).Scan(&l.ID, &l.Code, &l.CreatedAt, &l.UpdatedAt)
	if err == nil {
		return &l, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("resolve location: %w", err)
	}
	existing, err := r.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("resolve location %q: conflicto sin fila visible", code)
	}
	return existing, nil
}

func (r *LocationRepo) Search(ctx context.Context, search string, limit int) ([]entity.LocationSummary, error) {
	query := `
		SELECT l.id, l.code, COUNT(i.id) FILTER (WHERE i.qty > 0)
		FROM locations l
		LEFT JOIN inventory i ON i.location_id = l.id
		WHERE $1 = '' OR l.code ILIKE '%' || $1 || '%'
		GROUP BY l.id, l.code
		ORDER BY l.code
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, search, limit)
	if err != nil {
		return nil, fmt.Errorf("search locations: %w", err)
	}
	defer rows.Close()
	var list []entity.LocationSummary
	for rows.Next() {
		var s entity.LocationSummary
		if err := rows.Scan(&s.ID, &s.Code, &s.SKUCount); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *LocationRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM locations`)
	if err != nil {
		return 0, fmt.Errorf("delete locations: %w", err)
	}
	return tag.RowsAffected(), nil
}
