package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
)

var _ repository.MovementLogRepository = (*MovementLogRepo)(nil)

// MovementLogRepo implementación de MovementLogRepository sobre PostgreSQL (usable con pool o tx).
type MovementLogRepo struct {
	q Querier
}

// NewMovementLogRepository construye el adaptador de bitácora. Pasar pool o tx (Querier).
func NewMovementLogRepository(q Querier) *MovementLogRepo {
	return &MovementLogRepo{q: q}
}

func (r *MovementLogRepo) Create(ctx context.Context, log *entity.MovementLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movement_logs (id, action, sku_id, from_location_id, to_location_id, qty, "user", handler_name, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, now()))
		RETURNING created_at`
	// created_at lo asigna la DB salvo que venga fijado (seed, importaciones)
	var when any
	if !log.CreatedAt.IsZero() {
		when = log.CreatedAt
	}
	err := r.q.QueryRow(ctx, query,
		log.ID, string(log.Action), log.SKUID,
		nullIfEmpty(log.FromLocationID), nullIfEmpty(log.ToLocationID),
		log.Qty, log.User, nullIfEmpty(log.HandlerName), nullIfEmpty(log.Note), when,
	).Scan(&log.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movement log: %w", err)
	}
	return nil
}

const logFrom = `
	FROM movement_logs m
	JOIN skus s ON s.id = m.sku_id
	LEFT JOIN locations lf ON lf.id = m.from_location_id
	LEFT JOIN locations lt ON lt.id = m.to_location_id`

// where arma el WHERE con coincidencia exacta de códigos normalizados.
func where(f entity.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(args))))
	}
	if f.Action != "" {
		add(`m.action = ?`, string(f.Action))
	}
	if f.SKUCode != "" {
		add(`s.code = ?`, f.SKUCode)
	}
	if f.Location != "" {
		add(`(lf.code = ? OR lt.code = ?)`, f.Location)
	}
	if f.User != "" {
		add(`m."user" = ?`, f.User)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *MovementLogRepo) List(ctx context.Context, filter entity.MovementFilter, limit, offset int) ([]entity.MovementRecord, int, error) {
	cond, args := where(filter)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+logFrom+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movement logs: %w", err)
	}

	query := `
		SELECT m.id, m.action, s.code, s.item_code, s.name, lf.code, lt.code,
		       m.qty, m."user", m.handler_name, m.note, m.created_at` + logFrom + cond +
		fmt.Sprintf(` ORDER BY m.created_at DESC, m.id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.q.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movement logs: %w", err)
	}
	defer rows.Close()

	var list []entity.MovementRecord
	for rows.Next() {
		var rec entity.MovementRecord
		var action string
		var itemCode, name, from, to, handler, note *string
		if err := rows.Scan(
			&rec.ID, &action, &rec.SKUCode, &itemCode, &name, &from, &to,
			&rec.Qty, &rec.User, &handler, &note, &rec.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan movement log: %w", err)
		}
		rec.Action = entity.MovementAction(action)
		rec.ItemCode = fromNull(itemCode)
		rec.SKUName = fromNull(name)
		rec.FromLocationCode = fromNull(from)
		rec.ToLocationCode = fromNull(to)
		rec.HandlerName = fromNull(handler)
		rec.Note = fromNull(note)
		list = append(list, rec)
	}
	return list, total, rows.Err()
}

func (r *MovementLogRepo) Stats(ctx context.Context, filter entity.MovementFilter) (*entity.MovementStats, error) {
	cond, args := where(filter)
	query := `
		WITH f AS (SELECT m.from_location_id, m.to_location_id, m.qty, s.code, s.item_code` + logFrom + cond + `)
		SELECT
			(SELECT COUNT(DISTINCT loc) FROM (
				SELECT from_location_id AS loc FROM f WHERE from_location_id IS NOT NULL
				UNION
				SELECT to_location_id FROM f WHERE to_location_id IS NOT NULL
			) u),
			(SELECT COUNT(DISTINCT item_code) FROM f WHERE item_code IS NOT NULL AND item_code <> ''),
			(SELECT COUNT(DISTINCT code) FROM f),
			(SELECT COALESCE(SUM(qty), 0) FROM f)`
	var st entity.MovementStats
	if err := r.q.QueryRow(ctx, query, args...).Scan(
		&st.TotalLocations, &st.TotalSKUs, &st.TotalEANs, &st.TotalQuantity,
	); err != nil {
		return nil, fmt.Errorf("movement log stats: %w", err)
	}
	return &st, nil
}

func (r *MovementLogRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM movement_logs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete movement log: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *MovementLogRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM movement_logs WHERE id = ANY($1::uuid[])`, valid)
	if err != nil {
		return 0, fmt.Errorf("delete movement logs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *MovementLogRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM movement_logs`)
	if err != nil {
		return 0, fmt.Errorf("delete all movement logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
