package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
)

var _ repository.MovementLogRepository = (*MovementLogRepo)(nil)

// MovementLogRepo bitácora en memoria.
type MovementLogRepo struct {
	store *Store
	tx    *state
}

func (r *MovementLogRepo) Create(ctx context.Context, log *entity.MovementLog) error {
	return r.store.view(r.tx, func(st *state) error {
		if log.ID == "" {
			log.ID = uuid.New().String()
		}
		if log.CreatedAt.IsZero() {
			log.CreatedAt = r.store.clock()
		}
		cp := *log
		st.logs = append(st.logs, &cp)
		return nil
	})
}

func (r *MovementLogRepo) List(ctx context.Context, filter entity.MovementFilter, limit, offset int) ([]entity.MovementRecord, int, error) {
	var out []entity.MovementRecord
	total := 0
	err := r.store.view(r.tx, func(st *state) error {
		matched := st.filterLogs(filter)
		total = len(matched)
		for i := offset; i < len(matched) && (limit <= 0 || i < offset+limit); i++ {
			out = append(out, st.record(matched[i]))
		}
		return nil
	})
	return out, total, err
}

func (r *MovementLogRepo) Stats(ctx context.Context, filter entity.MovementFilter) (*entity.MovementStats, error) {
	stats := &entity.MovementStats{}
	err := r.store.view(r.tx, func(st *state) error {
		locations := make(map[string]struct{})
		items := make(map[string]struct{})
		eans := make(map[string]struct{})
		for _, l := range st.filterLogs(filter) {
			if l.FromLocationID != "" {
				locations[l.FromLocationID] = struct{}{}
			}
			if l.ToLocationID != "" {
				locations[l.ToLocationID] = struct{}{}
			}
			if sku := st.skus[l.SKUID]; sku != nil {
				eans[sku.Code] = struct{}{}
				if sku.ItemCode != "" {
					items[sku.ItemCode] = struct{}{}
				}
			}
			stats.TotalQuantity += l.Qty
		}
		stats.TotalLocations = len(locations)
		stats.TotalSKUs = len(items)
		stats.TotalEANs = len(eans)
		return nil
	})
	return stats, err
}

func (r *MovementLogRepo) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.store.view(r.tx, func(st *state) error {
		for i, l := range st.logs {
			if l.ID == id {
				st.logs = append(st.logs[:i:i], st.logs[i+1:]...)
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *MovementLogRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	var n int64
	err := r.store.view(r.tx, func(st *state) error {
		drop := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			drop[id] = struct{}{}
		}
		kept := st.logs[:0:0]
		for _, l := range st.logs {
			if _, ok := drop[l.ID]; ok {
				n++
				continue
			}
			kept = append(kept, l)
		}
		st.logs = kept
		return nil
	})
	return n, err
}

func (r *MovementLogRepo) DeleteAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.store.view(r.tx, func(st *state) error {
		n = int64(len(st.logs))
		st.logs = nil
		return nil
	})
	return n, err
}

// filterLogs devuelve los registros que cumplen el filtro, del más reciente al más antiguo.
func (st *state) filterLogs(f entity.MovementFilter) []*entity.MovementLog {
	var out []*entity.MovementLog
	for i := len(st.logs) - 1; i >= 0; i-- {
		l := st.logs[i]
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.User != "" && l.User != f.User {
			continue
		}
		if f.SKUCode != "" {
			if sku := st.skus[l.SKUID]; sku == nil || sku.Code != f.SKUCode {
				continue
			}
		}
		if f.Location != "" && st.locationCode(l.FromLocationID) != f.Location && st.locationCode(l.ToLocationID) != f.Location {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (st *state) locationCode(id string) string {
	if l := st.locations[id]; l != nil {
		return l.Code
	}
	return ""
}

func (st *state) record(l *entity.MovementLog) entity.MovementRecord {
	rec := entity.MovementRecord{
		ID:               l.ID,
		Action:           l.Action,
		FromLocationCode: st.locationCode(l.FromLocationID),
		ToLocationCode:   st.locationCode(l.ToLocationID),
		Qty:              l.Qty,
		User:             l.User,
		HandlerName:      l.HandlerName,
		Note:             l.Note,
		CreatedAt:        l.CreatedAt,
	}
	if sku := st.skus[l.SKUID]; sku != nil {
		rec.SKUCode = sku.Code
		rec.ItemCode = sku.ItemCode
		rec.SKUName = sku.Name
	}
	return rec
}
