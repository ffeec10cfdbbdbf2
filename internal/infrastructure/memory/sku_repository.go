package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/dronalogitech/whmapping/internal/domain/entity"
	"github.com/dronalogitech/whmapping/internal/domain/repository"
)

var _ repository.SKURepository = (*SKURepo)(nil)

// SKURepo SKUs en memoria.
type SKURepo struct {
	store *Store
	tx    *state
}

func (r *SKURepo) GetByCode(ctx context.Context, code string) (*entity.SKU, error) {
	var out *entity.SKU
	err := r.store.view(r.tx, func(st *state) error {
		if s := st.skuByCode(code); s != nil {
			cp := *s
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *SKURepo) GetByItemCode(ctx context.Context, itemCode string) (*entity.SKU, error) {
	itemCode = strings.TrimSpace(itemCode)
	if itemCode == "" {
		return nil, nil
	}
	var out *entity.SKU
	err := r.store.view(r.tx, func(st *state) error {
		for _, s := range st.skus {
			if !strings.EqualFold(s.ItemCode, itemCode) {
				continue
			}
			// con varios EAN por item code gana el menor código
			if out == nil || s.Code < out.Code {
				cp := *s
				out = &cp
			}
		}
		return nil
	})
	return out, err
}

func (r *SKURepo) ResolveOrCreate(ctx context.Context, code, itemCode string) (*entity.SKU, error) {
	var out entity.SKU
	err := r.store.view(r.tx, func(st *state) error {
		now := r.store.clock()
		s := st.skuByCode(code)
		switch {
		case s == nil:
			s = &entity.SKU{ID: uuid.New().String(), Code: code, ItemCode: itemCode, CreatedAt: now, UpdatedAt: now}
			st.skus[s.ID] = s
		case s.ItemCode == "" && itemCode != "":
			s.ItemCode = itemCode
			s.UpdatedAt = now
		}
		out = *s
		return nil
	})
	return &out, err
}

func (r *SKURepo) UpsertMaster(ctx context.Context, sku *entity.SKU) (bool, error) {
	created := false
	err := r.store.view(r.tx, func(st *state) error {
		now := r.store.clock()
		s := st.skuByCode(sku.Code)
		if s == nil {
			s = &entity.SKU{
				ID:        uuid.New().String(),
				Code:      sku.Code,
				ItemCode:  sku.ItemCode,
				Name:      sku.Name,
				Details:   sku.Details,
				Barcode:   sku.Barcode,
				CreatedAt: now,
				UpdatedAt: now,
			}
			st.skus[s.ID] = s
			created = true
		} else {
			s.ItemCode = sku.ItemCode
			if sku.Name != "" {
				s.Name = sku.Name
			}
			if sku.Details != "" {
				s.Details = sku.Details
			}
			if s.Barcode == "" {
				s.Barcode = sku.Barcode
			}
			s.UpdatedAt = now
		}
		*sku = *s
		return nil
	})
	return created, err
}

func (r *SKURepo) Search(ctx context.Context, search string, limit int) ([]entity.SKUSummary, error) {
	needle := strings.ToUpper(strings.TrimSpace(search))
	var out []entity.SKUSummary
	err := r.store.view(r.tx, func(st *state) error {
		type totals struct{ qty, locations int }
		byID := make(map[string]totals)
		for k, inv := range st.inventory {
			if inv.Qty > 0 {
				t := byID[k.skuID]
				t.qty += inv.Qty
				t.locations++
				byID[k.skuID] = t
			}
		}
		for _, s := range st.skus {
			if needle != "" &&
				!strings.Contains(strings.ToUpper(s.Code), needle) &&
				!strings.Contains(strings.ToUpper(s.Barcode), needle) &&
				!strings.Contains(strings.ToUpper(s.Name), needle) {
				continue
			}
			t := byID[s.ID]
			out = append(out, entity.SKUSummary{
				ID:            s.ID,
				Code:          s.Code,
				ItemCode:      s.ItemCode,
				Name:          s.Name,
				Barcode:       s.Barcode,
				TotalQty:      t.qty,
				LocationCount: t.locations,
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (st *state) skuByCode(code string) *entity.SKU {
	for _, s := range st.skus {
		if s.Code == code {
			return s
		}
	}
	return nil
}
