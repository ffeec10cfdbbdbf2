package entity

import "time"

// Inventory es el saldo de un SKU en una ubicación. Clave única (LocationID, SKUID); Qty >= 0 siempre.
type Inventory struct {
	ID         string
	LocationID string
	SKUID      string
	Qty        int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InventoryRecord saldo con los nombres resueltos (lo que devuelven las operaciones del ledger).
type InventoryRecord struct {
	ID           string
	LocationID   string
	LocationCode string
	SKUID        string
	SKUCode      string
	ItemCode     string
	SKUName      string
	Qty          int
	UpdatedAt    time.Time
}

// NewInventoryRecord combina el saldo con la ubicación y el SKU ya resueltos.
func NewInventoryRecord(inv *Inventory, loc *Location, sku *SKU) InventoryRecord {
	return InventoryRecord{
		ID:           inv.ID,
		LocationID:   loc.ID,
		LocationCode: loc.Code,
		SKUID:        sku.ID,
		SKUCode:      sku.Code,
		ItemCode:     sku.ItemCode,
		SKUName:      sku.Name,
		Qty:          inv.Qty,
		UpdatedAt:    inv.UpdatedAt,
	}
}
