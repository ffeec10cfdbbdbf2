package dto

import (
	"time"

	"github.com/dronalogitech/whmapping/internal/domain/entity"
)

// PutawayItemRequest una línea del ingreso.
type PutawayItemRequest struct {
	SKUCode  string `json:"sku_code"`
	ItemCode string `json:"item_code,omitempty"`
	Qty      int    `json:"qty"`
}

// PutawayRequest body para POST /api/inventory/putaway.
type PutawayRequest struct {
	LocationCode string               `json:"location_code"`
	Items        []PutawayItemRequest `json:"items"`
	HandlerName  string               `json:"handler_name,omitempty"`
	Note         string               `json:"note,omitempty"`
}

// MoveRequest body para POST /api/inventory/move.
type MoveRequest struct {
	FromLocationCode string `json:"from_location_code"`
	ToLocationCode   string `json:"to_location_code"`
	SKUCode          string `json:"sku_code"`
	Qty              int    `json:"qty"`
	HandlerName      string `json:"handler_name,omitempty"`
	Note             string `json:"note,omitempty"`
}

// AdjustRequest body para POST /api/inventory/adjust; qty es un delta con signo.
type AdjustRequest struct {
	LocationCode string `json:"location_code"`
	SKUCode      string `json:"sku_code"`
	Qty          int    `json:"qty"`
	HandlerName  string `json:"handler_name,omitempty"`
	Note         string `json:"note"`
}

// InventoryRecordResponse saldo con nombres resueltos.
type InventoryRecordResponse struct {
	ID           string    `json:"id"`
	LocationCode string    `json:"location_code"`
	SKUCode      string    `json:"sku_code"`
	ItemCode     string    `json:"item_code,omitempty"`
	SKUName      string    `json:"sku_name,omitempty"`
	Qty          int       `json:"qty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MoveResponse saldos de origen y destino.
type MoveResponse struct {
	From InventoryRecordResponse `json:"from"`
	To   InventoryRecordResponse `json:"to"`
}

// LocationLookupResponse contenido de una ubicación.
type LocationLookupResponse struct {
	LocationCode string                    `json:"location_code"`
	Items        []InventoryRecordResponse `json:"items"`
}

// SKULookupResponse ubicaciones de un SKU con totales.
type SKULookupResponse struct {
	SKUCode        string                    `json:"sku_code"`
	ItemCode       string                    `json:"item_code,omitempty"`
	Name           string                    `json:"name,omitempty"`
	Locations      []InventoryRecordResponse `json:"locations"`
	TotalQty       int                       `json:"total_qty"`
	TotalLocations int                       `json:"total_locations"`
}

// AvailableResponse saldo de un par ubicación/SKU.
type AvailableResponse struct {
	LocationCode string `json:"location_code"`
	SKUCode      string `json:"sku_code"`
	SKUName      string `json:"sku_name,omitempty"`
	Qty          int    `json:"qty"`
}

// ToInventoryRecordResponse convierte la entidad a su forma HTTP.
func ToInventoryRecordResponse(r entity.InventoryRecord) InventoryRecordResponse {
	return InventoryRecordResponse{
		ID:           r.ID,
		LocationCode: r.LocationCode,
		SKUCode:      r.SKUCode,
		ItemCode:     r.ItemCode,
		SKUName:      r.SKUName,
		Qty:          r.Qty,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToInventoryRecordResponses convierte una lista; nunca devuelve nil.
func ToInventoryRecordResponses(rs []entity.InventoryRecord) []InventoryRecordResponse {
	out := make([]InventoryRecordResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToInventoryRecordResponse(r))
	}
	return out
}
