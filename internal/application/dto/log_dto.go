package dto

import (
	"time"

	"github.com/dronalogitech/whmapping/internal/domain/entity"
)

// MovementRecordResponse fila de la bitácora.
type MovementRecordResponse struct {
	ID               string    `json:"id"`
	Action           string    `json:"action"`
	SKUCode          string    `json:"sku_code"`
	ItemCode         string    `json:"item_code,omitempty"`
	SKUName          string    `json:"sku_name,omitempty"`
	FromLocationCode *string   `json:"from_location_code"`
	ToLocationCode   *string   `json:"to_location_code"`
	Qty              int       `json:"qty"`
	User             string    `json:"user"`
	HandlerName      string    `json:"handler_name,omitempty"`
	Note             string    `json:"note,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// LogsResponse página de la bitácora.
type LogsResponse struct {
	Data       []MovementRecordResponse `json:"data"`
	Pagination PageResponse             `json:"pagination"`
}

// LogStatsResponse agregados de la bitácora.
type LogStatsResponse struct {
	TotalLocations int `json:"total_locations"`
	TotalSKUs      int `json:"total_skus"`
	TotalEANs      int `json:"total_eans"`
	TotalQuantity  int `json:"total_quantity"`
}

// BulkDeleteRequest body para DELETE /api/logs/bulk.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// DeleteResponse cantidad de registros eliminados.
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// ToMovementRecordResponse convierte la entidad; origen/destino vacíos viajan como null.
func ToMovementRecordResponse(r entity.MovementRecord) MovementRecordResponse {
	return MovementRecordResponse{
		ID:               r.ID,
		Action:           string(r.Action),
		SKUCode:          r.SKUCode,
		ItemCode:         r.ItemCode,
		SKUName:          r.SKUName,
		FromLocationCode: nullable(r.FromLocationCode),
		ToLocationCode:   nullable(r.ToLocationCode),
		Qty:              r.Qty,
		User:             r.User,
		HandlerName:      r.HandlerName,
		Note:             r.Note,
		CreatedAt:        r.CreatedAt,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
