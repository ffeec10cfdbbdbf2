package dto

// LocationSummaryResponse ubicación en resultados de búsqueda.
type LocationSummaryResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	SKUCount int    `json:"sku_count"`
}

// SKUSummaryResponse SKU en resultados de búsqueda.
type SKUSummaryResponse struct {
	ID            string `json:"id"`
	Code          string `json:"code"`
	ItemCode      string `json:"item_code,omitempty"`
	Name          string `json:"name,omitempty"`
	Barcode       string `json:"barcode,omitempty"`
	TotalQty      int    `json:"total_qty"`
	LocationCount int    `json:"location_count"`
}

// ImportResultResponse resultado de POST /api/import-item-master.
type ImportResultResponse struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}
