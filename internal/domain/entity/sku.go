package entity

import "time"

// SKU representa un artículo identificado por su EAN/código de barras (Code).
// ItemCode es la clave secundaria del maestro de artículos; vacío equivale a NULL.
type SKU struct {
	ID        string
	Code      string
	ItemCode  string
	Name      string
	Details   string
	Barcode   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SKUSummary resultado de búsqueda de SKUs con totales sobre saldos positivos.
type SKUSummary struct {
	ID            string
	Code          string
	ItemCode      string
	Name          string
	Barcode       string
	TotalQty      int
	LocationCount int
}
