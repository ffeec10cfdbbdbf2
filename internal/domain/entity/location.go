package entity

import "time"

// Location representa una ubicación física escaneable (pasillo-rack-estante-bin, ej. A1-R01-S01-B01).
// Se crea bajo demanda la primera vez que una operación la referencia.
type Location struct {
	ID        string
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocationSummary resultado de búsqueda de ubicaciones con la cantidad de SKUs con saldo positivo.
type LocationSummary struct {
	ID       string
	Code     string
	SKUCount int
}
