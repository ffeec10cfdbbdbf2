package entity

import "time"

// MovementAction tipo de movimiento registrado en la bitácora.
type MovementAction string

// Acciones del ledger.
const (
	ActionPutaway MovementAction = "PUTAWAY"
	ActionMove    MovementAction = "MOVE"
	ActionAdjust  MovementAction = "ADJUST"
)

// Valid indica si la acción es una de las tres conocidas.
func (a MovementAction) Valid() bool {
	switch a {
	case ActionPutaway, ActionMove, ActionAdjust:
		return true
	}
	return false
}

// MovementLog registro inmutable de auditoría de una mutación del ledger.
// Qty es el delta con signo (+qty en PUTAWAY y MOVE, signo del ajuste en ADJUST).
type MovementLog struct {
	ID             string
	Action         MovementAction
	SKUID          string
	FromLocationID string // vacío = sin origen
	ToLocationID   string // vacío = sin destino
	Qty            int
	User           string
	HandlerName    string
	Note           string
	CreatedAt      time.Time
}

// MovementRecord fila de bitácora con códigos y nombres resueltos para lectura.
type MovementRecord struct {
	ID               string
	Action           MovementAction
	SKUCode          string
	ItemCode         string
	SKUName          string
	FromLocationCode string
	ToLocationCode   string
	Qty              int
	User             string
	HandlerName      string
	Note             string
	CreatedAt        time.Time
}

// MovementFilter filtros de lectura de la bitácora; campos vacíos no filtran.
// Location coincide con origen o destino.
type MovementFilter struct {
	Action   MovementAction
	SKUCode  string
	Location string
	User     string
}

// MovementStats agregados sobre un conjunto filtrado de la bitácora.
type MovementStats struct {
	TotalLocations int
	TotalSKUs      int // item codes distintos
	TotalEANs      int // códigos EAN distintos
	TotalQuantity  int
}
