package catalog

import "io"

// ItemMasterRow una fila del maestro de artículos ya leída del archivo.
type ItemMasterRow struct {
	EAN      string
	ItemCode string
	Name     string
	Details  string
}

// ItemMasterReader lee las filas del maestro desde xlsx o csv.
type ItemMasterReader interface {
	Read(r io.Reader, filename string) ([]ItemMasterRow, error)
}

// LabelGenerator genera el PDF de etiquetas con código de barras para las ubicaciones.
type LabelGenerator interface {
	LocationLabels(codes []string) ([]byte, error)
}
