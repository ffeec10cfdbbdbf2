// Package itemmaster lee el maestro de artículos (EAN, Item Code, Item Name, Details) desde xlsx o csv.
package itemmaster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/dronalogitech/whmapping/internal/application/catalog"
)

var _ catalog.ItemMasterReader = (*Reader)(nil)

// ErrUnsupportedFormat la extensión del archivo no es .xlsx ni .csv.
var ErrUnsupportedFormat = errors.New("itemmaster: formato no soportado (xlsx|csv)")

// Columnas reconocidas en la fila de encabezado (sin distinguir mayúsculas).
const (
	colEAN      = "ean"
	colItemCode = "item code"
	colName     = "item name"
	colDetails  = "details"
	colDetails2 = "item details"
)

// Reader lee la primera hoja de un xlsx o un csv con encabezado.
// Los csv que no son UTF-8 válido se decodifican como Windows-1252 (exportaciones de Excel en Windows).
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader { return &Reader{} }

// Read detecta el formato por la extensión de filename.
func (rd *Reader) Read(r io.Reader, filename string) ([]catalog.ItemMasterRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return rd.readXLSX(r)
	case ".csv":
		return rd.readCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func (rd *Reader) readXLSX(r io.Reader) ([]catalog.ItemMasterRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("itemmaster: abrir xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("itemmaster: el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("itemmaster: leer hoja %q: %w", sheets[0], err)
	}
	return toRows(rows)
}

func (rd *Reader) readCSV(r io.Reader) ([]catalog.ItemMasterRow, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("itemmaster: leer csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(raw) {
		raw, err = charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("itemmaster: decodificar windows-1252: %w", err)
		}
	}
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("itemmaster: parsear csv: %w", err)
	}
	return toRows(records)
}

// toRows usa la primera fila como encabezado; las filas totalmente vacías se descartan.
func toRows(records [][]string) ([]catalog.ItemMasterRow, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("itemmaster: archivo vacío")
	}
	idx := map[string]int{}
	for i, h := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := idx[colEAN]; !ok {
		return nil, fmt.Errorf("itemmaster: falta la columna EAN")
	}
	if _, ok := idx[colItemCode]; !ok {
		return nil, fmt.Errorf("itemmaster: falta la columna Item Code")
	}

	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	out := make([]catalog.ItemMasterRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		details := get(rec, colDetails)
		if details == "" {
			details = get(rec, colDetails2)
		}
		out = append(out, catalog.ItemMasterRow{
			EAN:      get(rec, colEAN),
			ItemCode: get(rec, colItemCode),
			Name:     get(rec, colName),
			Details:  details,
		})
	}
	return out, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
