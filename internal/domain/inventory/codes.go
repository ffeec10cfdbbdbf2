package inventory

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Longitudes máximas de los códigos escaneados.
const (
	MaxLocationCodeLen = 50
	MaxSKUCodeLen      = 100
)

// MaxQty mayor saldo representable; la columna inventory.qty es INTEGER.
const MaxQty = math.MaxInt32

// NormalizeCode deja un código escaneado en forma canónica: NFKC, sin espacios en los extremos y en mayúsculas.
// Los lectores de código de barras y los teclados móviles pueden enviar dígitos de ancho completo o espacios al final.
func NormalizeCode(raw string) string {
	s := strings.TrimSpace(norm.NFKC.String(raw))
	// cases.Caser no es seguro entre goroutines; se crea uno por llamada.
	return cases.Upper(language.Und).String(s)
}

// NormalizeCodes aplica NormalizeCode y descarta los vacíos.
func NormalizeCodes(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if c := NormalizeCode(r); c != "" {
			out = append(out, c)
		}
	}
	return out
}
