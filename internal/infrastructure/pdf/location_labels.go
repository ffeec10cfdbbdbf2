// Package pdf genera las etiquetas imprimibles de ubicaciones.
//
// Layout de la página A4: dos etiquetas por fila, cada una con el código de barras
// Code128 de la ubicación y el código legible debajo.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const labelsPerRow = 2

// LabelGenerator implementa catalog.LabelGenerator usando Maroto v2.
type LabelGenerator struct {
	title string
}

// NewLabelGenerator construye el generador; title aparece en el encabezado de cada etiqueta.
func NewLabelGenerator(title string) *LabelGenerator {
	return &LabelGenerator{title: title}
}

// LocationLabels genera el PDF y devuelve sus bytes.
func (g *LabelGenerator) LocationLabels(codes []string) ([]byte, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("pdf: sin códigos de ubicación")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Location labels", true).
		Build()

	m := maroto.New(cfg)
	for i := 0; i < len(codes); i += labelsPerRow {
		end := min(i+labelsPerRow, len(codes))
		m.AddRows(labelRow(g.title, codes[i:end]))
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// labelRow: una fila con hasta labelsPerRow etiquetas de igual ancho.
func labelRow(title string, codes []string) core.Row {
	size := 12 / labelsPerRow
	cols := make([]core.Col, 0, labelsPerRow)
	for _, c := range codes {
		cols = append(cols, col.New(size).Add(
			text.New(title, props.Text{
				Size: 7, Align: align.Center, Color: colorGray, Top: 1,
			}),
			code.NewBar(c, props.Barcode{
				Percent: 70,
				Center:  true,
				Top:     5,
			}),
			text.New(c, props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: colorPrimary, Top: 30,
			}),
		))
	}
	for len(cols) < labelsPerRow {
		cols = append(cols, col.New(size)) // espacio vacío
	}
	return row.New(40).Add(cols...)
}
