// Package pdf implementa el reporte de programas de subsidio en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación + filtro aplicado      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total | Borrador | Activos | Inhabilitados         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Nombre | Entidad responsable | Estado       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/vivienda-api/internal/application/dto"
	"github.com/jhoicas/vivienda-api/internal/application/ports"
	"github.com/jhoicas/vivienda-api/internal/domain/entity"
)

var _ ports.ProgramReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiquetas de estado para el documento.
var stateLabels = map[string]string{
	entity.ProgramStateDraft:    "Borrador",
	entity.ProgramStateActive:   "Activo",
	entity.ProgramStateDisabled: "Inhabilitado",
}

// MarotoReportGenerator implementa ports.ProgramReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateProgramReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateProgramReport(_ context.Context, data ports.ProgramReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de programas de subsidio", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data.Stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(data.Programs)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data ports.ProgramReportData) core.Row {
	filter := "Todos los estados"
	if data.StateFilter != "" {
		filter = "Estado: " + nonEmpty(stateLabels[data.StateFilter], data.StateFilter)
	}
	return row.New(18).Add(
		col.New(8).Add(
			text.New("PROGRAMAS DE SUBSIDIO DE VIVIENDA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(filter, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(strconv.Itoa(len(data.Programs))+" programa(s)", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 9,
			}),
		),
	)
}

func summaryRow(stats dto.ProgramStatsResponse) core.Row {
	cell := func(label string, value int) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(strconv.Itoa(value), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorPrimary, Top: 6,
			}),
		)
	}
	return row.New(14).Add(
		cell("Total", stats.Total),
		cell(stateLabels[entity.ProgramStateDraft], stats.ByState[entity.ProgramStateDraft]),
		cell(stateLabels[entity.ProgramStateActive], stats.ByState[entity.ProgramStateActive]),
		cell(stateLabels[entity.ProgramStateDisabled], stats.ByState[entity.ProgramStateDisabled]),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Nombre", 4, align.Left),
		h("Entidad responsable", 4, align.Left),
		h("Estado", 2, align.Center),
	)
}

func tableRows(programs []dto.ProgramResponse) []core.Row {
	result := make([]core.Row, 0, len(programs))
	for _, p := range programs {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(p.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(p.ResponsibleEntity, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(stateLabels[p.State], p.State), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
