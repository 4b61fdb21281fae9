// Package pdf implementa la ficha imprimible de un reporte de desviación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Folio + Estado       │  Fecha + Hora               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLASIFICACIÓN: Área | Ubicación | Tipo | Severidad          │
//	│  REPORTANTE / RESPONSABLE                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESCRIPCIÓN / CAUSAS / ACCIONES / COMPROMISO                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EVIDENCIAS: notas de las fotos adjuntas                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	appreport "github.com/jcamargo/desviaciones-api/internal/application/report"
	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 153, Green: 27, Blue: 27}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Etiquetas legibles de los estados del flujo.
var statusLabels = map[entity.Status]string{
	entity.StatusPendiente:   "PENDIENTE",
	entity.StatusTratamiento: "EN TRATAMIENTO",
	entity.StatusConcluido:   "CONCLUIDO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appreport.PDFGenerator = (*MarotoReportPDF)(nil)

// MarotoReportPDF implementa report.PDFGenerator usando Maroto v2.
type MarotoReportPDF struct{}

// NewMarotoReportPDF construye el generador.
func NewMarotoReportPDF() *MarotoReportPDF { return &MarotoReportPDF{} }

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportPDF) GenerateReportPDF(_ context.Context, rep *entity.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Desviación "+rep.Folio, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clasificacionRow(rep))
	m.AddRows(personasRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, r := range seccionRows("DESCRIPCIÓN DE LA DESVIACIÓN", rep.Descripcion) {
		m.AddRows(r)
	}
	for _, r := range seccionRows("CAUSAS PROBABLES", rep.Causas) {
		m.AddRows(r)
	}
	for _, r := range seccionRows("ACCIONES INMEDIATAS", rep.Acciones) {
		m.AddRows(r)
	}
	for _, r := range seccionRows("COMPROMISO", rep.Compromiso) {
		m.AddRows(r)
	}

	if len(rep.Fotos) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range evidenciasRows(rep.Fotos) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(rep))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: folio + estado (izq) y fecha + hora (der).
func headerRow(rep *entity.Report) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE DESVIACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(rep.Folio, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
			text.New("Estado: "+statusLabel(rep.Status), props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+nonEmpty(rep.Fecha, "—"), props.Text{
				Size: 9, Align: align.Right, Top: 6,
			}),
			text.New("Hora: "+nonEmpty(rep.Hora, "—"), props.Text{
				Size: 9, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// clasificacionRow: grilla Área | Ubicación | Tipo | Severidad.
func clasificacionRow(rep *entity.Report) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(value, "—"), props.Text{Size: 9, Top: 5}),
		)
	}
	return row.New(12).Add(
		cell("ÁREA", rep.Area),
		cell("UBICACIÓN", rep.Ubicacion),
		cell("TIPO", rep.Tipo),
		cell("SEVERIDAD", rep.Severidad),
	)
}

// personasRow: reportante y responsable del seguimiento.
func personasRow(rep *entity.Report) core.Row {
	return row.New(10).Add(
		col.New(6).Add(
			text.New("REPORTANTE", props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(rep.Reportante, rep.OwnerName), props.Text{Size: 9, Top: 5}),
		),
		col.New(6).Add(
			text.New("RESPONSABLE", props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(rep.Responsable, "—"), props.Text{Size: 9, Top: 5}),
		),
	)
}

// seccionRows: título + cuerpo de texto libre. Secciones vacías se omiten.
func seccionRows(titulo, cuerpo string) []core.Row {
	cuerpo = strings.TrimSpace(cuerpo)
	if cuerpo == "" {
		return nil
	}
	// Altura aproximada por longitud: maroto no auto-expande filas.
	lines := len(cuerpo)/95 + strings.Count(cuerpo, "\n") + 1
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
		row.New(float64(4*lines + 2)).Add(col.New(12).Add(
			text.New(cuerpo, props.Text{Size: 9, Top: 1, Left: 2}),
		)),
	}
}

// evidenciasRows: una línea por foto adjunta, con su nota si la tiene.
func evidenciasRows(fotos []entity.Foto) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("EVIDENCIAS (%d)", len(fotos)), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	for i, f := range fotos {
		label := fmt.Sprintf("Foto %d", i+1)
		if f.Nota != "" {
			label += ": " + f.Nota
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
		)))
	}
	return rows
}

// footerRow: quién registró el reporte y cuándo.
func footerRow(rep *entity.Report) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Registrado por %s el %s",
			nonEmpty(rep.OwnerName, "—"),
			rep.CreatedAt.Format("02/01/2006 15:04"),
		), props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Center}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(s entity.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return strings.ToUpper(string(s))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
