// Package pdf implementa la generación de la Historia Clínica Odontológica
// en PDF para descarga desde la ficha del paciente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Historia Clínica  │  Nombre + Cédula + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS PERSONALES: nacimiento / sexo / teléfonos / dirección │
//	│  ANTECEDENTES MÉDICOS: alergias / enfermedades / cirugías    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ODONTOGRAMA ACTUAL: piezas con hallazgos (≠ Sano)           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  HISTORIAL DE CITAS: Fecha | Motivo | Tratamientos | Monto   │
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

	apppaciente "github.com/clinident/clinident-api/internal/application/paciente"
	"github.com/clinident/clinident-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 102}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoHistoriaGenerator implementa paciente.HistoriaPDFGenerator usando Maroto v2.
type MarotoHistoriaGenerator struct{}

var _ apppaciente.HistoriaPDFGenerator = (*MarotoHistoriaGenerator)(nil)

// NewMarotoHistoriaGenerator construye el generador.
func NewMarotoHistoriaGenerator() *MarotoHistoriaGenerator { return &MarotoHistoriaGenerator{} }

// GenerateHistoriaPDF genera el PDF y devuelve sus bytes.
func (g *MarotoHistoriaGenerator) GenerateHistoriaPDF(
	_ context.Context,
	p *entity.Paciente,
	citas []*entity.Cita,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Historia Clínica Odontológica", true).
		WithAuthor("CliniDent", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(datosPersonalesRows(p)...)
	m.AddRows(antecedentesRows(p)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(odontogramaRows(p.Odontograma)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(citasHeaderRows()...)
	for _, r := range citasRows(citas) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y nombre + cédula del paciente (der).
func headerRow(p *entity.Paciente) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("HISTORIA CLÍNICA ODONTOLÓGICA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CliniDent", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(p.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Cédula: "+p.Cedula, props.Text{
				Size: 9, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Ficha desde: "+p.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// datosPersonalesRows: bloque demográfico compacto.
func datosPersonalesRows(p *entity.Paciente) []core.Row {
	return []core.Row{
		sectionTitleRow("DATOS PERSONALES"),
		infoRow(fmt.Sprintf("Nacimiento: %s   |   Edad: %d   |   Sexo: %s",
			p.FechaNacimiento.Format("02/01/2006"), p.Edad, nonEmpty(p.Sexo, "—"))),
		infoRow(fmt.Sprintf("Tel: %s   |   Tel. emergencia: %s",
			nonEmpty(p.Telefono, "—"), nonEmpty(p.TelefonoEmergencia, "—"))),
		infoRow(fmt.Sprintf("Dirección: %s   |   Ocupación: %s",
			nonEmpty(p.Direccion, "—"), nonEmpty(p.Ocupacion, "—"))),
	}
}

// antecedentesRows: antecedentes médicos relevantes para la atención.
func antecedentesRows(p *entity.Paciente) []core.Row {
	return []core.Row{
		sectionTitleRow("ANTECEDENTES MÉDICOS"),
		infoRow("Grupo sanguíneo: " + nonEmpty(p.GrupoSanguineo, "—")),
		infoRow("Alergias: " + nonEmpty(p.Alergias, "Ninguna registrada")),
		infoRow("Enfermedades crónicas: " + nonEmpty(p.EnfermedadesCronicas, "Ninguna registrada")),
		infoRow("Medicamentos: " + nonEmpty(p.Medicamentos, "Ninguno registrado")),
		infoRow("Condiciones especiales: " + nonEmpty(p.CondicionesEspeciales, "Ninguna registrada")),
		infoRow("Cirugías: " + nonEmpty(p.Cirugias, "Ninguna registrada")),
		infoRow("Antecedentes familiares: " + nonEmpty(p.AntecedentesFamiliares, "Ninguno registrado")),
	}
}

// odontogramaRows: piezas con hallazgos (estado distinto de Sano). Si todas
// están sanas se indica en una sola línea.
func odontogramaRows(chart []entity.Diente) []core.Row {
	rows := []core.Row{sectionTitleRow("ODONTOGRAMA ACTUAL")}

	var hallazgos []string
	for _, d := range chart {
		if d.Estado != entity.EstadoSano {
			hallazgos = append(hallazgos, fmt.Sprintf("Pieza %d: %s", d.Numero, d.Estado))
		}
	}
	if len(hallazgos) == 0 {
		rows = append(rows, infoRow("Sin hallazgos: las 32 piezas se registran sanas."))
		return rows
	}
	// Tres hallazgos por línea para no alargar la página.
	for i := 0; i < len(hallazgos); i += 3 {
		end := i + 3
		if end > len(hallazgos) {
			end = len(hallazgos)
		}
		rows = append(rows, infoRow(strings.Join(hallazgos[i:end], "   |   ")))
	}
	return rows
}

// citasHeaderRows: título de sección + cabecera de la tabla de citas.
func citasHeaderRows() []core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return []core.Row{
		sectionTitleRow("HISTORIAL DE CITAS"),
		row.New(8).Add(
			h("Fecha", 2, align.Left),
			h("Motivo", 4, align.Left),
			h("Tratamientos", 4, align.Left),
			h("Monto", 2, align.Right),
		),
	}
}

// citasRows: una fila por cita, más reciente primero (orden de entrada).
func citasRows(citas []*entity.Cita) []core.Row {
	if len(citas) == 0 {
		return []core.Row{infoRow("El paciente no registra citas.")}
	}
	result := make([]core.Row, 0, len(citas))
	for _, c := range citas {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				c.Fecha.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				c.Motivo,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				nonEmpty(strings.Join(c.Tratamientos, ", "), "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+c.Monto.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitleRow(titulo string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

func infoRow(texto string) core.Row {
	return row.New(5).Add(col.New(12).Add(
		text.New(texto, props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
