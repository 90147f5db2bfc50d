package export

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

	"github.com/jhoicas/consultor-bcra/internal/application/ports"
	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
	"github.com/jhoicas/consultor-bcra/pkg/cuit"
	"github.com/jhoicas/consultor-bcra/pkg/money"
)

var _ ports.ReportExporter = (*PDFExporter)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFExporter informe A4 con encabezado (CUIT, denominación), tabla de registros y totales por período.
type PDFExporter struct{}

// NewPDFExporter construye el exportador.
func NewPDFExporter() *PDFExporter { return &PDFExporter{} }

func (e *PDFExporter) Format() string      { return "pdf" }
func (e *PDFExporter) ContentType() string { return "application/pdf" }

func (e *PDFExporter) Export(_ context.Context, report entity.DebtReport, totals []entity.PeriodTotal) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Central de Deudores BCRA", true).
		WithAuthor("consultor-bcra", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(report.Records) {
		m.AddRows(r)
	}
	if len(report.Records) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin registros informados.", props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}

	if len(totals) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		for _, r := range totalsRows(totals) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Fuente: BCRA, Central de Deudores del Sistema Financiero. Montos en pesos.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: denominación + CUIT (izq) y cantidad de registros (der).
func headerRow(report entity.DebtReport) core.Row {
	name := report.Denomination
	if name == "" {
		name = "Sin denominación"
	}
	return row.New(18).Add(
		col.New(8).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CUIT: "+cuit.Format(report.CUIT), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("CENTRAL DE DEUDORES", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d registros", len(report.Records)), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Período", 2, align.Left),
		h("Entidad", 5, align.Left),
		h("Monto", 2, align.Right),
		h("Sit.", 1, align.Center),
		h("Rev.", 1, align.Center),
		h("Jud.", 1, align.Center),
	)
}

// tableDetailRows: una fila por registro.
func tableDetailRows(records []entity.DebtRecord) []core.Row {
	result := make([]core.Row, 0, len(records))
	for _, r := range records {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(r.Period, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(r.Entity, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(
				"$"+money.Group(strconv.FormatFloat(r.Amount, 'f', 0, 64)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(r.Status.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(yesNo(r.UnderReview), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(yesNo(r.InJudicialProcess), props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

// totalsRows: total por período expresado en miles.
func totalsRows(totals []entity.PeriodTotal) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("TOTALES POR PERÍODO (en miles de pesos)", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, t := range totals {
		rows = append(rows, row.New(5).Add(
			col.New(6),
			col.New(3).Add(text.New(t.Period, props.Text{Size: 8, Align: align.Right, Right: 2})),
			col.New(3).Add(text.New(money.Thousands(t.Amount), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Right: 1,
			})),
		))
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
