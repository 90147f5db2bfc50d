package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/consultor-bcra/internal/application/ports"
	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

var _ ports.ReportExporter = (*XLSXExporter)(nil)

const (
	sheetDeudas  = "Deudas"
	sheetTotales = "Totales"
)

// XLSXExporter genera un libro con la tabla de deudas y los totales por período.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (e *XLSXExporter) Format() string { return "xlsx" }

func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *XLSXExporter) Export(_ context.Context, report entity.DebtReport, totals []entity.PeriodTotal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetDeudas); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	if err := writeHeader(f, sheetDeudas, Columns, headerStyle); err != nil {
		return nil, err
	}
	for i, r := range report.Records {
		values := []interface{}{r.Period, r.Entity, r.Amount, r.Status.String(), r.UnderReview, r.InJudicialProcess}
		if err := writeRow(f, sheetDeudas, i+2, values); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheetDeudas, "A", "A", 12)
	_ = f.SetColWidth(sheetDeudas, "B", "B", 40)
	_ = f.SetColWidth(sheetDeudas, "C", "F", 16)

	if _, err := f.NewSheet(sheetTotales); err != nil {
		return nil, fmt.Errorf("xlsx: hoja de totales: %w", err)
	}
	if err := writeHeader(f, sheetTotales, []string{"periodo", "monto", "monto_miles"}, headerStyle); err != nil {
		return nil, err
	}
	for i, t := range totals {
		values := []interface{}{t.Period, t.Amount.InexactFloat64(), t.AmountThousands.InexactFloat64()}
		if err := writeRow(f, sheetTotales, i+2, values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx: encabezado %s: %w", h, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("xlsx: estilo encabezado: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("xlsx: fila %d: %w", row, err)
		}
	}
	return nil
}
