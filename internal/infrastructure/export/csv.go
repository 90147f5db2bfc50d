// Package export genera los archivos descargables del informe de deudas (CSV, XLSX y PDF).
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/consultor-bcra/internal/application/ports"
	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

var _ ports.ReportExporter = (*CSVExporter)(nil)

// Columns encabezado común a CSV y XLSX.
var Columns = []string{"periodo", "entidad", "monto", "situacion", "en_revision", "proceso_judicial"}

// CSVExporter escribe una fila por registro. Con Latin1 la salida se codifica en ISO-8859-1
// (Excel en configuración regional en español abre así los acentos sin importar el archivo).
type CSVExporter struct {
	Latin1 bool
}

// NewCSVExporter construye el exportador.
func NewCSVExporter(latin1 bool) *CSVExporter { return &CSVExporter{Latin1: latin1} }

func (e *CSVExporter) Format() string { return "csv" }

func (e *CSVExporter) ContentType() string {
	if e.Latin1 {
		return "text/csv; charset=iso-8859-1"
	}
	return "text/csv; charset=utf-8"
}

// Export escribe el CSV. totals no se usa: el CSV replica la tabla plana.
func (e *CSVExporter) Export(_ context.Context, report entity.DebtReport, _ []entity.PeriodTotal) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return nil, fmt.Errorf("csv: encabezado: %w", err)
	}
	for _, r := range report.Records {
		if err := w.Write(recordRow(r)); err != nil {
			return nil, fmt.Errorf("csv: fila: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if !e.Latin1 {
		return buf.Bytes(), nil
	}
	enc := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	out, _, err := transform.Bytes(enc, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("csv: codificar ISO-8859-1: %w", err)
	}
	return out, nil
}

func recordRow(r entity.DebtRecord) []string {
	return []string{
		r.Period,
		r.Entity,
		strconv.FormatFloat(r.Amount, 'f', -1, 64),
		r.Status.String(),
		strconv.FormatBool(r.UnderReview),
		strconv.FormatBool(r.InJudicialProcess),
	}
}
