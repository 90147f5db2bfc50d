package export

import (
	"strings"

	"github.com/jhoicas/consultor-bcra/internal/application/ports"
)

// Registry exportadores indexados por formato.
type Registry map[string]ports.ReportExporter

// NewRegistry registra CSV (UTF-8 o ISO-8859-1), XLSX y PDF.
func NewRegistry(csvLatin1 bool) Registry {
	r := Registry{}
	for _, e := range []ports.ReportExporter{NewCSVExporter(csvLatin1), NewXLSXExporter(), NewPDFExporter()} {
		r[e.Format()] = e
	}
	return r
}

// Get busca el exportador ignorando mayúsculas.
func (r Registry) Get(format string) (ports.ReportExporter, bool) {
	e, ok := r[strings.ToLower(strings.TrimSpace(format))]
	return e, ok
}
