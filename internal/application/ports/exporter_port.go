package ports

import (
	"context"

	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

// ReportExporter genera un archivo descargable a partir del informe de deudas.
type ReportExporter interface {
	// Format nombre corto del formato ("csv", "xlsx", "pdf").
	Format() string
	ContentType() string
	Export(ctx context.Context, report entity.DebtReport, totals []entity.PeriodTotal) ([]byte, error)
}
