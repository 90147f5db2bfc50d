package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fuentes consultadas en la Central de Deudores.
const (
	SourceDeudas              = "deudas"
	SourceHistoricas          = "historicas"
	SourceCheques             = "cheques"
	SourceChequesEstadisticas = "cheques_estadisticas"
)

// QueryLog registro de una consulta realizada (auditoría / historial).
type QueryLog struct {
	ID           string
	CUIT         string
	Source       string
	Denomination string
	Records      int
	Total        decimal.Decimal
	CreatedAt    time.Time
}
