package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

// DebtRecordDTO una fila normalizada del informe de deudas.
type DebtRecordDTO struct {
	Period            string           `json:"period"`
	Entity            string           `json:"entity"`
	Amount            float64          `json:"amount"`
	Status            entity.Situacion `json:"status"`
	UnderReview       bool             `json:"under_review"`
	InJudicialProcess bool             `json:"in_judicial_process"`
}

// PeriodTotalDTO punto de la serie de totales por período.
type PeriodTotalDTO struct {
	Period          string          `json:"period"`
	Amount          decimal.Decimal `json:"amount"`
	AmountThousands decimal.Decimal `json:"amount_thousands"`
}

// EntityTotalDTO total adeudado a una entidad.
type EntityTotalDTO struct {
	Entity string          `json:"entity"`
	Amount decimal.Decimal `json:"amount"`
}

// DeudasDTO respuesta de la consulta de deudas del último período informado.
type DeudasDTO struct {
	CUIT           string          `json:"cuit"`
	Identification string          `json:"identification,omitempty"`
	Denomination   string          `json:"denomination,omitempty"`
	Records        []DebtRecordDTO `json:"records"`
	LatestPeriod   string          `json:"latest_period,omitempty"`
	LatestTotal    decimal.Decimal `json:"latest_total"`
	// LatestTotalText total del último período en miles ("$1.235").
	LatestTotalText string `json:"latest_total_text"`
}

// HistoricasDTO respuesta de la consulta histórica (24 meses) con series para gráficos.
type HistoricasDTO struct {
	CUIT         string           `json:"cuit"`
	Denomination string           `json:"denomination,omitempty"`
	Records      []DebtRecordDTO  `json:"records"`
	Series       []PeriodTotalDTO `json:"series"`
	TopEntities  []EntityTotalDTO `json:"top_entities"`
	LatestPeriod string           `json:"latest_period,omitempty"`
	MultiPeriod  bool             `json:"multi_period"`
}

// RejectedCheckDTO cheque rechazado.
type RejectedCheckDTO struct {
	Causal            string  `json:"causal,omitempty"`
	Entity            string  `json:"entity"`
	Number            string  `json:"number,omitempty"`
	RejectionDate     string  `json:"rejection_date,omitempty"` // YYYY-MM-DD
	Amount            float64 `json:"amount"`
	PaymentDate       string  `json:"payment_date,omitempty"`
	FinePaymentDate   string  `json:"fine_payment_date,omitempty"`
	FineStatus        string  `json:"fine_status,omitempty"`
	UnderReview       bool    `json:"under_review"`
	InJudicialProcess bool    `json:"in_judicial_process"`
}

// ChequesDTO respuesta de cheques rechazados (Central o Estadísticas BCRA).
type ChequesDTO struct {
	CUIT        string             `json:"cuit"`
	Source      string             `json:"source"`
	Months      int                `json:"months,omitempty"`
	Checks      []RejectedCheckDTO `json:"checks"`
	Count       int                `json:"count"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
}

// ExportFile archivo generado para descarga.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ValidacionDTO resultado de validar el dígito verificador de una CUIT.
type ValidacionDTO struct {
	Input     string `json:"input"`
	CUIT      string `json:"cuit"`
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted,omitempty"`
	Kind      string `json:"kind,omitempty"`
	// ExpectedDigit dígito correcto cuando los 10 primeros dígitos son válidos pero el último no.
	ExpectedDigit *int `json:"expected_digit,omitempty"`
}

// QueryLogDTO entrada del historial de consultas.
type QueryLogDTO struct {
	ID           string          `json:"id"`
	CUIT         string          `json:"cuit"`
	Source       string          `json:"source"`
	Denomination string          `json:"denomination,omitempty"`
	Records      int             `json:"records"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}

// QueryLogListResponse lista del historial.
type QueryLogListResponse struct {
	Items []QueryLogDTO `json:"items"`
	Page  PageResponse  `json:"page"`
}
