package entity

import "github.com/shopspring/decimal"

// DebtRecord una fila del informe de deudas: una entidad en un período.
type DebtRecord struct {
	Period            string // YYYY-MM cuando el origen lo permite
	Entity            string // entidad financiera informante
	Amount            float64
	Status            Situacion
	UnderReview       bool
	InJudicialProcess bool
}

// DebtReport resultado normalizado de Deudas / DeudasHistoricas para una CUIT.
type DebtReport struct {
	CUIT           string
	Identification string // identificación tal como la devuelve la Central
	Denomination   string
	Records        []DebtRecord
}

// PeriodTotal total adeudado en un período (serie de gráficos).
type PeriodTotal struct {
	Period          string
	Amount          decimal.Decimal
	AmountThousands decimal.Decimal
}

// EntityTotal total adeudado a una entidad.
type EntityTotal struct {
	Entity string
	Amount decimal.Decimal
}
