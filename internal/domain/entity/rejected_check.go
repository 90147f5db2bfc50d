package entity

import "time"

// RejectedCheck cheque rechazado informado por la Central de Deudores.
type RejectedCheck struct {
	Causal            string // motivo del rechazo (SIN FONDOS, DEFECTOS FORMALES, ...)
	Entity            string
	Number            string
	RejectionDate     time.Time
	Amount            float64
	PaymentDate       string
	FinePaymentDate   string
	FineStatus        string
	UnderReview       bool
	InJudicialProcess bool
}
