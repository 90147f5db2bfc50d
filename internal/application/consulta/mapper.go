package consulta

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/consultor-bcra/internal/application/dto"
	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

func toRecordDTOs(records []entity.DebtRecord) []dto.DebtRecordDTO {
	out := make([]dto.DebtRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, dto.DebtRecordDTO{
			Period:            r.Period,
			Entity:            r.Entity,
			Amount:            r.Amount,
			Status:            r.Status,
			UnderReview:       r.UnderReview,
			InJudicialProcess: r.InJudicialProcess,
		})
	}
	return out
}

func toChequesDTO(c, source string, checks []entity.RejectedCheck) *dto.ChequesDTO {
	out := &dto.ChequesDTO{CUIT: c, Source: source, Checks: make([]dto.RejectedCheckDTO, 0, len(checks))}
	total := decimal.Zero
	for _, ch := range checks {
		d := dto.RejectedCheckDTO{
			Causal:            ch.Causal,
			Entity:            ch.Entity,
			Number:            ch.Number,
			Amount:            ch.Amount,
			PaymentDate:       ch.PaymentDate,
			FinePaymentDate:   ch.FinePaymentDate,
			FineStatus:        ch.FineStatus,
			UnderReview:       ch.UnderReview,
			InJudicialProcess: ch.InJudicialProcess,
		}
		if !ch.RejectionDate.IsZero() {
			d.RejectionDate = ch.RejectionDate.Format("2006-01-02")
		}
		out.Checks = append(out.Checks, d)
		total = total.Add(decimal.NewFromFloat(ch.Amount))
	}
	out.Count = len(out.Checks)
	out.TotalAmount = total
	return out
}

