package bcra

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

var checkDateLayouts = []string{"2006-01-02", "20060102", "02/01/2006"}

// FlattenChequesBytes parsea raw y aplana los cheques rechazados. JSON inválido → sin filas.
func FlattenChequesBytes(raw []byte, cutoff time.Time) []entity.RejectedCheck {
	if !gjson.ValidBytes(raw) {
		return []entity.RejectedCheck{}
	}
	return FlattenCheques(gjson.ParseBytes(raw), cutoff)
}

// FlattenCheques admite el árbol de la Central (causales → entidades → detalle) y las
// listas planas (array en la raíz o en registros/items/cheques/data).
// Con cutoff distinto de cero se descartan los cheques sin fecha o anteriores a cutoff.
func FlattenCheques(doc gjson.Result, cutoff time.Time) []entity.RejectedCheck {
	data := unwrap(doc)
	out := []entity.RejectedCheck{}

	keep := func(c entity.RejectedCheck) {
		if !cutoff.IsZero() && (c.RejectionDate.IsZero() || c.RejectionDate.Before(cutoff)) {
			return
		}
		out = append(out, c)
	}

	if causales := lookup(data, causalesKeys); causales.IsArray() {
		for _, causal := range causales.Array() {
			name := text(lookup(causal, causalKeys))
			entities := lookup(causal, entitiesKeys)
			if !entities.IsArray() {
				continue
			}
			for _, ent := range entities.Array() {
				entName := text(lookup(ent, entityKeys))
				details := lookup(ent, checkDetailKeys)
				if !details.IsArray() {
					continue
				}
				for _, d := range details.Array() {
					if !d.IsObject() {
						continue
					}
					c := parseCheck(d)
					c.Causal = name
					if c.Entity == "" {
						c.Entity = entName
					}
					keep(c)
				}
			}
		}
		return out
	}

	var rows gjson.Result
	switch {
	case data.IsArray():
		rows = data
	default:
		rows = lookup(data, checkListKeys)
	}
	if !rows.IsArray() {
		return out
	}
	for _, r := range rows.Array() {
		if !r.IsObject() {
			continue
		}
		c := parseCheck(r)
		c.Causal = text(lookup(r, causalKeys))
		keep(c)
	}
	return out
}

func parseCheck(d gjson.Result) entity.RejectedCheck {
	return entity.RejectedCheck{
		Entity:            text(lookup(d, entityKeys)),
		Number:            text(lookup(d, checkNumberKeys)),
		RejectionDate:     rejectionDate(d),
		Amount:            amount(lookup(d, amountKeys)),
		PaymentDate:       text(lookup(d, paymentDateKeys)),
		FinePaymentDate:   text(lookup(d, finePaymentKeys)),
		FineStatus:        text(lookup(d, fineStatusKeys)),
		UnderReview:       flag(lookup(d, underReviewKeys)),
		InJudicialProcess: flag(lookup(d, judicialKeys)),
	}
}

// rejectionDate usa los campos de rechazo conocidos y, si no hay, el primer campo cuyo
// nombre contenga "fecha" y cuyo valor sea una fecha reconocible.
func rejectionDate(d gjson.Result) time.Time {
	if t, ok := parseCheckDate(lookup(d, rejectionDateKeys)); ok {
		return t
	}
	var found time.Time
	d.ForEach(func(key, value gjson.Result) bool {
		if !strings.Contains(strings.ToLower(key.String()), "fecha") {
			return true
		}
		if t, ok := parseCheckDate(value); ok {
			found = t
			return false
		}
		return true
	})
	return found
}

func parseCheckDate(v gjson.Result) (time.Time, bool) {
	if v.Type != gjson.String {
		return time.Time{}, false
	}
	s := strings.TrimSpace(v.Str)
	if len(s) > 10 {
		s = s[:10]
	}
	for _, layout := range checkDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CutoffMonths fecha de corte para "últimos n meses" (30 días por mes) desde now.
func CutoffMonths(now time.Time, months int) time.Time {
	if months <= 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -30*months)
}
