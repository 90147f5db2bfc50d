// Package bcra normaliza las respuestas JSON de la Central de Deudores del BCRA.
//
// El JSON se recorre como gjson.Result, que ya distingue objeto, array, texto, número,
// booleano y null; cada paso verifica la variante antes de leer. Ninguna función del
// paquete devuelve error ni entra en pánico por la forma del documento: lo que no
// encaja se omite o toma su valor por defecto.
package bcra

import (
	"github.com/tidwall/gjson"

	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

// FlattenBytes parsea raw y aplana. JSON inválido → sin filas.
func FlattenBytes(raw []byte) []entity.DebtRecord {
	if !gjson.ValidBytes(raw) {
		return []entity.DebtRecord{}
	}
	return Flatten(gjson.ParseBytes(raw))
}

// Flatten convierte el árbol período → entidades en una fila por (período, entidad),
// respetando el orden de entrada.
func Flatten(doc gjson.Result) []entity.DebtRecord {
	records := []entity.DebtRecord{}
	periods := lookup(unwrap(doc), periodsKeys)
	if !periods.IsArray() {
		return records
	}
	for _, per := range periods.Array() {
		entities := lookup(per, entitiesKeys)
		if !entities.IsArray() {
			continue
		}
		period := periodLabel(lookup(per, periodKeys))
		for _, e := range entities.Array() {
			if !e.IsObject() {
				continue
			}
			records = append(records, flattenEntity(period, e))
		}
	}
	return records
}

func flattenEntity(period string, e gjson.Result) entity.DebtRecord {
	return entity.DebtRecord{
		Period:            period,
		Entity:            text(lookup(e, entityKeys)),
		Amount:            amount(lookup(e, amountKeys)),
		Status:            status(lookup(e, statusKeys)),
		UnderReview:       flag(lookup(e, underReviewKeys)),
		InJudicialProcess: flag(lookup(e, judicialKeys)),
	}
}

// ParseReport arma el informe completo: identificación, denominación y filas.
func ParseReport(cuit string, doc gjson.Result) entity.DebtReport {
	data := unwrap(doc)
	return entity.DebtReport{
		CUIT:           cuit,
		Identification: text(lookup(data, identificationKeys)),
		Denomination:   text(lookup(data, denominationKeys)),
		Records:        Flatten(doc),
	}
}

// ParseReportBytes igual que ParseReport desde bytes; JSON inválido → informe vacío.
func ParseReportBytes(cuit string, raw []byte) entity.DebtReport {
	if !gjson.ValidBytes(raw) {
		return entity.DebtReport{CUIT: cuit, Records: []entity.DebtRecord{}}
	}
	return ParseReport(cuit, gjson.ParseBytes(raw))
}
