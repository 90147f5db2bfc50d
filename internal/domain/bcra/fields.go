package bcra

import "github.com/tidwall/gjson"

// Nombres de campo candidatos por atributo lógico. La Central de Deudores usó distintos nombres
// según versión y recurso; se toma el primero presente, de izquierda a derecha, sin combinar.
var (
	resultsKeys        = []string{"results"}
	periodsKeys        = []string{"periods", "periodos"}
	periodKeys         = []string{"period", "periodo", "mes"}
	entitiesKeys       = []string{"entities", "entidades", "detalle"}
	entityKeys         = []string{"entity", "entidad", "bank", "banco"}
	amountKeys         = []string{"amount", "monto", "importe"}
	statusKeys         = []string{"status", "situacion", "sit"}
	underReviewKeys    = []string{"underReview", "enRevision", "en_revision"}
	judicialKeys       = []string{"judicialProcess", "procesoJud", "proceso_judicial", "procesoJudicial"}
	denominationKeys   = []string{"denomination", "denominacion", "nombre"}
	identificationKeys = []string{"identification", "identificacion"}

	// cheques rechazados
	causalesKeys      = []string{"causales", "causals"}
	causalKeys        = []string{"causal", "motivo"}
	checkListKeys     = []string{"registros", "items", "cheques", "data"}
	checkDetailKeys   = []string{"detalle", "detail", "cheques"}
	checkNumberKeys   = []string{"nroCheque", "numeroCheque", "nro_cheque", "numero"}
	rejectionDateKeys = []string{"fechaRechazo", "fecha_rechazo", "fecha"}
	paymentDateKeys   = []string{"fechaPago", "fecha_pago"}
	finePaymentKeys   = []string{"fechaPagoMulta", "fecha_pago_multa"}
	fineStatusKeys    = []string{"estadoMulta", "estado_multa"}
)

// lookup devuelve el valor del primer nombre presente en obj. Un campo con null se trata como
// ausente y se sigue con el próximo nombre; 0, false o "" sí cuentan como presentes.
// Si obj no es un objeto devuelve un resultado inexistente.
func lookup(obj gjson.Result, keys []string) gjson.Result {
	if !obj.IsObject() {
		return gjson.Result{}
	}
	for _, k := range keys {
		if v := obj.Get(gjson.Escape(k)); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// unwrap desciende a "results" si el documento es un objeto que lo contiene.
func unwrap(doc gjson.Result) gjson.Result {
	if v := lookup(doc, resultsKeys); v.Exists() {
		return v
	}
	return doc
}
