package bcra

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

// text convierte un valor escalar a texto. Números conservan su literal; null o ausente → "".
func text(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Null:
		return ""
	default:
		return v.Raw
	}
}

// amount coerciona a float64. Cualquier valor no numérico, negativo o no finito → 0.
func amount(v gjson.Result) float64 {
	var f float64
	switch v.Type {
	case gjson.Number:
		f = v.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// flag interpreta un booleano tolerante: true, números distintos de cero y textos afirmativos.
func flag(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(v.Str)) {
		case "true", "t", "1", "si", "sí", "s", "yes", "y":
			return true
		}
	}
	return false
}

// status conserva la situación tal como llegó.
func status(v gjson.Result) entity.Situacion {
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		return entity.Situacion{}
	case v.Type == gjson.Number:
		return entity.NewSituacionNumero(v.Raw)
	case v.Type == gjson.String:
		return entity.NewSituacionTexto(v.Str, v.Raw)
	default:
		return entity.NewSituacionOtro(v.Raw)
	}
}
