package bcra

import (
	"strings"

	"github.com/tidwall/gjson"
)

// NormalizePeriod convierte "YYYYMM" en "YYYY-MM". Cualquier otro valor se devuelve sin cambios.
func NormalizePeriod(p string) string {
	t := strings.TrimSpace(p)
	if len(t) == 6 && isDigits(t) {
		return t[:4] + "-" + t[4:]
	}
	return p
}

func periodLabel(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return NormalizePeriod(v.Str)
	case gjson.Number:
		return NormalizePeriod(v.Raw)
	default:
		return text(v)
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
