// Package money formatea montos en pesos con separador de miles ".".
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// Thousands presenta un monto expresado en pesos como miles: 1234567 → "$1.235".
// Los medios redondean al par: 2500 → "$2", 3500 → "$4".
func Thousands(v decimal.Decimal) string {
	return "$" + Group(v.Div(thousand).RoundBank(0).StringFixed(0))
}

// ToThousands divide por mil y redondea a 2 decimales (series de gráficos).
func ToThousands(v decimal.Decimal) decimal.Decimal {
	return v.Div(thousand).Round(2)
}

// Group inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func Group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
