package cuit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consultor-bcra/pkg/cuit"
)

func TestIsValid_VectoresConocidos(t *testing.T) {
	valid := []string{
		"20281584503",
		"20329889093",
		"30500010912",
		"27123456780",
		"20000000001", // resto 1
		"20000000060", // 11 → 0
		"20000000019", // 10 → 9
	}
	for _, c := range valid {
		assert.True(t, cuit.IsValid(c), "se esperaba válida: %s", c)
	}
}

func TestIsValid_DigitoIncorrecto(t *testing.T) {
	assert.False(t, cuit.IsValid("20329889099"))
	assert.False(t, cuit.IsValid("20329889091"))
	assert.False(t, cuit.IsValid("20281584502"))
}

func TestIsValid_LongitudYCaracteres(t *testing.T) {
	cases := []string{
		"",
		"1234567890",
		"203298890933",
		"2032988909a",
		"20-28158450-3",
		" 20281584503",
		"２0281584503", // dígito de ancho completo
		"20281584５03",
	}
	for _, c := range cases {
		assert.False(t, cuit.IsValid(c), "se esperaba inválida: %q", c)
	}
}

// Cualquier string distinto de 11 dígitos ASCII es inválido, sin panic.
func TestIsValid_Total(t *testing.T) {
	inputs := []string{"\x00", "\xff\xfe", strings.Repeat("9", 11), strings.Repeat("0", 11), "¿¿¿¿¿¿¿¿¿¿¿"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { _ = cuit.IsValid(in) })
	}
	// 00000000000: suma 0 → 11 → 0, válida por el algoritmo.
	assert.True(t, cuit.IsValid(strings.Repeat("0", 11)))
}

func TestCheckDigit(t *testing.T) {
	dv, err := cuit.CheckDigit("2028158450")
	require.NoError(t, err)
	assert.Equal(t, 3, dv)

	dv, err = cuit.CheckDigit("2032988909")
	require.NoError(t, err)
	assert.Equal(t, 3, dv)

	_, err = cuit.CheckDigit("123")
	assert.Error(t, err)
	_, err = cuit.CheckDigit("20281584x0")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "20281584503", cuit.Normalize(" 20-28158450-3 "))
	assert.Equal(t, "20281584503", cuit.Normalize("20.281.584.50-3"))
	assert.True(t, cuit.IsValid(cuit.Normalize("20-28158450-3")))
}

func TestKindYFormat(t *testing.T) {
	assert.Equal(t, "persona humana", cuit.Kind("20281584503"))
	assert.Equal(t, "persona jurídica", cuit.Kind("30500010912"))
	assert.Equal(t, "", cuit.Kind("9"))
	assert.Equal(t, "20-28158450-3", cuit.Format("20281584503"))
	assert.Equal(t, "abc", cuit.Format("abc"))
}
