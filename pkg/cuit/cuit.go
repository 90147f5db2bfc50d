// Package cuit valida la Clave Única de Identificación Tributaria (Argentina).
package cuit

import (
	"fmt"
	"strings"
)

// Length cantidad de dígitos de una CUIT/CUIL.
const Length = 11

// pesos del dígito verificador módulo 11 (AFIP), aplicados a los 10 primeros dígitos.
var cuitWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// IsValid informa si input es una CUIT de 11 dígitos con dígito verificador correcto.
// No normaliza: "20-28158450-3" es inválida, usar Normalize antes.
func IsValid(input string) bool {
	if len(input) != Length || !allDigits(input) {
		return false
	}
	dv, err := CheckDigit(input[:Length-1])
	if err != nil {
		return false
	}
	return dv == int(input[Length-1]-'0')
}

// CheckDigit calcula el dígito verificador para los 10 primeros dígitos de la CUIT.
func CheckDigit(base string) (int, error) {
	if len(base) != Length-1 || !allDigits(base) {
		return 0, fmt.Errorf("cuit: se requieren %d dígitos para calcular el verificador, se recibió %q", Length-1, base)
	}
	var sum int
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * cuitWeights[i]
	}
	dv := 11 - sum%11
	switch dv {
	case 11:
		return 0, nil
	case 10:
		return 9, nil
	default:
		return dv, nil
	}
}

// Normalize quita los separadores habituales (guiones, puntos y espacios).
func Normalize(input string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '.', ' ', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(input))
}

// Kind describe el tipo de persona según el prefijo. Devuelve "" si no se reconoce.
func Kind(cuit string) string {
	if len(cuit) < 2 {
		return ""
	}
	switch cuit[:2] {
	case "20", "23", "24", "27":
		return "persona humana"
	case "30", "33", "34":
		return "persona jurídica"
	default:
		return ""
	}
}

// Format devuelve la CUIT con guiones (XX-XXXXXXXX-X) o el input sin cambios si no tiene 11 dígitos.
func Format(cuit string) string {
	if len(cuit) != Length || !allDigits(cuit) {
		return cuit
	}
	return cuit[:2] + "-" + cuit[2:10] + "-" + cuit[10:]
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
