package entity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// SituacionKind variante del valor de situación recibido.
type SituacionKind uint8

const (
	SituacionAusente SituacionKind = iota // sin campo o null
	SituacionNumero
	SituacionTexto
	SituacionOtro // bool, objeto o array: se conserva el literal
)

// Situacion clasificación de riesgo informada por la entidad. Se conserva tal como llegó:
// número, texto o ausente.
type Situacion struct {
	Kind SituacionKind
	Raw  string // literal JSON original; vacío si ausente
	Text string // contenido si es texto
}

// NewSituacionNumero construye una situación numérica a partir de su literal ("1", "2.0").
func NewSituacionNumero(raw string) Situacion {
	return Situacion{Kind: SituacionNumero, Raw: raw}
}

// NewSituacionTexto construye una situación de texto; raw es el literal JSON entrecomillado.
func NewSituacionTexto(text, raw string) Situacion {
	if raw == "" {
		raw = strconv.Quote(text)
	}
	return Situacion{Kind: SituacionTexto, Raw: raw, Text: text}
}

// NewSituacionOtro conserva un literal JSON que no es número ni texto.
func NewSituacionOtro(raw string) Situacion {
	return Situacion{Kind: SituacionOtro, Raw: raw}
}

// IsPresent indica si el origen informó algo distinto de null.
func (s Situacion) IsPresent() bool { return s.Kind != SituacionAusente }

// Int devuelve la situación como entero si es numérica y entera.
func (s Situacion) Int() (int64, bool) {
	if s.Kind != SituacionNumero {
		return 0, false
	}
	if n, err := strconv.ParseInt(s.Raw, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s.Raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

// String representación para tablas y CSV.
func (s Situacion) String() string {
	switch s.Kind {
	case SituacionAusente:
		return ""
	case SituacionTexto:
		return s.Text
	default:
		return s.Raw
	}
}

// MarshalJSON emite el literal original (o null).
func (s Situacion) MarshalJSON() ([]byte, error) {
	if s.Kind == SituacionAusente || s.Raw == "" {
		return []byte("null"), nil
	}
	return []byte(s.Raw), nil
}

// UnmarshalJSON reconstruye la variante a partir del literal.
func (s *Situacion) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "" || raw == "null":
		*s = Situacion{}
	case raw[0] == '"':
		var text string
		if err := json.Unmarshal([]byte(raw), &text); err != nil {
			return err
		}
		*s = NewSituacionTexto(text, raw)
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		*s = NewSituacionNumero(raw)
	default:
		*s = NewSituacionOtro(raw)
	}
	return nil
}
