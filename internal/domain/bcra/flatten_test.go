package bcra_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/jhoicas/consultor-bcra/internal/domain/bcra"
	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo con nombres en castellano y un importe no numérico.
// ──────────────────────────────────────────────────────────────────────────────

func TestFlatten_EscenarioCompleto(t *testing.T) {
	raw := `{"results":{"periodos":[{"periodo":"202501","entidades":[
		{"entidad":"Bank A","monto":1000,"situacion":1},
		{"entidad":"Bank B","importe":"bad"} ]}]}}`

	got := bcra.FlattenBytes([]byte(raw))
	require.Len(t, got, 2)

	a := got[0]
	assert.Equal(t, "2025-01", a.Period)
	assert.Equal(t, "Bank A", a.Entity)
	assert.Equal(t, 1000.0, a.Amount)
	n, ok := a.Status.Int()
	require.True(t, ok)
	assert.Equal(t, int64(1), n)
	assert.False(t, a.UnderReview)
	assert.False(t, a.InJudicialProcess)

	b := got[1]
	assert.Equal(t, "2025-01", b.Period)
	assert.Equal(t, "Bank B", b.Entity)
	assert.Equal(t, 0.0, b.Amount)
	assert.False(t, b.Status.IsPresent())
	assert.False(t, b.UnderReview)
	assert.False(t, b.InJudicialProcess)
}

func TestFlatten_FormaDocumentada(t *testing.T) {
	raw := `{"status":200,"results":{"identification":"20281584503","denomination":"PEREZ JUAN",
		"periods":[
			{"period":"202507","entities":[
				{"entity":"BANCO NACION","amount":125.5,"status":2,"underReview":true,"judicialProcess":false},
				{"entity":"BANCO GALICIA","amount":10,"status":"1","underReview":false,"judicialProcess":true}]},
			{"period":"2025-06","entities":[
				{"entity":"BANCO NACION","amount":100}]}]}}`

	got := bcra.FlattenBytes([]byte(raw))
	require.Len(t, got, 3)

	assert.Equal(t, "2025-07", got[0].Period)
	assert.Equal(t, "BANCO NACION", got[0].Entity)
	assert.Equal(t, 125.5, got[0].Amount)
	assert.True(t, got[0].UnderReview)
	assert.False(t, got[0].InJudicialProcess)

	assert.Equal(t, "BANCO GALICIA", got[1].Entity)
	assert.Equal(t, entity.SituacionTexto, got[1].Status.Kind)
	assert.Equal(t, "1", got[1].Status.String())
	assert.True(t, got[1].InJudicialProcess)

	// sin ordenamiento implícito: se respeta el orden de entrada
	assert.Equal(t, "2025-06", got[2].Period)
}

func TestFlatten_Periodos(t *testing.T) {
	cases := map[string]string{
		`"202507"`:  "2025-07",
		`"2025-07"`: "2025-07",
		`202507`:    "2025-07",
		`"2025/07"`: "2025/07",
		`"julio"`:   "julio",
		`"20250"`:   "20250",
		`null`:      "",
	}
	for in, want := range cases {
		raw := `{"results":{"periodos":[{"periodo":` + in + `,"entidades":[{"entidad":"X"}]}]}}`
		got := bcra.FlattenBytes([]byte(raw))
		require.Len(t, got, 1, in)
		assert.Equal(t, want, got[0].Period, in)
	}
}

func TestFlatten_NombresAlternativos(t *testing.T) {
	raw := `{"results":{"periodos":[{"mes":"202412","detalle":[
		{"banco":"B1","importe":"250.75","sit":3,"en_revision":true,"proceso_judicial":1},
		{"bank":"B2","amount":"  42 ","enRevision":"si","procesoJudicial":"true"}]}]}}`

	got := bcra.FlattenBytes([]byte(raw))
	require.Len(t, got, 2)
	assert.Equal(t, "2024-12", got[0].Period)
	assert.Equal(t, "B1", got[0].Entity)
	assert.Equal(t, 250.75, got[0].Amount)
	n, ok := got[0].Status.Int()
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)
	assert.True(t, got[0].UnderReview)
	assert.True(t, got[0].InJudicialProcess)

	assert.Equal(t, "B2", got[1].Entity)
	assert.Equal(t, 42.0, got[1].Amount)
	assert.True(t, got[1].UnderReview)
	assert.True(t, got[1].InJudicialProcess)
}

// Un null no tapa a los nombres siguientes.
func TestFlatten_NullPasaAlSiguienteNombre(t *testing.T) {
	raw := `{"results":{"periodos":[{"periodo":"202501","entidades":[
		{"entidad":null,"banco":"B","amount":null,"monto":500,"status":null,"situacion":4}]}]}}`

	got := bcra.FlattenBytes([]byte(raw))
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Entity)
	assert.Equal(t, 500.0, got[0].Amount)
	require.True(t, got[0].Status.IsPresent())
	n, ok := got[0].Status.Int()
	require.True(t, ok)
	assert.Equal(t, int64(4), n)
}

func TestFlatten_PrimeroPresenteSinCombinar(t *testing.T) {
	// 0, false y "" cuentan como presentes: no se combinan con nombres posteriores
	raw := `{"results":{"periodos":[{"periodo":"202501","entidades":[
		{"entity":"","entidad":"A","amount":0,"monto":500,"underReview":false,"enRevision":true}]}]}}`

	got := bcra.FlattenBytes([]byte(raw))
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].Entity)
	assert.Equal(t, 0.0, got[0].Amount)
	assert.False(t, got[0].UnderReview)
}

func TestFlatten_ValoresPorDefecto(t *testing.T) {
	raw := `{"results":{"periodos":[{"periodo":"202501","entidades":[{"entidad":"A"},{}]}]}}`
	got := bcra.FlattenBytes([]byte(raw))
	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, 0.0, r.Amount)
		assert.False(t, r.UnderReview)
		assert.False(t, r.InJudicialProcess)
	}
	assert.Equal(t, "", got[1].Entity)
}

func TestFlatten_MontosNoValidos(t *testing.T) {
	for _, v := range []string{`"abc"`, `true`, `{}`, `[]`, `-5`, `"NaN"`, `"Inf"`, `""`, `1e400`} {
		raw := `{"results":{"periodos":[{"periodo":"202501","entidades":[{"monto":` + v + `}]}]}}`
		got := bcra.FlattenBytes([]byte(raw))
		require.Len(t, got, 1, v)
		assert.Equal(t, 0.0, got[0].Amount, v)
	}
}

func TestFlatten_PeriodosOmitidos(t *testing.T) {
	raw := `{"results":{"periodos":[
		{"periodo":"202501"},
		{"periodo":"202502","entidades":"no-es-lista"},
		"escalar",
		{"periodo":"202503","entidades":[1, "x", null, {"entidad":"ok"}]}]}}`

	got := bcra.FlattenBytes([]byte(raw))
	require.Len(t, got, 1)
	assert.Equal(t, "2025-03", got[0].Period)
	assert.Equal(t, "ok", got[0].Entity)
}

func TestFlatten_SinResults(t *testing.T) {
	raw := `{"periodos":[{"periodo":"202501","entidades":[{"entidad":"A","monto":1}]}]}`
	got := bcra.FlattenBytes([]byte(raw))
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].Amount)
}

// Flatten es total: nunca entra en pánico y siempre devuelve una lista (posiblemente vacía).
func TestFlatten_Total(t *testing.T) {
	inputs := []string{
		``, `null`, `true`, `0`, `"texto"`, `[]`, `{}`, `[1,2,3]`,
		`{"results":null}`, `{"results":[]}`, `{"results":"x"}`,
		`{"results":{"periodos":null}}`, `{"results":{"periodos":{}}}`,
		`{"results":{"periodos":[null,1,"a",[]]}}`,
		`{"results":{"periodos":[{"entidades":[[],[[]]]}]}}`,
		`{"results":{"periodos":[{"periodo":{"a":1},"entidades":[{"entidad":{"x":[1]},"situacion":[1]}]}]}}`,
		`{"results":{`, `[[[[[[[[[[`, `{"a":}`, strings.Repeat("[", 10000),
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			got := bcra.FlattenBytes([]byte(in))
			assert.NotNil(t, got, in)
		}, in)
		assert.NotPanics(t, func() {
			assert.NotNil(t, bcra.Flatten(gjson.Parse(in)))
		}, in)
	}
}

func TestFlatten_SituacionSeConservaEnJSON(t *testing.T) {
	raw := `{"results":{"periodos":[{"periodo":"202501","entidades":[
		{"situacion":1},{"situacion":"2"},{},{"situacion":true}]}]}}`
	got := bcra.FlattenBytes([]byte(raw))
	require.Len(t, got, 4)

	out := make([]string, 0, len(got))
	for _, r := range got {
		b, err := json.Marshal(r.Status)
		require.NoError(t, err)
		out = append(out, string(b))
	}
	assert.Equal(t, []string{`1`, `"2"`, `null`, `true`}, out)
}

func TestParseReport(t *testing.T) {
	raw := `{"status":200,"results":{"identificacion":20281584503,"denominacion":"PEREZ JUAN",
		"periodos":[{"periodo":"202501","entidades":[{"entidad":"A","monto":1}]}]}}`
	rep := bcra.ParseReportBytes("20281584503", []byte(raw))
	assert.Equal(t, "20281584503", rep.CUIT)
	assert.Equal(t, "20281584503", rep.Identification)
	assert.Equal(t, "PEREZ JUAN", rep.Denomination)
	assert.Len(t, rep.Records, 1)

	empty := bcra.ParseReportBytes("20281584503", []byte("<html>"))
	assert.Empty(t, empty.Records)
	assert.Equal(t, "", empty.Denomination)
}

func TestNormalizePeriod(t *testing.T) {
	assert.Equal(t, "2025-07", bcra.NormalizePeriod("202507"))
	assert.Equal(t, "2025-07", bcra.NormalizePeriod(" 202507 "))
	assert.Equal(t, "2025-07", bcra.NormalizePeriod("2025-07"))
	assert.Equal(t, "abcdef", bcra.NormalizePeriod("abcdef"))
	assert.Equal(t, "", bcra.NormalizePeriod(""))
}
