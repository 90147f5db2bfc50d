package consulta_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consultor-bcra/internal/application/consulta"
	"github.com/jhoicas/consultor-bcra/internal/application/ports"
	"github.com/jhoicas/consultor-bcra/internal/domain"
	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

const validCUIT = "20281584503"

const deudasJSON = `{"status":200,"results":{"identificacion":20281584503,"denominacion":"PEREZ JUAN",
"periodos":[{"periodo":"202403","entidades":[
  {"entidad":"BANCO A","situacion":1,"monto":1500.0},
  {"entidad":"BANCO B","situacion":2,"monto":500}]}]}}`

const historicasJSON = `{"results":{"denominacion":"PEREZ JUAN","periodos":[
  {"periodo":"202403","entidades":[{"entidad":"BANCO A","situacion":1,"monto":1500},{"entidad":"BANCO B","situacion":1,"monto":500}]},
  {"periodo":"202402","entidades":[{"entidad":"BANCO A","situacion":1,"monto":1000}]}]}}`

const chequesJSON = `{"results":{"causales":[{"causal":"SIN FONDOS","entidades":[{"entidad":11,"detalle":[
  {"nroCheque":123,"fechaRechazo":"2024-03-01","monto":1000},
  {"nroCheque":124,"fechaRechazo":"2020-01-01","monto":50}]}]}]}}`

// fakeRegistry responde lo configurado por endpoint y registra las llamadas.
type fakeRegistry struct {
	bodies map[string]string
	err    error
	calls  []string
	token  string
}

func (f *fakeRegistry) respond(endpoint string) ([]byte, error) {
	f.calls = append(f.calls, endpoint)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.bodies[endpoint]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return []byte(body), nil
}

func (f *fakeRegistry) Deudas(context.Context, string) ([]byte, error) { return f.respond("deudas") }
func (f *fakeRegistry) DeudasHistoricas(context.Context, string) ([]byte, error) {
	return f.respond("historicas")
}
func (f *fakeRegistry) ChequesRechazados(context.Context, string) ([]byte, error) {
	return f.respond("cheques")
}
func (f *fakeRegistry) ChequesEstadisticas(_ context.Context, _ string, token string) ([]byte, error) {
	f.token = token
	return f.respond("cheques_estadisticas")
}

type fakeQueryLog struct {
	created []*entity.QueryLog
	err     error
}

func (r *fakeQueryLog) Create(_ context.Context, q *entity.QueryLog) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, q)
	return nil
}

func (r *fakeQueryLog) ListRecent(_ context.Context, limit int) ([]*entity.QueryLog, error) {
	if len(r.created) > limit {
		return r.created[:limit], nil
	}
	return r.created, nil
}

func (r *fakeQueryLog) ListByCUIT(_ context.Context, c string, _ int) ([]*entity.QueryLog, error) {
	var out []*entity.QueryLog
	for _, q := range r.created {
		if q.CUIT == c {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeMetrics map[string]int

func (m fakeMetrics) Query(source, outcome string) { m[source+"/"+outcome]++ }

type fakeExporter struct{ format string }

func (e fakeExporter) Format() string      { return e.format }
func (e fakeExporter) ContentType() string { return "text/" + e.format }
func (e fakeExporter) Export(_ context.Context, r entity.DebtReport, totals []entity.PeriodTotal) ([]byte, error) {
	return []byte(fmt.Sprintf("%s:%d:%d", r.CUIT, len(r.Records), len(totals))), nil
}

type fakeExporters map[string]ports.ReportExporter

func (f fakeExporters) Get(format string) (ports.ReportExporter, bool) {
	e, ok := f[format]
	return e, ok
}

func newUseCase(reg *fakeRegistry, opts ...consulta.Option) *consulta.UseCase {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return consulta.NewUseCase(reg, append([]consulta.Option{consulta.WithClock(func() time.Time { return now })}, opts...)...)
}

func TestDeudas(t *testing.T) {
	reg := &fakeRegistry{bodies: map[string]string{"deudas": deudasJSON}}
	logs := &fakeQueryLog{}
	m := fakeMetrics{}
	uc := newUseCase(reg, consulta.WithQueryLog(logs), consulta.WithMetrics(m))

	out, err := uc.Deudas(context.Background(), "20-28158450-3")
	require.NoError(t, err)

	assert.Equal(t, validCUIT, out.CUIT)
	assert.Equal(t, "PEREZ JUAN", out.Denomination)
	require.Len(t, out.Records, 2)
	assert.Equal(t, "2024-03", out.Records[0].Period)
	assert.Equal(t, "BANCO A", out.Records[0].Entity)
	assert.Equal(t, "2024-03", out.LatestPeriod)
	assert.True(t, decimal.NewFromInt(2000).Equal(out.LatestTotal))
	assert.Equal(t, "$2", out.LatestTotalText)

	require.Len(t, logs.created, 1)
	assert.Equal(t, entity.SourceDeudas, logs.created[0].Source)
	assert.Equal(t, 2, logs.created[0].Records)
	assert.NotEmpty(t, logs.created[0].ID)
	assert.Equal(t, 1, m["deudas/ok"])
}

func TestDeudas_CUITInvalidaNoConsulta(t *testing.T) {
	reg := &fakeRegistry{}
	m := fakeMetrics{}
	uc := newUseCase(reg, consulta.WithMetrics(m))

	for _, in := range []string{"", "20329889091", "2028158450", "abcdefghijk"} {
		_, err := uc.Deudas(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidCUIT, in)
	}
	assert.Empty(t, reg.calls)
	assert.Equal(t, 4, m["deudas/invalid"])
}

func TestDeudas_ErrorDelRegistro(t *testing.T) {
	reg := &fakeRegistry{err: fmt.Errorf("%w: status 503", domain.ErrUpstream)}
	logs := &fakeQueryLog{}
	m := fakeMetrics{}
	uc := newUseCase(reg, consulta.WithQueryLog(logs), consulta.WithMetrics(m))

	_, err := uc.Deudas(context.Background(), validCUIT)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Empty(t, logs.created)
	assert.Equal(t, 1, m["deudas/error"])

	reg.err = domain.ErrNotFound
	_, err = uc.Deudas(context.Background(), validCUIT)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, m["deudas/not_found"])
}

func TestDeudas_FallaDelHistorialNoAfecta(t *testing.T) {
	reg := &fakeRegistry{bodies: map[string]string{"deudas": deudasJSON}}
	uc := newUseCase(reg, consulta.WithQueryLog(&fakeQueryLog{err: errors.New("db caída")}))

	out, err := uc.Deudas(context.Background(), validCUIT)
	require.NoError(t, err)
	assert.Len(t, out.Records, 2)
}

func TestHistoricas(t *testing.T) {
	reg := &fakeRegistry{bodies: map[string]string{"historicas": historicasJSON}}
	uc := newUseCase(reg)

	out, err := uc.Historicas(context.Background(), validCUIT)
	require.NoError(t, err)

	assert.Len(t, out.Records, 3)
	assert.True(t, out.MultiPeriod)
	assert.Equal(t, "2024-03", out.LatestPeriod)
	require.Len(t, out.Series, 2)
	assert.Equal(t, "2024-02", out.Series[0].Period)
	assert.True(t, decimal.NewFromInt(2000).Equal(out.Series[1].Amount))
	assert.True(t, decimal.NewFromInt(2).Equal(out.Series[1].AmountThousands))
	require.Len(t, out.TopEntities, 2)
	assert.Equal(t, "BANCO A", out.TopEntities[0].Entity)
}

func TestCheques(t *testing.T) {
	reg := &fakeRegistry{bodies: map[string]string{"cheques": chequesJSON}}
	uc := newUseCase(reg)

	out, err := uc.Cheques(context.Background(), validCUIT, 0)
	require.NoError(t, err)
	assert.Equal(t, consulta.DefaultMonths, out.Months)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "123", out.Checks[0].Number)
	assert.Equal(t, "2024-03-01", out.Checks[0].RejectionDate)
	assert.Equal(t, "SIN FONDOS", out.Checks[0].Causal)
	assert.Equal(t, "11", out.Checks[0].Entity)

	out, err = uc.Cheques(context.Background(), validCUIT, 1000)
	require.NoError(t, err)
	assert.Equal(t, consulta.MaxMonths, out.Months)
	assert.Equal(t, 2, out.Count)
	assert.True(t, decimal.NewFromInt(1050).Equal(out.TotalAmount))
}

func TestChequesEstadisticas_Token(t *testing.T) {
	reg := &fakeRegistry{bodies: map[string]string{"cheques_estadisticas": `[{"fecha":"2024-01-10","monto":10}]`}}

	_, err := newUseCase(reg).ChequesEstadisticas(context.Background(), validCUIT, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, reg.calls)

	out, err := newUseCase(reg, consulta.WithDefaultToken("cfg")).ChequesEstadisticas(context.Background(), validCUIT, "")
	require.NoError(t, err)
	assert.Equal(t, "cfg", reg.token)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, entity.SourceChequesEstadisticas, out.Source)

	_, err = newUseCase(reg, consulta.WithDefaultToken("cfg")).ChequesEstadisticas(context.Background(), validCUIT, "propio")
	require.NoError(t, err)
	assert.Equal(t, "propio", reg.token)
}

func TestExport(t *testing.T) {
	reg := &fakeRegistry{bodies: map[string]string{"historicas": historicasJSON, "deudas": deudasJSON}}
	uc := newUseCase(reg, consulta.WithExporters(fakeExporters{"csv": fakeExporter{format: "csv"}}))

	f, err := uc.Export(context.Background(), validCUIT, "", "csv")
	require.NoError(t, err)
	assert.Equal(t, "deudas_historicas_20281584503.csv", f.Filename)
	assert.Equal(t, "text/csv", f.ContentType)
	assert.Equal(t, "20281584503:3:2", string(f.Content))

	f, err = uc.Export(context.Background(), validCUIT, "deudas", "csv")
	require.NoError(t, err)
	assert.Equal(t, "deudas_20281584503.csv", f.Filename)

	_, err = uc.Export(context.Background(), validCUIT, "cheques", "csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Export(context.Background(), validCUIT, "deudas", "docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidar(t *testing.T) {
	uc := newUseCase(&fakeRegistry{})

	ok := uc.Validar("20-28158450-3")
	assert.True(t, ok.Valid)
	assert.Equal(t, validCUIT, ok.CUIT)
	assert.Equal(t, "20-28158450-3", ok.Formatted)
	assert.Nil(t, ok.ExpectedDigit)

	bad := uc.Validar("20329889091")
	assert.False(t, bad.Valid)
	require.NotNil(t, bad.ExpectedDigit)
	assert.Equal(t, 3, *bad.ExpectedDigit)

	short := uc.Validar("123")
	assert.False(t, short.Valid)
	assert.Nil(t, short.ExpectedDigit)
}

func TestHistorial(t *testing.T) {
	reg := &fakeRegistry{bodies: map[string]string{"deudas": deudasJSON}}
	logs := &fakeQueryLog{}
	uc := newUseCase(reg, consulta.WithQueryLog(logs))

	_, err := uc.Deudas(context.Background(), validCUIT)
	require.NoError(t, err)

	out, err := uc.Historial(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, consulta.DefaultHistLimit, out.Page.Limit)
	require.Len(t, out.Items, 1)
	assert.Equal(t, validCUIT, out.Items[0].CUIT)

	out, err = uc.Historial(context.Background(), "20329889093", 500)
	require.NoError(t, err)
	assert.Equal(t, consulta.MaxHistLimit, out.Page.Limit)
	assert.Empty(t, out.Items)

	_, err = uc.Historial(context.Background(), "123", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidCUIT)

	empty, err := newUseCase(reg).Historial(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}
