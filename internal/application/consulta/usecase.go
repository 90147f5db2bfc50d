// Package consulta orquesta las consultas a la Central de Deudores: validación de la CUIT,
// llamada al registro, normalización, agregados, exportación e historial.
package consulta

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/consultor-bcra/internal/application/dto"
	"github.com/jhoicas/consultor-bcra/internal/application/ports"
	"github.com/jhoicas/consultor-bcra/internal/domain"
	"github.com/jhoicas/consultor-bcra/internal/domain/bcra"
	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
	"github.com/jhoicas/consultor-bcra/internal/domain/repository"
	"github.com/jhoicas/consultor-bcra/pkg/cuit"
	"github.com/jhoicas/consultor-bcra/pkg/logger"
	"github.com/jhoicas/consultor-bcra/pkg/money"
)

const (
	DefaultMonths = 12
	MaxMonths     = 120
	// TopEntitiesN cantidad de entidades del gráfico de torta; el resto va a "Otros".
	TopEntitiesN     = 10
	DefaultHistLimit = 20
	MaxHistLimit     = 100
)

// Resultados para métricas.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

// UseCase casos de uso de consulta.
type UseCase struct {
	client    ports.RegistryClient
	logs      repository.QueryLogRepository
	exporters ports.ExporterProvider
	metrics   ports.QueryMetrics
	log       *logger.Logger
	token     string
	now       func() time.Time
}

// Option configura el caso de uso.
type Option func(*UseCase)

// WithQueryLog persiste cada consulta exitosa.
func WithQueryLog(repo repository.QueryLogRepository) Option {
	return func(uc *UseCase) { uc.logs = repo }
}

// WithExporters habilita Export.
func WithExporters(p ports.ExporterProvider) Option {
	return func(uc *UseCase) { uc.exporters = p }
}

// WithMetrics cuenta consultas por fuente y resultado.
func WithMetrics(m ports.QueryMetrics) Option {
	return func(uc *UseCase) { uc.metrics = m }
}

// WithLogger logger estructurado.
func WithLogger(l *logger.Logger) Option {
	return func(uc *UseCase) { uc.log = l }
}

// WithDefaultToken token de Estadísticas BCRA usado cuando el llamador no envía uno.
func WithDefaultToken(token string) Option {
	return func(uc *UseCase) { uc.token = token }
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// NewUseCase construye el caso de uso.
func NewUseCase(client ports.RegistryClient, opts ...Option) *UseCase {
	uc := &UseCase{client: client, now: time.Now}
	for _, o := range opts {
		o(uc)
	}
	if uc.log == nil {
		uc.log = logger.Nop()
	}
	uc.log = uc.log.Child("consulta")
	return uc
}

// Deudas consulta la situación actual (último período informado).
func (uc *UseCase) Deudas(ctx context.Context, input string) (*dto.DeudasDTO, error) {
	report, err := uc.fetchReport(ctx, input, entity.SourceDeudas)
	if err != nil {
		return nil, err
	}
	latest := bcra.LatestPeriod(report.Records)
	total := bcra.TotalAmount(bcra.FilterPeriod(report.Records, latest))
	uc.record(ctx, entity.SourceDeudas, report.CUIT, report.Denomination, len(report.Records), total)

	return &dto.DeudasDTO{
		CUIT:            report.CUIT,
		Identification:  report.Identification,
		Denomination:    report.Denomination,
		Records:         toRecordDTOs(report.Records),
		LatestPeriod:    latest,
		LatestTotal:     total,
		LatestTotalText: money.Thousands(total),
	}, nil
}

// Historicas consulta los últimos 24 meses y arma las series para gráficos.
func (uc *UseCase) Historicas(ctx context.Context, input string) (*dto.HistoricasDTO, error) {
	report, err := uc.fetchReport(ctx, input, entity.SourceHistoricas)
	if err != nil {
		return nil, err
	}
	latest := bcra.LatestPeriod(report.Records)
	uc.record(ctx, entity.SourceHistoricas, report.CUIT, report.Denomination, len(report.Records), bcra.TotalAmount(report.Records))

	totals := bcra.TotalsByPeriod(report.Records)
	series := make([]dto.PeriodTotalDTO, 0, len(totals))
	for _, t := range totals {
		series = append(series, dto.PeriodTotalDTO{Period: t.Period, Amount: t.Amount, AmountThousands: t.AmountThousands})
	}
	top := bcra.TopEntities(bcra.FilterPeriod(report.Records, latest), TopEntitiesN)
	tops := make([]dto.EntityTotalDTO, 0, len(top))
	for _, e := range top {
		tops = append(tops, dto.EntityTotalDTO{Entity: e.Entity, Amount: e.Amount})
	}

	return &dto.HistoricasDTO{
		CUIT:         report.CUIT,
		Denomination: report.Denomination,
		Records:      toRecordDTOs(report.Records),
		Series:       series,
		TopEntities:  tops,
		LatestPeriod: latest,
		MultiPeriod:  bcra.DistinctPeriods(report.Records) > 1,
	}, nil
}

// Cheques consulta los cheques rechazados de los últimos meses (por defecto 12, máximo 120).
func (uc *UseCase) Cheques(ctx context.Context, input string, months int) (*dto.ChequesDTO, error) {
	c, err := uc.validCUIT(input, entity.SourceCheques)
	if err != nil {
		return nil, err
	}
	if months <= 0 {
		months = DefaultMonths
	}
	if months > MaxMonths {
		months = MaxMonths
	}
	raw, err := uc.client.ChequesRechazados(ctx, c)
	if err != nil {
		uc.count(entity.SourceCheques, err)
		return nil, err
	}
	checks := bcra.FlattenChequesBytes(raw, bcra.CutoffMonths(uc.now(), months))
	out := toChequesDTO(c, entity.SourceCheques, checks)
	out.Months = months
	uc.record(ctx, entity.SourceCheques, c, "", out.Count, out.TotalAmount)
	return out, nil
}

// ChequesEstadisticas consulta el servicio de Estadísticas BCRA. Requiere token propio
// o el configurado por defecto.
func (uc *UseCase) ChequesEstadisticas(ctx context.Context, input, token string) (*dto.ChequesDTO, error) {
	c, err := uc.validCUIT(input, entity.SourceChequesEstadisticas)
	if err != nil {
		return nil, err
	}
	token = strings.TrimSpace(token)
	if token == "" {
		token = uc.token
	}
	if token == "" {
		uc.count(entity.SourceChequesEstadisticas, domain.ErrInvalidInput)
		return nil, fmt.Errorf("%w: falta el token de Estadísticas BCRA", domain.ErrInvalidInput)
	}
	raw, err := uc.client.ChequesEstadisticas(ctx, c, token)
	if err != nil {
		uc.count(entity.SourceChequesEstadisticas, err)
		return nil, err
	}
	out := toChequesDTO(c, entity.SourceChequesEstadisticas, bcra.FlattenChequesBytes(raw, time.Time{}))
	uc.record(ctx, entity.SourceChequesEstadisticas, c, "", out.Count, out.TotalAmount)
	return out, nil
}

// Export genera el archivo de una consulta de deudas. source: deudas | historicas;
// format: csv | xlsx | pdf.
func (uc *UseCase) Export(ctx context.Context, input, source, format string) (*dto.ExportFile, error) {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		source = entity.SourceHistoricas
	}
	if source != entity.SourceDeudas && source != entity.SourceHistoricas {
		return nil, fmt.Errorf("%w: fuente %q no exportable", domain.ErrInvalidInput, source)
	}
	if uc.exporters == nil {
		return nil, fmt.Errorf("%w: exportación no disponible", domain.ErrInvalidInput)
	}
	exporter, ok := uc.exporters.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}

	report, err := uc.fetchReport(ctx, input, source)
	if err != nil {
		return nil, err
	}
	uc.record(ctx, source, report.CUIT, report.Denomination, len(report.Records), bcra.TotalAmount(report.Records))

	content, err := exporter.Export(ctx, report, bcra.TotalsByPeriod(report.Records))
	if err != nil {
		uc.log.Error().Err(err).Str("cuit", report.CUIT).Str("format", exporter.Format()).Msg("error al exportar")
		return nil, fmt.Errorf("exportar %s: %w", exporter.Format(), err)
	}
	return &dto.ExportFile{
		Filename:    ExportFilename(source, report.CUIT, exporter.Format()),
		ContentType: exporter.ContentType(),
		Content:     content,
	}, nil
}

// ExportFilename deudas_{cuit}.csv o deudas_historicas_{cuit}.csv.
func ExportFilename(source, c, ext string) string {
	prefix := "deudas"
	if source == entity.SourceHistoricas {
		prefix = "deudas_historicas"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, c, ext)
}

// Validar informa si la CUIT es válida sin consultar la Central.
func (uc *UseCase) Validar(input string) dto.ValidacionDTO {
	c := cuit.Normalize(input)
	out := dto.ValidacionDTO{Input: input, CUIT: c, Valid: cuit.IsValid(c)}
	if out.Valid {
		out.Formatted = cuit.Format(c)
		out.Kind = cuit.Kind(c)
		return out
	}
	if len(c) == cuit.Length {
		if d, err := cuit.CheckDigit(c[:cuit.Length-1]); err == nil {
			out.ExpectedDigit = &d
		}
	}
	return out
}

// Historial devuelve las últimas consultas; con CUIT filtra por ella.
func (uc *UseCase) Historial(ctx context.Context, input string, limit int) (*dto.QueryLogListResponse, error) {
	if limit <= 0 {
		limit = DefaultHistLimit
	}
	if limit > MaxHistLimit {
		limit = MaxHistLimit
	}
	out := &dto.QueryLogListResponse{Items: []dto.QueryLogDTO{}, Page: dto.PageResponse{Limit: limit}}
	if uc.logs == nil {
		return out, nil
	}

	var (
		list []*entity.QueryLog
		err  error
	)
	if strings.TrimSpace(input) != "" {
		c := cuit.Normalize(input)
		if !cuit.IsValid(c) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCUIT, input)
		}
		list, err = uc.logs.ListByCUIT(ctx, c, limit)
	} else {
		list, err = uc.logs.ListRecent(ctx, limit)
	}
	if err != nil {
		return nil, err
	}
	for _, q := range list {
		out.Items = append(out.Items, dto.QueryLogDTO{
			ID:           q.ID,
			CUIT:         q.CUIT,
			Source:       q.Source,
			Denomination: q.Denomination,
			Records:      q.Records,
			Total:        q.Total,
			CreatedAt:    q.CreatedAt,
		})
	}
	out.Page.Total = len(out.Items)
	return out, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *UseCase) validCUIT(input, source string) (string, error) {
	c := cuit.Normalize(input)
	if !cuit.IsValid(c) {
		uc.count(source, domain.ErrInvalidCUIT)
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidCUIT, input)
	}
	return c, nil
}

func (uc *UseCase) fetchReport(ctx context.Context, input, source string) (entity.DebtReport, error) {
	c, err := uc.validCUIT(input, source)
	if err != nil {
		return entity.DebtReport{}, err
	}
	var raw []byte
	if source == entity.SourceHistoricas {
		raw, err = uc.client.DeudasHistoricas(ctx, c)
	} else {
		raw, err = uc.client.Deudas(ctx, c)
	}
	if err != nil {
		uc.count(source, err)
		uc.log.Warn().Err(err).Str("cuit", c).Str("source", source).Msg("consulta fallida")
		return entity.DebtReport{}, err
	}
	return bcra.ParseReportBytes(c, raw), nil
}

// record registra la consulta exitosa. Un error del historial no afecta la respuesta.
func (uc *UseCase) record(ctx context.Context, source, c, denomination string, records int, total decimal.Decimal) {
	uc.count(source, nil)
	if uc.logs == nil {
		return
	}
	q := &entity.QueryLog{
		ID:           uuid.New().String(),
		CUIT:         c,
		Source:       source,
		Denomination: denomination,
		Records:      records,
		Total:        total,
		CreatedAt:    uc.now(),
	}
	if err := uc.logs.Create(ctx, q); err != nil {
		uc.log.Warn().Err(err).Str("cuit", c).Str("source", source).Msg("no se pudo guardar el historial")
	}
}

func (uc *UseCase) count(source string, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.Query(source, outcome(err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, domain.ErrNotFound):
		return outcomeNotFound
	case errors.Is(err, domain.ErrInvalidCUIT), errors.Is(err, domain.ErrInvalidInput):
		return outcomeInvalid
	default:
		return outcomeError
	}
}
