// Package bootstrap arma el grafo de dependencias compartido por la API y el CLI.
package bootstrap

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/consultor-bcra/internal/application/consulta"
	"github.com/jhoicas/consultor-bcra/internal/domain/repository"
	infrabcra "github.com/jhoicas/consultor-bcra/internal/infrastructure/bcra"
	"github.com/jhoicas/consultor-bcra/internal/infrastructure/export"
	"github.com/jhoicas/consultor-bcra/internal/infrastructure/metrics"
	"github.com/jhoicas/consultor-bcra/internal/infrastructure/postgres"
	"github.com/jhoicas/consultor-bcra/pkg/config"
	"github.com/jhoicas/consultor-bcra/pkg/logger"
)

// MetricsNamespace prefijo de las métricas Prometheus.
const MetricsNamespace = "consultor_bcra"

// App dependencias construidas.
type App struct {
	Consulta *consulta.UseCase
	Metrics  *metrics.Metrics
	pool     *pgxpool.Pool
}

// New construye cliente BCRA (con caché), historial y caso de uso.
// Si la base está configurada pero no responde, se sigue sin historial.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}
	m := metrics.New(MetricsNamespace)
	client := infrabcra.NewCachedClient(
		infrabcra.NewClient(cfg.BCRA, log, m),
		cfg.Cache.Size, cfg.Cache.TTL, m,
	)

	app := &App{Metrics: m}
	var logs repository.QueryLogRepository = postgres.NopQueryLogRepo{}
	if cfg.DB.Enabled() {
		pool, err := postgres.Open(ctx, cfg.DB, log)
		if err != nil {
			log.Error().Err(err).Msg("PostgreSQL no disponible, historial deshabilitado")
		} else {
			app.pool = pool
			logs = postgres.NewQueryLogRepository(pool)
		}
	}

	app.Consulta = consulta.NewUseCase(client,
		consulta.WithQueryLog(logs),
		consulta.WithExporters(export.NewRegistry(cfg.Export.CSVLatin1)),
		consulta.WithMetrics(m),
		consulta.WithLogger(log),
		consulta.WithDefaultToken(cfg.BCRA.Token),
	)
	return app
}

// HistoryEnabled indica si las consultas se están guardando en PostgreSQL.
func (a *App) HistoryEnabled() bool { return a.pool != nil }

// Close libera el pool de conexiones.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
