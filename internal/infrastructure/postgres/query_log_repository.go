package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
	"github.com/jhoicas/consultor-bcra/internal/domain/repository"
)

var _ repository.QueryLogRepository = (*QueryLogRepo)(nil)

const (
	queryLogColumns = `id, cuit, fuente, denominacion, registros, total, created_at`
	// total como texto: se convierte a decimal sin pasar por float.
	queryLogSelect = `id, cuit, fuente, denominacion, registros, total::text, created_at`
)

// QueryLogRepo implementación del puerto QueryLogRepository sobre PostgreSQL.
type QueryLogRepo struct {
	db Querier
}

// NewQueryLogRepository construye el adaptador; db suele ser el *pgxpool.Pool.
func NewQueryLogRepository(db Querier) *QueryLogRepo {
	return &QueryLogRepo{db: db}
}

// Create persiste una consulta.
func (r *QueryLogRepo) Create(ctx context.Context, q *entity.QueryLog) error {
	query := `
		INSERT INTO consultas (` + queryLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		q.ID, q.CUIT, q.Source, q.Denomination, q.Records, q.Total, q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consulta: %w", err)
	}
	return nil
}

// ListRecent últimas consultas, más recientes primero.
func (r *QueryLogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.QueryLog, error) {
	query := `
		SELECT ` + queryLogSelect + `
		FROM consultas ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list consultas: %w", err)
	}
	return scanQueryLogs(rows)
}

// ListByCUIT últimas consultas de una CUIT.
func (r *QueryLogRepo) ListByCUIT(ctx context.Context, cuit string, limit int) ([]*entity.QueryLog, error) {
	query := `
		SELECT ` + queryLogSelect + `
		FROM consultas WHERE cuit = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.Query(ctx, query, cuit, limit)
	if err != nil {
		return nil, fmt.Errorf("list consultas por cuit: %w", err)
	}
	return scanQueryLogs(rows)
}

func scanQueryLogs(rows pgx.Rows) ([]*entity.QueryLog, error) {
	defer rows.Close()
	var list []*entity.QueryLog
	for rows.Next() {
		var (
			q     entity.QueryLog
			total string
		)
		if err := rows.Scan(&q.ID, &q.CUIT, &q.Source, &q.Denomination, &q.Records, &total, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consulta: %w", err)
		}
		t, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("total de consulta %s: %w", q.ID, err)
		}
		q.Total = t
		list = append(list, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar consultas: %w", err)
	}
	return list, nil
}

// NopQueryLogRepo descarta el historial cuando no hay base configurada.
type NopQueryLogRepo struct{}

var _ repository.QueryLogRepository = NopQueryLogRepo{}

func (NopQueryLogRepo) Create(context.Context, *entity.QueryLog) error { return nil }

func (NopQueryLogRepo) ListRecent(context.Context, int) ([]*entity.QueryLog, error) {
	return nil, nil
}

func (NopQueryLogRepo) ListByCUIT(context.Context, string, int) ([]*entity.QueryLog, error) {
	return nil, nil
}
