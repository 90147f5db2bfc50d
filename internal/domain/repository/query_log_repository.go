package repository

import (
	"context"

	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

// QueryLogRepository puerto de persistencia del historial de consultas.
type QueryLogRepository interface {
	Create(ctx context.Context, log *entity.QueryLog) error
	ListRecent(ctx context.Context, limit int) ([]*entity.QueryLog, error)
	ListByCUIT(ctx context.Context, cuit string, limit int) ([]*entity.QueryLog, error)
}
