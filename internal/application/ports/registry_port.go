package ports

import "context"

// RegistryClient puerto de salida hacia la Central de Deudores del BCRA.
// Devuelve el JSON crudo; la normalización es responsabilidad del dominio.
// Errores esperados: domain.ErrNotFound (sin datos para la CUIT), domain.ErrUpstream,
// domain.ErrUnauthorized (token de Estadísticas inválido).
type RegistryClient interface {
	Deudas(ctx context.Context, cuit string) ([]byte, error)
	DeudasHistoricas(ctx context.Context, cuit string) ([]byte, error)
	ChequesRechazados(ctx context.Context, cuit string) ([]byte, error)
	ChequesEstadisticas(ctx context.Context, cuit, token string) ([]byte, error)
}
