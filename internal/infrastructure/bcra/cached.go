package bcra

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jhoicas/consultor-bcra/internal/application/ports"
	"github.com/jhoicas/consultor-bcra/internal/infrastructure/metrics"
)

var _ ports.RegistryClient = (*CachedClient)(nil)

// CachedClient decora un RegistryClient con una caché LRU con vencimiento.
// Solo se guardan respuestas exitosas; Estadísticas BCRA (con token) no se cachea.
type CachedClient struct {
	next    ports.RegistryClient
	cache   *expirable.LRU[string, []byte]
	metrics *metrics.Metrics
}

// NewCachedClient construye el decorador. size <= 0 o ttl <= 0 deshabilitan la caché.
func NewCachedClient(next ports.RegistryClient, size int, ttl time.Duration, m *metrics.Metrics) ports.RegistryClient {
	if size <= 0 || ttl <= 0 {
		return next
	}
	return &CachedClient{
		next:    next,
		cache:   expirable.NewLRU[string, []byte](size, nil, ttl),
		metrics: m,
	}
}

func (c *CachedClient) Deudas(ctx context.Context, cuit string) ([]byte, error) {
	return c.cached(EndpointDeudas, cuit, func() ([]byte, error) { return c.next.Deudas(ctx, cuit) })
}

func (c *CachedClient) DeudasHistoricas(ctx context.Context, cuit string) ([]byte, error) {
	return c.cached(EndpointHistoricas, cuit, func() ([]byte, error) { return c.next.DeudasHistoricas(ctx, cuit) })
}

func (c *CachedClient) ChequesRechazados(ctx context.Context, cuit string) ([]byte, error) {
	return c.cached(EndpointCheques, cuit, func() ([]byte, error) { return c.next.ChequesRechazados(ctx, cuit) })
}

func (c *CachedClient) ChequesEstadisticas(ctx context.Context, cuit, token string) ([]byte, error) {
	return c.next.ChequesEstadisticas(ctx, cuit, token)
}

func (c *CachedClient) cached(endpoint, cuit string, fetch func() ([]byte, error)) ([]byte, error) {
	key := endpoint + ":" + cuit
	if body, ok := c.cache.Get(key); ok {
		c.metrics.CacheLookup(endpoint, true)
		return body, nil
	}
	c.metrics.CacheLookup(endpoint, false)
	body, err := fetch()
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, body)
	return body, nil
}
