package bcra_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consultor-bcra/internal/domain"
	infrabcra "github.com/jhoicas/consultor-bcra/internal/infrastructure/bcra"
)

// countingClient cuenta llamadas por endpoint.
type countingClient struct {
	calls map[string]int
	err   error
}

func (c *countingClient) hit(endpoint string) ([]byte, error) {
	c.calls[endpoint]++
	if c.err != nil {
		return nil, c.err
	}
	return []byte(`{"endpoint":"` + endpoint + `"}`), nil
}

func (c *countingClient) Deudas(context.Context, string) ([]byte, error) { return c.hit("deudas") }
func (c *countingClient) DeudasHistoricas(context.Context, string) ([]byte, error) {
	return c.hit("historicas")
}
func (c *countingClient) ChequesRechazados(context.Context, string) ([]byte, error) {
	return c.hit("cheques")
}
func (c *countingClient) ChequesEstadisticas(context.Context, string, string) ([]byte, error) {
	return c.hit("est")
}

func TestCachedClient_GuardaRespuestasExitosas(t *testing.T) {
	next := &countingClient{calls: map[string]int{}}
	c := infrabcra.NewCachedClient(next, 10, time.Minute, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		body, err := c.Deudas(ctx, testCUIT)
		require.NoError(t, err)
		assert.Equal(t, `{"endpoint":"deudas"}`, string(body))
	}
	_, _ = c.DeudasHistoricas(ctx, testCUIT)
	_, _ = c.DeudasHistoricas(ctx, "20329889093")
	_, _ = c.ChequesEstadisticas(ctx, testCUIT, "t")
	_, _ = c.ChequesEstadisticas(ctx, testCUIT, "t")

	assert.Equal(t, 1, next.calls["deudas"])
	assert.Equal(t, 2, next.calls["historicas"])
	assert.Equal(t, 2, next.calls["est"], "Estadísticas no se cachea")
}

func TestCachedClient_NoGuardaErrores(t *testing.T) {
	next := &countingClient{calls: map[string]int{}, err: domain.ErrNotFound}
	c := infrabcra.NewCachedClient(next, 10, time.Minute, nil)

	for i := 0; i < 2; i++ {
		_, err := c.ChequesRechazados(context.Background(), testCUIT)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	}
	assert.Equal(t, 2, next.calls["cheques"])
}

func TestCachedClient_Deshabilitada(t *testing.T) {
	next := &countingClient{calls: map[string]int{}}
	c := infrabcra.NewCachedClient(next, 0, time.Minute, nil)
	assert.Same(t, next, c)
}
