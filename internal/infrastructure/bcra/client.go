// Package bcra implementa el acceso HTTP a la Central de Deudores y a Estadísticas BCRA.
package bcra

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/jhoicas/consultor-bcra/internal/application/ports"
	"github.com/jhoicas/consultor-bcra/internal/domain"
	"github.com/jhoicas/consultor-bcra/internal/infrastructure/metrics"
	"github.com/jhoicas/consultor-bcra/pkg/config"
	"github.com/jhoicas/consultor-bcra/pkg/logger"
)

var _ ports.RegistryClient = (*Client)(nil)

// Endpoints (también usados como etiqueta de métricas y clave de caché).
const (
	EndpointDeudas              = "deudas"
	EndpointHistoricas          = "historicas"
	EndpointCheques             = "cheques"
	EndpointChequesEstadisticas = "cheques_estadisticas"
)

const (
	pathDeudas              = "/Deudas/{cuit}"
	pathHistoricas          = "/Deudas/Historicas/{cuit}"
	pathCheques             = "/Deudas/ChequesRechazados/{cuit}"
	pathChequesEstadisticas = "/cheques_rechazados_por_identificacion/{cuit}"

	retryWait    = 200 * time.Millisecond
	retryMaxWait = 2 * time.Second
	maxBodyLog   = 512
)

// Client cliente REST de la Central de Deudores.
type Client struct {
	central *resty.Client
	est     *resty.Client
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewClient construye el cliente. m puede ser nil.
func NewClient(cfg config.BCRAConfig, log *logger.Logger, m *metrics.Metrics) *Client {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Child("bcra")
	return &Client{
		central: buildHTTPClient(cfg, cfg.CentralBase, log),
		est:     buildHTTPClient(cfg, cfg.EstBase, log),
		log:     log,
		metrics: m,
	}
}

// buildHTTPClient configura timeout, reintentos y verificación TLS.
// Los proxies del entorno (HTTP_PROXY / HTTPS_PROXY) se respetan vía el transporte por defecto de resty.
func buildHTTPClient(cfg config.BCRAConfig, baseURL string, log *logger.Logger) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "consultor-bcra").
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(retryMaxWait).
		SetLogger(restyLogger{log: log})

	client.AddRetryCondition(retryCondition)

	if !cfg.VerifySSL {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // la cadena oficial del BCRA suele fallar
	}
	return client
}

// retryCondition reintenta ante errores de red, 5xx, 429 y 408.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

// Deudas GET /Deudas/{cuit}: último período informado.
func (c *Client) Deudas(ctx context.Context, cuit string) ([]byte, error) {
	return c.get(ctx, c.central, EndpointDeudas, pathDeudas, cuit, "")
}

// DeudasHistoricas GET /Deudas/Historicas/{cuit}: últimos 24 meses.
func (c *Client) DeudasHistoricas(ctx context.Context, cuit string) ([]byte, error) {
	return c.get(ctx, c.central, EndpointHistoricas, pathHistoricas, cuit, "")
}

// ChequesRechazados GET /Deudas/ChequesRechazados/{cuit}.
func (c *Client) ChequesRechazados(ctx context.Context, cuit string) ([]byte, error) {
	return c.get(ctx, c.central, EndpointCheques, pathCheques, cuit, "")
}

// ChequesEstadisticas consulta Estadísticas BCRA; requiere token Bearer.
func (c *Client) ChequesEstadisticas(ctx context.Context, cuit, token string) ([]byte, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: falta el token de Estadísticas BCRA", domain.ErrUnauthorized)
	}
	return c.get(ctx, c.est, EndpointChequesEstadisticas, pathChequesEstadisticas, cuit, token)
}

func (c *Client) get(ctx context.Context, client *resty.Client, endpoint, path, cuit, token string) ([]byte, error) {
	start := time.Now()
	req := client.R().
		SetContext(ctx).
		SetPathParam("cuit", cuit)
	if token != "" {
		req.SetAuthToken(token)
	}

	resp, err := req.Get(path)
	if err != nil {
		c.metrics.ObserveUpstream(endpoint, "error", time.Since(start))
		if ctx.Err() != nil {
			return nil, fmt.Errorf("bcra: %s: timeout o cancelación: %w", endpoint, ctx.Err())
		}
		if isTimeout(err) {
			c.log.Warn().Err(err).Str("endpoint", endpoint).Str("cuit", cuit).Msg("timeout de la Central")
			return nil, fmt.Errorf("bcra: %s: %w: %w", endpoint, context.DeadlineExceeded, err)
		}
		c.log.Warn().Err(err).Str("endpoint", endpoint).Str("cuit", cuit).Msg("request fallido")
		return nil, fmt.Errorf("%w: GET %s: %v", domain.ErrUpstream, endpoint, err)
	}

	status := resp.StatusCode()
	body := resp.Body()
	c.log.Debug().
		Str("endpoint", endpoint).
		Str("cuit", cuit).
		Int("status", status).
		Dur("elapsed", resp.Time()).
		Msg("respuesta de la Central")

	switch {
	case status == http.StatusNotFound:
		c.metrics.ObserveUpstream(endpoint, "not_found", time.Since(start))
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, upstreamMessage(body, "sin datos para la identificación"))
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		c.metrics.ObserveUpstream(endpoint, "unauthorized", time.Since(start))
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, upstreamMessage(body, http.StatusText(status)))
	case status == http.StatusBadRequest:
		c.metrics.ObserveUpstream(endpoint, "bad_request", time.Since(start))
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, upstreamMessage(body, "identificación rechazada por la Central"))
	case status < 200 || status > 299:
		c.metrics.ObserveUpstream(endpoint, "error", time.Since(start))
		c.log.Error().Str("endpoint", endpoint).Int("status", status).Str("body", truncate(string(body), maxBodyLog)).Msg("error HTTP de la Central")
		return nil, fmt.Errorf("%w: %s HTTP %d: %s", domain.ErrUpstream, endpoint, status, upstreamMessage(body, http.StatusText(status)))
	}

	if !gjson.ValidBytes(body) {
		c.metrics.ObserveUpstream(endpoint, "invalid_json", time.Since(start))
		return nil, fmt.Errorf("%w: JSON inválido desde %s", domain.ErrUpstream, endpoint)
	}
	c.metrics.ObserveUpstream(endpoint, "ok", time.Since(start))
	return body, nil
}

// isTimeout detecta el timeout propio del cliente HTTP (BCRA_TIMEOUT_SECONDS),
// que no pasa por el ctx del llamador.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// upstreamMessage extrae "errorMessages" de la respuesta de error de la Central.
func upstreamMessage(body []byte, fallback string) string {
	if !gjson.ValidBytes(body) {
		return fallback
	}
	msgs := gjson.GetBytes(body, "errorMessages")
	if !msgs.IsArray() {
		if m := gjson.GetBytes(body, "message"); m.Type == gjson.String && m.Str != "" {
			return m.Str
		}
		return fallback
	}
	parts := make([]string, 0)
	for _, m := range msgs.Array() {
		if s := strings.TrimSpace(m.String()); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, "; ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// restyLogger adapta el logger de la app a resty.Logger.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn().Msgf(strings.TrimSpace(format), v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug().Msgf(strings.TrimSpace(format), v...)
}
