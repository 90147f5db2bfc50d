package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/consultor-bcra/internal/application/consulta"
	"github.com/jhoicas/consultor-bcra/internal/infrastructure/metrics"
	"github.com/jhoicas/consultor-bcra/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ConsultaUC  *consulta.UseCase
	Metrics     *metrics.Metrics
	Log         *logger.Logger
	ServiceName string
	RateLimit   int // requests por minuto y por IP en /api
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app.Use(RequestID())
	app.Use(AccessLog(log.Child("access")))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))

	api := app.Group("/api", RateLimit(deps.RateLimit))
	h := NewConsultaHandler(deps.ConsultaUC, log)

	api.Get("/cuit/:cuit/validacion", h.Validacion)

	deudas := api.Group("/deudas/:cuit")
	deudas.Get("/", h.Deudas)
	deudas.Get("/historicas", h.Historicas)
	deudas.Get("/cheques", h.Cheques)
	deudas.Get("/cheques/estadisticas", h.ChequesEstadisticas)
	deudas.Get("/export", h.Export)

	api.Get("/consultas", h.Historial)
}
