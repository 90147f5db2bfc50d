package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/consultor-bcra/internal/bootstrap"
	httpRouter "github.com/jhoicas/consultor-bcra/internal/interfaces/http"
	"github.com/jhoicas/consultor-bcra/pkg/config"
	"github.com/jhoicas/consultor-bcra/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("central", cfg.BCRA.CentralBase).
		Bool("verify_ssl", cfg.BCRA.VerifySSL).
		Msg("iniciando aplicación")

	ctx := context.Background()
	deps := bootstrap.New(ctx, cfg, log)
	defer deps.Close()

	// El upstream tiene timeout propio (BCRA_TIMEOUT_SECONDS) y reintentos; el write timeout lo cubre.
	writeTimeout := cfg.BCRA.Timeout*time.Duration(cfg.BCRA.Retries+1) + 5*time.Second

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: writeTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Consultor BCRA API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ConsultaUC:  deps.Consulta,
		Metrics:     deps.Metrics,
		Log:         log,
		ServiceName: cfg.App.Name,
		RateLimit:   cfg.HTTP.RateLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
