package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/consultor-bcra/internal/application/consulta"
	"github.com/jhoicas/consultor-bcra/internal/bootstrap"
	"github.com/jhoicas/consultor-bcra/internal/interfaces/cli"
	"github.com/jhoicas/consultor-bcra/pkg/config"
	"github.com/jhoicas/consultor-bcra/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(func(ctx context.Context) (*consulta.UseCase, func(), error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		// stdout queda para la salida del comando
		log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
		app := bootstrap.New(ctx, cfg, log)
		return app.Consulta, app.Close, nil
	})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
