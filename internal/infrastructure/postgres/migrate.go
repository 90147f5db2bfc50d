package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"
	"time"

	// driver "pgx" para database/sql (goose trabaja sobre *sql.DB).
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// goose guarda BaseFS y dialecto en variables globales.
var gooseMu sync.Mutex

const migrationLockTimeout = 30 * time.Second

// Migrate aplica con goose las migraciones embebidas que falten. Toma un advisory lock
// para que la API y el CLI no migren a la vez.
func Migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("abrir DB para migraciones: %w", err)
	}
	defer db.Close()

	connCtx, cancelConn := context.WithTimeout(ctx, pingTimeout)
	defer cancelConn()
	conn, err := db.Conn(connCtx)
	if err != nil {
		return fmt.Errorf("conexión para migraciones: %w", err)
	}
	defer conn.Close()

	lockCtx, cancel := context.WithTimeout(ctx, migrationLockTimeout)
	defer cancel()
	if _, err := conn.ExecContext(lockCtx, "SELECT pg_advisory_lock(hashtext('consultor-bcra'), hashtext('migrations'))"); err != nil {
		return fmt.Errorf("lock de migraciones: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.WithoutCancel(ctx), "SELECT pg_advisory_unlock(hashtext('consultor-bcra'), hashtext('migrations'))")
	}()

	return runMigrations(ctx, db)
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("dialecto goose: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
