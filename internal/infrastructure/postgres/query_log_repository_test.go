package postgres

import (
	"context"
	"errors"
	"io/fs"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consultor-bcra/internal/domain"
	"github.com/jhoicas/consultor-bcra/internal/domain/entity"
)

var logColumns = []string{"id", "cuit", "fuente", "denominacion", "registros", "total", "created_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestQueryLogRepo_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewQueryLogRepository(mock)
	q := &entity.QueryLog{
		ID: "5f0c6c1e-0000-4000-8000-000000000001", CUIT: "20281584503", Source: entity.SourceDeudas,
		Denomination: "PEREZ JUAN", Records: 2, Total: decimal.NewFromInt(2000), CreatedAt: time.Now(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO consultas")).
		WithArgs(q.ID, q.CUIT, q.Source, q.Denomination, q.Records, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), q))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryLogRepo_Create_Errores(t *testing.T) {
	mock := newMock(t)
	repo := NewQueryLogRepository(mock)
	q := &entity.QueryLog{ID: "5f0c6c1e-0000-4000-8000-000000000002", CUIT: "20281584503", Source: entity.SourceDeudas}

	// cualquier fallo del insert es un error de infraestructura, nunca de entrada
	pgErr := &pgconn.PgError{Code: "23505"}
	mock.ExpectExec("INSERT INTO consultas").WillReturnError(pgErr)
	err := repo.Create(context.Background(), q)
	require.Error(t, err)
	assert.ErrorIs(t, err, pgErr)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)

	mock.ExpectExec("INSERT INTO consultas").WillReturnError(errors.New("conexión cerrada"))
	err = repo.Create(context.Background(), q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert consulta")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryLogRepo_ListRecent(t *testing.T) {
	mock := newMock(t)
	repo := NewQueryLogRepository(mock)
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(logColumns).
		AddRow("a", "20281584503", "deudas", "PEREZ JUAN", 2, "2000.50", at).
		AddRow("b", "30500010912", "historicas", "", 0, "0", at.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("FROM consultas ORDER BY created_at DESC LIMIT $1")).
		WithArgs(20).
		WillReturnRows(rows)

	list, err := repo.ListRecent(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, 2, list[0].Records)
	assert.True(t, decimal.RequireFromString("2000.50").Equal(list[0].Total))
	assert.Equal(t, at, list[0].CreatedAt)
	assert.Equal(t, "historicas", list[1].Source)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryLogRepo_ListByCUIT(t *testing.T) {
	mock := newMock(t)
	repo := NewQueryLogRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE cuit = $1")).
		WithArgs("20281584503", 5).
		WillReturnRows(pgxmock.NewRows(logColumns))

	list, err := repo.ListByCUIT(context.Background(), "20281584503", 5)
	require.NoError(t, err)
	assert.Empty(t, list)

	mock.ExpectQuery("WHERE cuit").WillReturnError(errors.New("timeout"))
	_, err = repo.ListByCUIT(context.Background(), "20281584503", 5)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigraciones_AnotadasParaGoose(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)
	for _, name := range names {
		script, err := migrationsFS.ReadFile(name)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(script), "-- +goose Up"), name)
		assert.Contains(t, string(script), "-- +goose Down", name)
	}
}

func TestMigrate_BaseInaccesible(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := Migrate(ctx, "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migraciones")
}

func TestNopQueryLogRepo(t *testing.T) {
	var repo NopQueryLogRepo
	assert.NoError(t, repo.Create(context.Background(), &entity.QueryLog{}))
	list, err := repo.ListRecent(context.Background(), 10)
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestWithIPv4Host(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/db?sslmode=disable",
		withIPv4Host(ctx, "postgres://u:p@127.0.0.1/db?sslmode=disable"))
	assert.Equal(t, "postgres://u:p@[::1]:5432/db", withIPv4Host(ctx, "postgres://u:p@[::1]:5432/db"))
	assert.Equal(t, "host=db user=u", withIPv4Host(ctx, "host=db user=u"))
}

func TestWithIPv4Host_VerifyFullConservaNombre(t *testing.T) {
	dsn := "postgres://u:p@localhost:5432/db?sslmode=verify-full"
	assert.Equal(t, dsn, withIPv4Host(context.Background(), dsn))
}

func TestWithIPv4Host_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// sin resolver, el DSN queda igual
	dsn := "postgres://u:p@db.invalid:5432/db?sslmode=disable"
	assert.Equal(t, dsn, withIPv4Host(ctx, dsn))
}
