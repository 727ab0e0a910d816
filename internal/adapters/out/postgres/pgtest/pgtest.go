// Package pgtest opens migrated databases for repository and query tests.
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"montarota/internal/adapters/out/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists every migrated table, for TRUNCATE between tests.
const Tables = "stores, couriers, orders, routes, payments, users, gps_pings, ocr_slips, idempotency_keys"

// NewSQLite returns a private in-memory database with the full schema. The pool is
// limited to one connection, so tests must not hold a transaction while querying
// through the returned handle.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))
	return db
}

// Container is a disposable PostgreSQL instance with the schema applied.
type Container struct {
	container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// StartPostgres runs postgres:15-alpine and migrates it.
func StartPostgres(ctx context.Context) (*Container, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err := postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Container{container: container, DB: db}, nil
}

// Truncate empties every table.
func (c *Container) Truncate() error {
	return c.DB.Exec("TRUNCATE TABLE " + Tables).Error
}

func (c *Container) Terminate(ctx context.Context) error {
	return c.container.Terminate(ctx)
}
