package postgres

import (
	"fmt"

	"montarota/internal/adapters/out/postgres/courierrepo"
	"montarota/internal/adapters/out/postgres/idempotencyrepo"
	"montarota/internal/adapters/out/postgres/ocrrepo"
	"montarota/internal/adapters/out/postgres/orderrepo"
	"montarota/internal/adapters/out/postgres/paymentrepo"
	"montarota/internal/adapters/out/postgres/routerepo"
	"montarota/internal/adapters/out/postgres/storerepo"
	"montarota/internal/adapters/out/postgres/trackingrepo"
	"montarota/internal/adapters/out/postgres/userrepo"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ConnectionConfig selects the datastore. SQLite is meant for local runs and tests;
// Path may be ":memory:".
type ConnectionConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string
	LogLevel logger.LogLevel
}

// DSN builds the keyword/value connection string understood by pgx.
func (c ConnectionConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

// Open connects with driver errors translated to gorm sentinels.
func Open(cfg ConnectionConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres, "":
		dialector = gorm_postgres.Open(cfg.DSN())
	case DriverSQLite:
		path := cfg.Path
		if path == "" {
			path = "montarota.db"
		}
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	logLevel := cfg.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialector.Name(), err)
	}
	return db, nil
}

// Models lists every persisted DTO, in migration order.
func Models() []any {
	return []any{
		&storerepo.StoreDTO{},
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
		&routerepo.RouteDTO{},
		&paymentrepo.PaymentDTO{},
		&userrepo.UserDTO{},
		&trackingrepo.PingDTO{},
		&ocrrepo.SlipDTO{},
		&idempotencyrepo.RecordDTO{},
	}
}

// Migrate creates or alters the schema for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
