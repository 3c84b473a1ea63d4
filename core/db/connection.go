// Package db provides the Postgres connection shared by every feature's
// repository, grounded on the teacher's core/services/database_service.go
// connector/reconnect pattern but rebuilt on gorm.io/gorm (v2) — the
// teacher's own database_service.go imported github.com/jinzhu/gorm (v1)
// even though go.mod only requires gorm.io/gorm, an inconsistency not worth
// carrying forward.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/RodolfoBonis/spooliq/core/config"
	"github.com/RodolfoBonis/spooliq/core/entities"
	"github.com/RodolfoBonis/spooliq/core/errors"
	"github.com/RodolfoBonis/spooliq/core/logger"

	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connection wraps *gorm.DB so fx can provide it as a distinct type and so
// readiness probes can ping it without importing gorm directly.
type Connection struct {
	*gorm.DB
}

func dsn(cfg *config.AppConfig) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBName, cfg.DBPassword,
	)
}

// Open establishes the Postgres connection, matching the teacher's
// development-vs-production log verbosity split.
func Open(log logger.Logger, cfg *config.AppConfig) (*Connection, error) {
	logLevel := gormlogger.Silent
	if cfg.Environment != entities.Environment.Production {
		logLevel = gormlogger.Warn
	}

	gdb, err := gorm.Open(postgres.Open(dsn(cfg)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		appErr := errors.NewAppError(entities.ErrDatabase, err.Error(), map[string]interface{}{"host": cfg.DBHost, "dbname": cfg.DBName}, err)
		log.LogError(context.Background(), "failed to connect to database", appErr)
		return nil, appErr
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, errors.NewAppError(entities.ErrDatabase, "failed to acquire sql.DB handle", nil, err)
	}

	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	sqlDB.SetMaxIdleConns(30)
	sqlDB.SetMaxOpenConns(50)

	if err := sqlDB.Ping(); err != nil {
		appErr := errors.NewAppError(entities.ErrDatabase, "failed to ping database after connection", nil, err)
		log.LogError(context.Background(), "database ping failed", appErr)
		return nil, appErr
	}

	log.Info(context.Background(), "database connection established", map[string]interface{}{
		"host":   cfg.DBHost,
		"port":   cfg.DBPort,
		"dbname": cfg.DBName,
	})

	return &Connection{DB: gdb}, nil
}

// Ping satisfies core/health.Checker.
func (c *Connection) Ping(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// AutoMigrate runs gorm's schema sync for the given models, replacing the
// teacher's hand-rolled SQL migration executor (core/migrations) — this
// system has no customer-facing schema-versioning requirement (spec §1
// Non-goals: "Schema management"), so AutoMigrate is sufficient.
func (c *Connection) AutoMigrate(models ...interface{}) error {
	return c.DB.AutoMigrate(models...)
}

// Module provides the shared database connection.
var Module = fx.Module("db",
	fx.Provide(Open),
	fx.Invoke(func(lc fx.Lifecycle, conn *Connection) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				sqlDB, err := conn.DB.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		})
	}),
)
