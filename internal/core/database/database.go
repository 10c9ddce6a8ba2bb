// Package database opens the shared connection pool and the gorm handle on
// top of it.
package database

import (
	"fmt"

	"github.com/frahmantamala/identity-service/internal"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQL connects with sqlx and applies the pool limits.
func OpenSQL(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.SQLDriverName(), cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	return db, nil
}

// Open builds a gorm handle sharing the pool returned by OpenSQL. Closing the
// sqlx handle closes both.
func Open(cfg internal.DatabaseConfig, logLevel string) (*sqlx.DB, *gorm.DB, error) {
	db, err := OpenSQL(cfg)
	if err != nil {
		return nil, nil, err
	}

	gdb, err := gorm.Open(dialector(cfg.Driver, db), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(logLevel)),
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return db, gdb, nil
}

func dialector(driver string, db *sqlx.DB) gorm.Dialector {
	switch driver {
	case internal.DriverMySQL:
		return mysql.New(mysql.Config{Conn: db.DB})
	case internal.DriverSQLite:
		return &sqlite.Dialector{DriverName: "sqlite3", Conn: db.DB}
	default:
		return postgres.New(postgres.Config{Conn: db.DB})
	}
}

// gormLogLevel keeps SQL statements out of the logs unless debugging.
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}

// OpenInMemory opens a private SQLite database with the schema applied by the
// caller. A single connection keeps every query on the same in-memory file.
func OpenInMemory() (*sqlx.DB, *gorm.DB, error) {
	return Open(internal.DatabaseConfig{
		Driver:       internal.DriverSQLite,
		Source:       ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, "silent")
}
