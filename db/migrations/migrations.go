// Package migrations embeds the schema for every supported dialect and runs it
// with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql mysql/*.sql sqlite/*.sql
var FS embed.FS

const TableName = "schema_migrations"

// gooseDialect maps a configured driver to the goose dialect and the embedded
// directory holding its scripts.
func gooseDialect(driver string) (string, string, error) {
	switch driver {
	case "postgres":
		return "postgres", "postgres", nil
	case "mysql":
		return "mysql", "mysql", nil
	case "sqlite":
		return "sqlite3", "sqlite", nil
	default:
		return "", "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

func setup(driver string) (string, error) {
	dialect, dir, err := gooseDialect(driver)
	if err != nil {
		return "", err
	}
	goose.SetBaseFS(FS)
	goose.SetTableName(TableName)
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("goose dialect: %w", err)
	}
	return dir, nil
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	dir, err := setup(driver)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Down rolls back the latest migration.
func Down(ctx context.Context, db *sql.DB, driver string) error {
	dir, err := setup(driver)
	if err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

// Version reports the current schema version.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	if _, err := setup(driver); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}
