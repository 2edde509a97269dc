package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite3/*.sql
var embedMigrations embed.FS

// Dialect возвращает диалект goose и каталог миграций для драйвера sql.
func Dialect(driver string) (string, error) {
	switch driver {
	case "postgres", "sqlite3":
		return driver, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}

func setup(driver string) (string, error) {
	dialect, err := Dialect(driver)
	if err != nil {
		return "", err
	}
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("failed to set dialect: %w", err)
	}
	return dialect, nil
}

// Run применяет все миграции для выбранного драйвера.
func Run(db *sql.DB, driver string) error {
	dir, err := setup(driver)
	if err != nil {
		return err
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Reset удаляет схему и создаёт её заново (init-db --reset).
func Reset(db *sql.DB, driver string) error {
	dir, err := setup(driver)
	if err != nil {
		return err
	}
	if err := goose.Reset(db, dir); err != nil {
		return fmt.Errorf("failed to reset migrations: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
