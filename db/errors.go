package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrNotNullViolation    = errors.New("not null violation")
)

// classify переводит ошибки драйверов (postgres, sqlite3) в ошибки хранилища.
// Исходная ошибка остаётся в цепочке.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
		case "foreign_key_violation":
			return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
		case "not_null_violation":
			return fmt.Errorf("%w: %w", ErrNotNullViolation, err)
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
		case sqlite3.ErrConstraintNotNull:
			return fmt.Errorf("%w: %w", ErrNotNullViolation, err)
		}
	}
	return err
}

type column struct {
	name string
	set  bool
}

func str(name, v string) column { return column{name: name, set: strings.TrimSpace(v) != ""} }

func num[T int | float64](name string, v T) column { return column{name: name, set: v != 0} }

// requireColumns проверяет NOT NULL колонки до обращения к базе:
// пустое значение считается пропущенным полем.
func requireColumns(table string, cols ...column) error {
	for _, c := range cols {
		if !c.set {
			return fmt.Errorf("%w: %s.%s is required", ErrNotNullViolation, table, c.name)
		}
	}
	return nil
}
