package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Storage - доступ к таблицам user, location, request, bid.
// Один и тот же тип работает и поверх *sqlx.DB, и внутри транзакции.
type Storage struct {
	db    *sqlx.DB
	q     sqlx.ExtContext
	clock *Clock
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db, q: db, clock: NewClock(nil)}
}

// PoolConfig - настройки пула соединений
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open подключается к базе. Для sqlite3 включаются внешние ключи и
// используется одно соединение (один писатель).
func Open(ctx context.Context, driver, dsn string, pool PoolConfig) (*sqlx.DB, error) {
	if driver == "sqlite3" {
		dsn = sqliteDSN(dsn)
	}

	conn, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %s: %w", driver, err)
	}

	if driver == "sqlite3" {
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		return conn, nil
	}

	if pool.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	return conn, nil
}

func sqliteDSN(dsn string) string {
	params := []string{"_foreign_keys=on", "_busy_timeout=5000"}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, p := range params {
		key := p[:strings.Index(p, "=")+1]
		if strings.Contains(dsn, key) {
			continue
		}
		dsn += sep + p
		sep = "&"
	}
	return dsn
}

// DB возвращает исходное соединение (для миграций)
func (s *Storage) DB() *sql.DB {
	return s.db.DB
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// SetClock подменяет источник времени для created_date.
func (s *Storage) SetClock(now func() time.Time) {
	s.clock = NewClock(now)
}

// InTx выполняет fn в одной транзакции. Вложенный вызов
// переиспользует уже открытую транзакцию.
func (s *Storage) InTx(ctx context.Context, fn func(tx *Storage) error) (err error) {
	if _, ok := s.q.(*sqlx.Tx); ok {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		}
	}()

	return fn(&Storage{db: s.db, q: tx, clock: s.clock})
}

func (s *Storage) get(ctx context.Context, dest any, query string, args ...any) error {
	return classify(sqlx.GetContext(ctx, s.q, dest, s.q.Rebind(query), args...))
}

func (s *Storage) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return classify(sqlx.SelectContext(ctx, s.q, dest, s.q.Rebind(query), args...))
}

// exec возвращает ErrNotFound, если ни одна строка не изменена.
func (s *Storage) exec(ctx context.Context, query string, args ...any) error {
	n, err := s.execCount(ctx, query, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Storage) execCount(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.q.ExecContext(ctx, s.q.Rebind(query), args...)
	if err != nil {
		return 0, classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
