package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPostgres(t *testing.T) {
	cases := map[pq.ErrorCode]error{
		"23505": ErrDuplicateKey,
		"23503": ErrForeignKeyViolation,
		"23502": ErrNotNullViolation,
	}
	for code, want := range cases {
		src := &pq.Error{Code: code}
		err := classify(fmt.Errorf("insert: %w", src))
		require.ErrorIs(t, err, want, string(code))

		var pqErr *pq.Error
		require.True(t, errors.As(err, &pqErr), "driver error stays in the chain")
	}

	other := &pq.Error{Code: "40001"}
	assert.Same(t, error(other), classify(other))
}

func TestClassifySQLite(t *testing.T) {
	cases := map[sqlite3.ErrNoExtended]error{
		sqlite3.ErrConstraintUnique:     ErrDuplicateKey,
		sqlite3.ErrConstraintForeignKey: ErrForeignKeyViolation,
		sqlite3.ErrConstraintNotNull:    ErrNotNullViolation,
	}
	for code, want := range cases {
		err := classify(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: code})
		require.ErrorIs(t, err, want)
	}
}

func TestClassifyNoRows(t *testing.T) {
	require.ErrorIs(t, classify(sql.ErrNoRows), ErrNotFound)
	require.NoError(t, classify(nil))
}

func TestRequireColumns(t *testing.T) {
	require.NoError(t, requireColumns("bid", num("bid_amount", 1.5), str("bid_status", "x")))

	err := requireColumns("bid", num("request_id", 1), num("bid_amount", 0.0))
	require.ErrorIs(t, err, ErrNotNullViolation)
	assert.Contains(t, err.Error(), "bid.bid_amount")

	err = requireColumns("user", str("email", "   "))
	require.ErrorIs(t, err, ErrNotNullViolation)
}

func TestClockNeverGoesBack(t *testing.T) {
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{base, base.Add(-time.Hour), base.Add(time.Second)}
	i := 0
	c := NewClock(func() time.Time {
		v := ticks[i]
		i++
		return v
	})

	first := c.Now()
	second := c.Now()
	third := c.Now()
	assert.True(t, first.Equal(base))
	assert.True(t, second.Equal(base))
	assert.True(t, third.Equal(base.Add(time.Second)))
	assert.Equal(t, time.UTC, third.Location())
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("a.db"))
	assert.Equal(t, "a.db?mode=rwc&_foreign_keys=on&_busy_timeout=5000", sqliteDSN("a.db?mode=rwc"))
	assert.Equal(t, "a.db?_foreign_keys=off&_busy_timeout=5000", sqliteDSN("a.db?_foreign_keys=off"))
}
