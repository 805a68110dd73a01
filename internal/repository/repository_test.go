package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/egretwind/internal/config"
)

func TestMapPgError(t *testing.T) {
	assert.NoError(t, MapPgError(nil))
	assert.Equal(t, ErrAlreadyExists, MapPgError(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.Equal(t, ErrConflict, MapPgError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.Equal(t, context.Canceled, MapPgError(context.Canceled))
	assert.Equal(t, context.DeadlineExceeded, MapPgError(context.DeadlineExceeded))
	assert.NotErrorIs(t, MapPgError(fmt.Errorf("query: %w", context.DeadlineExceeded)), ErrStorage)

	down := errors.New("connection refused")
	mapped := MapPgError(down)
	assert.ErrorIs(t, mapped, ErrStorage)
	assert.ErrorIs(t, mapped, down)

	syntax := MapPgError(&pgconn.PgError{Code: pgerrcode.SyntaxError})
	assert.ErrorIs(t, syntax, ErrStorage)
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.PostgresConfig{
		Host: "db", Port: 5433, User: "blog", Password: "p@ss/word", DBName: "egret", SSLMode: "disable",
	})
	assert.Equal(t, "postgres://blog:p%40ss%2Fword@db:5433/egret?sslmode=disable", dsn)

	bare := DSN(config.PostgresConfig{Host: "localhost", Port: 5432, DBName: "egret"})
	assert.Equal(t, "postgres://localhost:5432/egret", bare)
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelTrace, traceLevel(zerolog.TraceLevel))
	assert.Equal(t, tracelog.LogLevelDebug, traceLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelInfo, traceLevel(zerolog.InfoLevel))
	assert.Equal(t, tracelog.LogLevelWarn, traceLevel(zerolog.WarnLevel))
	assert.Equal(t, tracelog.LogLevelError, traceLevel(zerolog.ErrorLevel))
}

func TestPgxLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	l.Log(context.Background(), tracelog.LogLevelTrace, "Query", map[string]any{
		"sql":  "SELECT 1",
		"args": []any{1},
		"time": 3 * time.Millisecond,
	})
	out := buf.String()
	assert.Contains(t, out, `"component":"pgx"`)
	assert.Contains(t, out, `"sql":"SELECT 1"`)
	assert.Contains(t, out, `"took":3`)
	assert.Contains(t, out, `"message":"Query"`)

	buf.Reset()
	l.Log(context.Background(), tracelog.LogLevelNone, "ignored", nil)
	assert.Empty(t, buf.String())
}
