package database

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) PingContext(ctx context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestWaitForServer_RecoversAfterFailures(t *testing.T) {
	p := &flakyPinger{failures: 2}

	err := waitForServer(context.Background(), p, 5, time.Millisecond, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, p.calls)
}

func TestWaitForServer_GivesUpAfterBudget(t *testing.T) {
	p := &flakyPinger{failures: 100}

	err := waitForServer(context.Background(), p, 3, time.Millisecond, quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	// one initial attempt plus three retries
	assert.Equal(t, 4, p.calls)
}

func TestWaitForServer_StopsOnCancelledContext(t *testing.T) {
	p := &flakyPinger{failures: 100}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitForServer(ctx, p, 10, time.Second, quietLogger())
	assert.Error(t, err)
	assert.LessOrEqual(t, p.calls, 1)
}

func TestNewConnConfig_LogsFatalErrors(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	connLog := &connLogger{log: log}

	cfg, err := newConnConfig("postgres://postgres:@localhost:5432/tienda?sslmode=disable", connLog)
	require.NoError(t, err)
	require.NotNil(t, cfg.OnPgError)

	keep := cfg.OnPgError(nil, &pgconn.PgError{Severity: "ERROR", Code: "23505"})
	assert.True(t, keep)
	assert.Empty(t, hook.AllEntries())

	keep = cfg.OnPgError(nil, &pgconn.PgError{Severity: "FATAL", Code: "57P01", Message: "terminating connection due to administrator command"})
	assert.False(t, keep)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "57P01", entry.Data["code"])
}

func TestNewConnConfig_BadDSN(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	_, err := newConnConfig("postgres://%zz", &connLogger{log: log})
	assert.Error(t, err)
}

func TestConnLogger_ReportsRedials(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	connLog := &connLogger{log: log}

	connLog.connected(101)
	assert.Equal(t, "PostgreSQL connection opened", hook.LastEntry().Message)

	connLog.watchErrors(nil)(nil, &pgconn.PgError{Severity: "FATAL", Code: "57P01"})
	assert.Equal(t, int64(1), connLog.dropped.Load())

	connLog.connected(102)
	entry := hook.LastEntry()
	assert.Equal(t, "PostgreSQL connection re-established", entry.Message)
	assert.Equal(t, uint32(102), entry.Data["pid"])
	assert.Equal(t, int64(2), entry.Data["connections_opened"])
}
