package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

type Options struct {
	DSN            string
	MaxOpenConns   int
	ConnectRetries uint64
	ConnectBackoff time.Duration
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// Connect opens the process-wide handle and waits for the server with a bounded
// exponential backoff. The caller owns the returned *sql.DB and must Close it.
func Connect(ctx context.Context, opts Options, log logrus.FieldLogger) (*sql.DB, error) {
	connLog := &connLogger{log: log}
	connConfig, err := newConnConfig(opts.DSN, connLog)
	if err != nil {
		return nil, fmt.Errorf("database: parse dsn: %w", err)
	}
	db := stdlib.OpenDB(*connConfig, stdlib.OptionAfterConnect(connLog.afterConnect))

	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := waitForServer(ctx, db, opts.ConnectRetries, opts.ConnectBackoff, log); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("Successfully connected to PostgreSQL database")
	return db, nil
}

func waitForServer(ctx context.Context, db pinger, retries uint64, base time.Duration, log logrus.FieldLogger) error {
	backoff := retry.WithMaxRetries(retries, retry.NewExponential(base))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := db.PingContext(ctx); err != nil {
			log.WithField("attempt", attempt).Warnf("PostgreSQL not reachable, retrying: %v", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("database: connect after %d attempts: %w", attempt, err)
	}
	return nil
}

func newConnConfig(dsn string, connLog *connLogger) (*pgx.ConnConfig, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.OnPgError = connLog.watchErrors(cfg.OnPgError)
	return cfg, nil
}

// connLogger reports physical connections as database/sql opens and discards
// them. Dropped connections are redialed lazily on the next query.
type connLogger struct {
	log     logrus.FieldLogger
	opened  atomic.Int64
	dropped atomic.Int64
}

func (l *connLogger) afterConnect(_ context.Context, conn *pgx.Conn) error {
	l.connected(conn.PgConn().PID())
	return nil
}

func (l *connLogger) connected(pid uint32) {
	n := l.opened.Add(1)
	entry := l.log.WithFields(logrus.Fields{"pid": pid, "connections_opened": n})
	if l.dropped.Load() > 0 {
		entry.Info("PostgreSQL connection re-established")
		return
	}
	entry.Info("PostgreSQL connection opened")
}

func (l *connLogger) watchErrors(next func(*pgconn.PgConn, *pgconn.PgError) bool) func(*pgconn.PgConn, *pgconn.PgError) bool {
	return func(conn *pgconn.PgConn, pgErr *pgconn.PgError) bool {
		keep := !strings.EqualFold(pgErr.Severity, "FATAL")
		if next != nil {
			keep = next(conn, pgErr)
		}
		if !keep {
			l.dropped.Add(1)
			l.log.WithFields(logrus.Fields{
				"code":     pgErr.Code,
				"severity": pgErr.Severity,
			}).Warnf("PostgreSQL connection dropped, redialing on next use: %s", pgErr.Message)
		}
		return keep
	}
}
