// Package database wraps the pgx connection used by an ingest run.
//
// A run holds exactly one connection and one transaction. The narrow Tx
// interface is what the loader and the pipeline depend on, so both can be
// exercised against a recording fake in unit tests.
package database

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Tx is the data sink used by the loader: plain statements plus COPY FROM
// STDIN streaming.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, r io.Reader, sql string) (pgconn.CommandTag, error)
}

// Txn is a Tx with a commit/rollback boundary.
type Txn interface {
	Tx
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Conn is a single destination connection.
type Conn struct {
	conn *pgx.Conn
}

// Begin opens the run transaction.
func (c *Conn) Begin(ctx context.Context) (Txn, error) {
	tx, err := c.conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", MapError(err))
	}
	return &txn{tx: tx}, nil
}

func (c *Conn) Ping(ctx context.Context) error {
	return MapError(c.conn.Ping(ctx))
}

func (c *Conn) Close(ctx context.Context) error {
	return MapError(c.conn.Close(ctx))
}

// Database returns the name of the connected database.
func (c *Conn) Database() string {
	return c.conn.Config().Database
}

type txn struct {
	tx pgx.Tx
}

func (t *txn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	tag, err := t.tx.Exec(ctx, sql, args...)
	return tag, MapError(err)
}

// CopyFrom streams r (CSV text) through the COPY sub-protocol of the
// transaction's connection.
func (t *txn) CopyFrom(ctx context.Context, r io.Reader, sql string) (pgconn.CommandTag, error) {
	tag, err := t.tx.Conn().PgConn().CopyFrom(ctx, r, sql)
	return tag, MapError(err)
}

func (t *txn) Commit(ctx context.Context) error {
	return MapError(t.tx.Commit(ctx))
}

func (t *txn) Rollback(ctx context.Context) error {
	return MapError(t.tx.Rollback(ctx))
}
