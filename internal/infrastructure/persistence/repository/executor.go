// Package repository holds the SQLite implementations of the
// application's persistence ports.
package repository

import (
	"context"
	"database/sql"

	"github.com/avenzari/expenseflow/internal/infrastructure/persistence/sqlite"
)

// executor interface covers both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// resolveExecutor returns the transaction carried by the context when
// one is open, and the plain connection otherwise.
func resolveExecutor(ctx context.Context, db *sql.DB) executor {
	if tx := sqlite.ExtractTx(ctx); tx != nil {
		return tx
	}
	return db
}
