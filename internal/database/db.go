// Package database opens the SQLite files the tool reads and writes.
package database

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DriverName is the pure Go SQLite driver, so packages can be built without cgo.
const DriverName = "sqlite"

// Open opens or creates the SQLite database at path.
func Open(path string) (*sqlx.DB, error) {
	query := url.Values{}
	query.Add("_pragma", "foreign_keys(0)")
	query.Add("_pragma", "journal_mode(DELETE)")
	dsn := path + "?" + query.Encode()

	db, err := sqlx.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}
	// a single connection keeps every statement on the same file handle
	db.SetMaxOpenConns(1)
	return db, nil
}

// Apply runs each statement in order inside one transaction.
func Apply(ctx context.Context, db *sqlx.DB, statements []string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, statement := range statements {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("tx.ExecContext(statement %d) > %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}
