package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrForeignKey is returned when a referenced row is missing or a referencing row still exists.
	ErrForeignKey = errors.New("foreign key constraint violated")

	// ErrCheckViolation is returned when a row fails a CHECK constraint.
	ErrCheckViolation = errors.New("check constraint violated")

	// ErrVersionConflict is returned when a conditional update finds a newer row version.
	ErrVersionConflict = errors.New("row version conflict")
)

// SQLExecutor is satisfied by *sql.DB and *sql.Tx, so repository writes can join a transaction
// owned by the service.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// TxRunner runs fn inside a database transaction, committing when fn returns nil.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(exec SQLExecutor) error) error
}

type sqlTxRunner struct {
	db *sql.DB
}

func NewTxRunner(db *sql.DB) TxRunner {
	return &sqlTxRunner{db: db}
}

func (r *sqlTxRunner) RunInTx(ctx context.Context, fn func(exec SQLExecutor) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", ErrDatabaseError, err)
	}
	return nil
}

// scanner is an interface satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// wrapDBError maps driver errors onto the repository sentinels.
func wrapDBError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s: %s (constraint: %s)", ErrDuplicateKey, op, pqErr.Message, pqErr.Constraint)
		case "23503":
			return fmt.Errorf("%w: %s: %s (constraint: %s)", ErrForeignKey, op, pqErr.Message, pqErr.Constraint)
		case "23514":
			return fmt.Errorf("%w: %s: %s (constraint: %s)", ErrCheckViolation, op, pqErr.Message, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrDatabaseError, op, err)
}

// expectOneRow turns a zero-row result into ErrNotFound.
func expectOneRow(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s: reading rows affected: %v", ErrDatabaseError, op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
