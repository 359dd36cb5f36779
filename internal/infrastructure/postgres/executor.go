package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/membernet/member-info-service/internal/domain/repository"
)

var (
	// ErrUnitOfWorkDone reports a statement issued against a handle that was
	// already committed or rolled back.
	ErrUnitOfWorkDone = errors.New("unit of work already finished")
	// errForeignUnitOfWork reports a handle that was not opened by this
	// executor's Begin.
	errForeignUnitOfWork = errors.New("unit of work was not opened by this store")
)

// Querier is the statement surface shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UnitOfWork is a single pooled connection transaction. It implements
// repository.UnitOfWork and is handed out by Executor.Begin. The opener owns
// the handle: the executor runs statements on it but never commits, rolls
// back, or closes it.
type UnitOfWork struct {
	tx   pgx.Tx
	done bool
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return ErrUnitOfWorkDone
	}
	u.done = true
	return mapErr("commit", u.tx.Commit(ctx))
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.done {
		return ErrUnitOfWorkDone
	}
	u.done = true
	return mapErr("rollback", u.tx.Rollback(ctx))
}

// Executor runs parameterized statements against the pool, or against a
// caller-supplied unit of work. With a nil unit of work each call runs in
// autocommit mode on a pooled connection.
type Executor struct {
	pool *pgxpool.Pool
}

func NewExecutor(pool *pgxpool.Pool) *Executor {
	return &Executor{pool: pool}
}

// Begin opens a new unit of work. The returned handle is exclusively owned by
// the caller for the duration of one logical workflow.
func (e *Executor) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return nil, mapErr("begin", err)
	}
	return &UnitOfWork{tx: tx}, nil
}

func (e *Executor) querier(uow repository.UnitOfWork) (Querier, error) {
	if uow == nil {
		return e.pool, nil
	}
	u, ok := uow.(*UnitOfWork)
	if !ok {
		return nil, errForeignUnitOfWork
	}
	if u.done {
		return nil, ErrUnitOfWorkDone
	}
	return u.tx, nil
}

// Exec runs a statement and returns the number of affected rows.
func (e *Executor) Exec(ctx context.Context, uow repository.UnitOfWork, sql string, args ...any) (int64, error) {
	q, err := e.querier(uow)
	if err != nil {
		return 0, err
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, mapErr("exec", err)
	}
	return tag.RowsAffected(), nil
}

// Query runs a multi-row query.
func (e *Executor) Query(ctx context.Context, uow repository.UnitOfWork, sql string, args ...any) (pgx.Rows, error) {
	q, err := e.querier(uow)
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr("query", err)
	}
	return rows, nil
}

// QueryRow runs a single-row query. Scan errors are classified by the caller
// through mapErr so that pgx.ErrNoRows surfaces as repository.ErrNotFound.
func (e *Executor) QueryRow(ctx context.Context, uow repository.UnitOfWork, sql string, args ...any) (pgx.Row, error) {
	q, err := e.querier(uow)
	if err != nil {
		return nil, err
	}
	return q.QueryRow(ctx, sql, args...), nil
}
