package repository

import "context"

// UnitOfWork is a single atomic scope shared by a sequence of store writes.
// All writes issued against the same handle commit or roll back together.
// A handle is single-use: after Commit or Rollback it must not be reused.
type UnitOfWork interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWorkStarter opens unit-of-work handles. The caller that begins a unit
// of work owns it exclusively for the duration of one logical workflow and is
// responsible for Commit/Rollback.
type UnitOfWorkStarter interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
