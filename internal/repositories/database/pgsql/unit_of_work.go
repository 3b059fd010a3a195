package pgsql

import (
	"context"
	"time"

	portsrepo "github.com/SscSPs/hoa_billing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxImportRunner opens one database transaction per HOA import.
type PgxImportRunner struct {
	BaseRepository
}

// newPgxImportRunner creates a runner backed by the given pool.
func newPgxImportRunner(pool *pgxpool.Pool) portsrepo.UnitOfWorkRunner {
	return &PgxImportRunner{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxImportRunner implements portsrepo.UnitOfWorkRunner
var _ portsrepo.UnitOfWorkRunner = (*PgxImportRunner)(nil)

// RunInTx implements portsrepo.UnitOfWorkRunner.
func (r *PgxImportRunner) RunInTx(ctx context.Context, timeout time.Duration, fn func(ctx context.Context, uow portsrepo.ImportUnitOfWork) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Rollback must still reach the server after the deadline fired.
	defer r.Rollback(context.WithoutCancel(ctx), tx) // Will be ignored if transaction is committed successfully

	if err := fn(ctx, &pgxImportUnitOfWork{tx: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// pgxImportUnitOfWork implements portsrepo.ImportUnitOfWork on one open transaction.
// Every write runs in its own savepoint.
type pgxImportUnitOfWork struct {
	tx pgx.Tx
}

var _ portsrepo.ImportUnitOfWork = (*pgxImportUnitOfWork)(nil)
