package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/hoa_billing_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// savepoint runs fn inside a nested transaction of tx. When fn fails only the
// savepoint is rolled back and the outer transaction stays usable.
func savepoint(ctx context.Context, tx pgx.Tx, fn func(sp pgx.Tx) error) error {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(sp); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}
	return sp.Commit(ctx)
}

// execBatch queues query once per args row inside a savepoint and returns the
// summed rows affected. Either every statement runs or none does.
func execBatch(ctx context.Context, tx pgx.Tx, query string, rows [][]any) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	affected := 0
	err := savepoint(ctx, tx, func(sp pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, args := range rows {
			batch.Queue(query, args...)
		}
		br := sp.SendBatch(ctx, batch)
		for range rows {
			tag, err := br.Exec()
			if err != nil {
				_ = br.Close()
				return err
			}
			affected += int(tag.RowsAffected())
		}
		return br.Close()
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// execOne runs a single statement inside a savepoint and reports rows affected.
func execOne(ctx context.Context, tx pgx.Tx, query string, args ...any) (int, error) {
	affected := 0
	err := savepoint(ctx, tx, func(sp pgx.Tx) error {
		tag, err := sp.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		affected = int(tag.RowsAffected())
		return nil
	})
	return affected, err
}
