package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store runs queries directly or inside a transaction.
type Store interface {
	Querier

	// ExecTx runs fn inside a single transaction. The transaction is committed
	// when fn returns nil and rolled back otherwise.
	ExecTx(ctx context.Context, fn func(q Querier) error) error

	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error
}

type pgStore struct {
	*Queries
	pool *pgxpool.Pool
}

// NewStore returns a Store backed by a pgx connection pool.
func NewStore(pool *pgxpool.Pool) Store {
	return &pgStore{
		Queries: New(pool),
		pool:    pool,
	}
}

func (s *pgStore) ExecTx(ctx context.Context, fn func(q Querier) error) (txErr error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	if err := fn(s.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

func (s *pgStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
