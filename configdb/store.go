// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package configdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides all functions to execute db queries and transactions
type Store struct {
	*Queries
	connPool *pgxpool.Pool
	// tx is set on stores handed to execTx callbacks; nested execTx calls
	// join it instead of opening a second transaction.
	tx pgx.Tx
}

// NewStore creates a new Store
func NewStore(connPool *pgxpool.Pool) *Store {
	return &Store{
		connPool: connPool,
		Queries:  New(connPool),
	}
}

func (store *Store) Pool() *pgxpool.Pool {
	return store.connPool
}

// Close closes the connection pool.
func (store *Store) Close() {
	if store.connPool != nil {
		store.connPool.Close()
	}
}

// ExecTx runs fn against a transaction-bound Store and commits when fn
// returns nil. Bootstrap imports use it to load many entities atomically.
func (store *Store) ExecTx(ctx context.Context, fn func(*Store) error) error {
	return store.execTx(ctx, fn)
}

func (store *Store) execTx(ctx context.Context, fn func(*Store) error) (err error) {
	if store.tx != nil {
		return fn(store)
	}

	tx, err := store.connPool.Begin(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// Never use the caller ctx for cleanup as it may be cancelled.
		rbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if rbErr := tx.Rollback(rbCtx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			if err != nil {
				err = errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
			} else {
				err = fmt.Errorf("rollback failed: %w", rbErr)
			}
		}
	}()

	txStore := &Store{
		connPool: store.connPool,
		Queries:  New(tx),
		tx:       tx,
	}

	if err = fn(txStore); err != nil {
		return err
	}

	commitCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = tx.Commit(commitCtx); err != nil {
		return err
	}
	committed = true
	return nil
}
