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

	"github.com/jackc/pgx/v5/pgxpool"

	configdbmigrations "github.com/cardinalhq/shopconfig/configdb/migrations"
	"github.com/cardinalhq/shopconfig/internal/dbopen"
)

// ConnectToConfigDB opens a pool from the CONFIGDB_* environment and checks
// that the schema matches this binary.
func ConnectToConfigDB(ctx context.Context, opts ...dbopen.Options) (*pgxpool.Pool, error) {
	connectionString, err := dbopen.GetDatabaseURLFromEnv("CONFIGDB")
	if err != nil {
		return nil, errors.Join(dbopen.ErrDatabaseNotConfigured, fmt.Errorf("failed to get CONFIGDB connection string: %w", err))
	}

	pool, err := NewConnectionPool(ctx, connectionString)
	if err != nil {
		return nil, err
	}

	if err := configdbmigrations.CheckVersion(ctx, pool, dbopen.CheckOptions(opts...)...); err != nil {
		pool.Close()
		return nil, fmt.Errorf("CONFIGDB migration version check failed: %w", err)
	}

	return pool, nil
}

// ConfigDBStore connects and wraps the pool in a Store.
func ConfigDBStore(ctx context.Context, opts ...dbopen.Options) (*Store, error) {
	pool, err := ConnectToConfigDB(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return NewStore(pool), nil
}
