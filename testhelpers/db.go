//go:build integration

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

package testhelpers

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/postgres"

	"github.com/cardinalhq/shopconfig/configdb"
	configdbmigrations "github.com/cardinalhq/shopconfig/configdb/migrations"
)

const (
	containerUser     = "shopconfig"
	containerPassword = "shopconfig"
	containerDB       = "testing_configdb"
)

var (
	containerOnce sync.Once
	container     *gnomock.Container
	containerErr  error
)

type serverParams struct {
	host, port, user, password, baseDB string
}

// serverFromEnv uses CONFIGDB_HOST and friends when set. Otherwise a
// Postgres container is started once per test binary.
func serverFromEnv(t *testing.T) serverParams {
	t.Helper()

	if host := os.Getenv("CONFIGDB_HOST"); host != "" {
		return serverParams{
			host:     host,
			port:     getEnvOrDefault("CONFIGDB_PORT", "5432"),
			user:     getEnvOrDefault("CONFIGDB_USER", os.Getenv("USER")),
			password: os.Getenv("CONFIGDB_PASSWORD"),
			baseDB:   getEnvOrDefault("CONFIGDB_DBNAME", containerDB),
		}
	}

	containerOnce.Do(func() {
		container, containerErr = gnomock.Start(
			postgres.Preset(
				postgres.WithUser(containerUser, containerPassword),
				postgres.WithDatabase(containerDB),
				postgres.WithVersion("16"),
			),
			gnomock.WithTimeout(2*time.Minute),
		)
	})
	if containerErr != nil {
		t.Fatalf("Failed to start postgres container: %v", containerErr)
	}

	return serverParams{
		host:     container.Host,
		port:     strconv.Itoa(container.DefaultPort()),
		user:     containerUser,
		password: containerPassword,
		baseDB:   containerDB,
	}
}

// StopContainer stops the shared Postgres container, if one was started.
// Call it from TestMain after m.Run.
func StopContainer() {
	if container == nil {
		return
	}
	if err := gnomock.Stop(container); err != nil {
		slog.Error("Failed to stop postgres container", slog.Any("error", err))
	}
}

func (p serverParams) url(dbName string) string {
	if p.password != "" {
		return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable", p.user, p.password, p.host, p.port, dbName)
	}
	return fmt.Sprintf("postgresql://%s@%s:%s/%s?sslmode=disable", p.user, p.host, p.port, dbName)
}

// SetupTestConfigDB creates a clean test configdb database with migrations applied.
// Returns a connection pool and registers cleanup with t.Cleanup.
func SetupTestConfigDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()
	dbName := fmt.Sprintf("test_configdb_%d_%d", time.Now().Unix(), rand.Intn(10000))
	server := serverFromEnv(t)

	basePool, err := pgxpool.New(ctx, server.url(server.baseDB))
	if err != nil {
		t.Fatalf("Failed to connect to base configdb: %v", err)
	}

	if _, err := basePool.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbName)); err != nil {
		basePool.Close()
		t.Fatalf("Failed to create test configdb %s: %v", dbName, err)
	}

	testPool, err := configdb.NewConnectionPool(ctx, server.url(dbName))
	if err != nil {
		basePool.Close()
		t.Fatalf("Failed to connect to test configdb: %v", err)
	}

	if err := configdbmigrations.RunMigrationsUp(ctx, testPool); err != nil {
		testPool.Close()
		basePool.Close()
		t.Fatalf("Failed to run configdb migrations: %v", err)
	}

	t.Cleanup(func() {
		testPool.Close()

		if _, err := basePool.Exec(context.Background(), fmt.Sprintf("DROP DATABASE IF EXISTS %s WITH (FORCE)", dbName)); err != nil {
			slog.Error("Failed to drop test configdb", slog.String("dbName", dbName), slog.Any("error", err))
		}
		basePool.Close()
	})

	return testPool
}

// NewTestConfigDBStore creates a new configdb store connected to a test database.
func NewTestConfigDBStore(t *testing.T) *configdb.Store {
	return configdb.NewStore(SetupTestConfigDB(t))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
