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

package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	migrationopts "github.com/cardinalhq/shopconfig/migrations"
)

// CheckVersion verifies that configdb is at the schema version embedded in
// this binary. Environment settings form the base; opts override them.
func CheckVersion(ctx context.Context, pool *pgxpool.Pool, opts ...migrationopts.CheckOption) error {
	cfg := migrationopts.Apply(getMigrationCheckConfig(), opts...)
	if cfg.Mode == migrationopts.CheckModeSkip {
		slog.Debug("Migration version checking disabled for configdb")
		return nil
	}

	expected, err := extractLatestMigrationVersion(migrationFiles)
	if err != nil {
		return fmt.Errorf("failed to extract expected configdb migration version: %w", err)
	}

	slog.Info("Checking migration version",
		slog.String("database", "configdb"),
		slog.Uint64("expected_version", uint64(expected)),
		slog.String("mode", cfg.Mode.String()),
		slog.Duration("timeout", cfg.Timeout))

	deadline := time.Now().Add(cfg.Timeout)
	ticker := time.NewTicker(cfg.RetryInterval)
	defer ticker.Stop()

	for {
		current, dirty, err := currentMigrationVersion(pool)
		if err != nil {
			return fmt.Errorf("failed to get current configdb migration version: %w", err)
		}

		switch {
		case dirty && !cfg.AllowDirty:
			return errors.New("configdb migration is in dirty state, please fix before proceeding")
		case dirty:
			slog.Warn("configdb migration is dirty but allowed to continue")
		}

		if current == expected {
			slog.Info("Migration version check passed", slog.Uint64("version", uint64(current)))
			return nil
		}

		mismatch := fmt.Errorf("configdb version %d does not match expected version %d", current, expected)
		if current > expected {
			mismatch = fmt.Errorf("configdb version %d is newer than expected version %d - you may need to update the application",
				current, expected)
		}

		if cfg.Mode == migrationopts.CheckModeWarn {
			slog.Warn("Continuing with mismatched configdb schema", slog.Any("error", mismatch))
			return nil
		}
		if current > expected {
			return mismatch
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timeout waiting for configdb migration to complete: %w", mismatch)
		}

		slog.Info("Waiting for migrations to complete",
			slog.Uint64("current_version", uint64(current)),
			slog.Uint64("expected_version", uint64(expected)),
			slog.Duration("remaining_timeout", time.Until(deadline)))

		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled while waiting for configdb migrations: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// getMigrationCheckConfig reads the check settings from the environment.
func getMigrationCheckConfig() migrationopts.CheckOptions {
	cfg := migrationopts.DefaultCheckOptions()

	if val := os.Getenv("CONFIGDB_MIGRATION_CHECK_ENABLED"); val != "" && strings.ToLower(val) != "true" {
		cfg.Mode = migrationopts.CheckModeSkip
	}
	if val := os.Getenv("MIGRATION_CHECK_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Timeout = d
		}
	}
	if val := os.Getenv("MIGRATION_CHECK_RETRY_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.RetryInterval = d
		}
	}
	if val := os.Getenv("MIGRATION_CHECK_ALLOW_DIRTY"); val != "" {
		cfg.AllowDirty = strings.ToLower(val) == "true"
	}
	return cfg
}

// extractLatestMigrationVersion returns the highest version among the
// embedded "<version>_<name>.up.sql" files.
func extractLatestMigrationVersion(files embed.FS) (uint, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return 0, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var maxVersion uint
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		prefix, _, found := strings.Cut(name, "_")
		if !found {
			continue
		}
		version, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			continue
		}
		maxVersion = max(maxVersion, uint(version))
	}

	if maxVersion == 0 {
		return 0, errors.New("no valid migration files found")
	}
	return maxVersion, nil
}

func currentMigrationVersion(pool *pgxpool.Pool) (uint, bool, error) {
	m, cleanup, err := newMigrator(pool)
	if err != nil {
		return 0, false, err
	}
	defer cleanup()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, dirty, nil
}
