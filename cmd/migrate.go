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

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/shopconfig/configdb"
	configdbmigrations "github.com/cardinalhq/shopconfig/configdb/migrations"
	"github.com/cardinalhq/shopconfig/internal/dbopen"
)

func init() {
	rootCmd.AddCommand(MigrateCmd)
}

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run configdb migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, doneFx, err := setupTelemetry(servicename, nil)
		if err != nil {
			return err
		}
		defer func() { _ = doneFx() }()
		return migrateconfigdb(ctx)
	},
}

func migrateconfigdb(ctx context.Context) error {
	ctx, cancel := context.WithDeadline(ctx, time.Now().Add(5*time.Minute))
	defer cancel()

	pool, err := configdb.ConnectToConfigDB(ctx, dbopen.SkipMigrationCheck())
	if err != nil {
		if errors.Is(err, dbopen.ErrDatabaseNotConfigured) {
			slog.Info("ConfigDB not configured, skipping migration")
			return nil
		}
		return err
	}
	defer pool.Close()

	slog.Info("Running configdb migrations")
	return configdbmigrations.RunMigrationsUp(ctx, pool)
}
