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

package dbopen

import "github.com/cardinalhq/shopconfig/migrations"

// Options configures database connection behavior
type Options struct {
	MigrationCheckOptions []migrations.CheckOption
}

// SkipMigrationCheck is for commands that create or repair the schema.
func SkipMigrationCheck() Options {
	return Options{
		MigrationCheckOptions: []migrations.CheckOption{
			migrations.WithCheckMode(migrations.CheckModeSkip),
		},
	}
}

// WarnOnMigrationMismatch logs a schema mismatch and continues.
func WarnOnMigrationMismatch() Options {
	return Options{
		MigrationCheckOptions: []migrations.CheckOption{
			migrations.WithCheckMode(migrations.CheckModeWarn),
		},
	}
}

// WaitForMigrations polls until the schema is current (default behavior).
func WaitForMigrations() Options {
	return Options{
		MigrationCheckOptions: []migrations.CheckOption{
			migrations.WithCheckMode(migrations.CheckModeWait),
		},
	}
}

// CheckOptions merges the migration check options of every opts entry.
func CheckOptions(opts ...Options) []migrations.CheckOption {
	var out []migrations.CheckOption
	for _, o := range opts {
		out = append(out, o.MigrationCheckOptions...)
	}
	return out
}
