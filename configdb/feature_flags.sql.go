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
)

const getFeatureFlag = `-- name: GetFeatureFlag :one
SELECT name, enabled, description, created_at, updated_at
FROM feature_flags
WHERE name = $1
`

func (q *Queries) GetFeatureFlag(ctx context.Context, name string) (FeatureFlag, error) {
	row := q.db.QueryRow(ctx, getFeatureFlag, name)
	var i FeatureFlag
	err := row.Scan(
		&i.Name,
		&i.Enabled,
		&i.Description,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listFeatureFlags = `-- name: ListFeatureFlags :many
SELECT name, enabled, description, created_at, updated_at
FROM feature_flags
ORDER BY name
`

func (q *Queries) ListFeatureFlags(ctx context.Context) ([]FeatureFlag, error) {
	rows, err := q.db.Query(ctx, listFeatureFlags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FeatureFlag
	for rows.Next() {
		var i FeatureFlag
		if err := rows.Scan(
			&i.Name,
			&i.Enabled,
			&i.Description,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertFeatureFlag = `-- name: UpsertFeatureFlag :one
INSERT INTO feature_flags (name, enabled, description)
VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE
SET enabled = EXCLUDED.enabled,
    description = EXCLUDED.description,
    updated_at = NOW()
RETURNING name, enabled, description, created_at, updated_at
`

type UpsertFeatureFlagParams struct {
	Name        string `json:"name"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

func (q *Queries) UpsertFeatureFlag(ctx context.Context, arg UpsertFeatureFlagParams) (FeatureFlag, error) {
	row := q.db.QueryRow(ctx, upsertFeatureFlag, arg.Name, arg.Enabled, arg.Description)
	var i FeatureFlag
	err := row.Scan(
		&i.Name,
		&i.Enabled,
		&i.Description,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
