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

	"github.com/shopspring/decimal"
)

const listShippingServices = `-- name: ListShippingServices :many
SELECT name, description, base_rate, estimated_days, priority, enabled, created_at, updated_at
FROM shipping_services
WHERE enabled OR NOT $1::boolean
ORDER BY priority, name
`

func (q *Queries) ListShippingServices(ctx context.Context, enabledOnly bool) ([]ShippingService, error) {
	rows, err := q.db.Query(ctx, listShippingServices, enabledOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ShippingService
	for rows.Next() {
		var i ShippingService
		if err := rows.Scan(
			&i.Name,
			&i.Description,
			&i.BaseRate,
			&i.EstimatedDays,
			&i.Priority,
			&i.Enabled,
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

const upsertShippingService = `-- name: UpsertShippingService :one
INSERT INTO shipping_services (name, description, base_rate, estimated_days, priority, enabled)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (name) DO UPDATE
SET description = EXCLUDED.description,
    base_rate = EXCLUDED.base_rate,
    estimated_days = EXCLUDED.estimated_days,
    priority = EXCLUDED.priority,
    enabled = EXCLUDED.enabled,
    updated_at = NOW()
RETURNING name, description, base_rate, estimated_days, priority, enabled, created_at, updated_at
`

type UpsertShippingServiceParams struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	BaseRate      decimal.Decimal `json:"base_rate"`
	EstimatedDays int32           `json:"estimated_days"`
	Priority      int32           `json:"priority"`
	Enabled       bool            `json:"enabled"`
}

func (q *Queries) UpsertShippingService(ctx context.Context, arg UpsertShippingServiceParams) (ShippingService, error) {
	row := q.db.QueryRow(ctx, upsertShippingService,
		arg.Name,
		arg.Description,
		arg.BaseRate,
		arg.EstimatedDays,
		arg.Priority,
		arg.Enabled,
	)
	var i ShippingService
	err := row.Scan(
		&i.Name,
		&i.Description,
		&i.BaseRate,
		&i.EstimatedDays,
		&i.Priority,
		&i.Enabled,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
