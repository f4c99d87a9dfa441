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

const serviceFeeConfigColumns = `id, name, fee_percentage, min_fee, max_fee, active, created_at, updated_at`

const getActiveServiceFeeConfig = `-- name: GetActiveServiceFeeConfig :one
SELECT ` + serviceFeeConfigColumns + `
FROM service_fee_configs
WHERE active
ORDER BY created_at, id
LIMIT 1
`

// GetActiveServiceFeeConfig returns the oldest active fee policy.
func (q *Queries) GetActiveServiceFeeConfig(ctx context.Context) (ServiceFeeConfig, error) {
	row := q.db.QueryRow(ctx, getActiveServiceFeeConfig)
	return scanServiceFeeConfig(row)
}

const getServiceFeeConfigByName = `-- name: GetServiceFeeConfigByName :one
SELECT ` + serviceFeeConfigColumns + `
FROM service_fee_configs
WHERE name = $1
`

func (q *Queries) GetServiceFeeConfigByName(ctx context.Context, name string) (ServiceFeeConfig, error) {
	row := q.db.QueryRow(ctx, getServiceFeeConfigByName, name)
	return scanServiceFeeConfig(row)
}

const listServiceFeeConfigs = `-- name: ListServiceFeeConfigs :many
SELECT ` + serviceFeeConfigColumns + `
FROM service_fee_configs
ORDER BY created_at, id
`

func (q *Queries) ListServiceFeeConfigs(ctx context.Context) ([]ServiceFeeConfig, error) {
	rows, err := q.db.Query(ctx, listServiceFeeConfigs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ServiceFeeConfig
	for rows.Next() {
		i, err := scanServiceFeeConfig(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertServiceFeeConfigRow = `-- name: UpsertServiceFeeConfigRow :one
INSERT INTO service_fee_configs (name, fee_percentage, min_fee, max_fee, active)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (name) DO UPDATE
SET fee_percentage = EXCLUDED.fee_percentage,
    min_fee = EXCLUDED.min_fee,
    max_fee = EXCLUDED.max_fee,
    active = EXCLUDED.active,
    updated_at = NOW()
RETURNING ` + serviceFeeConfigColumns + `
`

type UpsertServiceFeeConfigParams struct {
	Name          string           `json:"name"`
	FeePercentage decimal.Decimal  `json:"fee_percentage"`
	MinFee        decimal.Decimal  `json:"min_fee"`
	MaxFee        *decimal.Decimal `json:"max_fee"`
	Active        bool             `json:"active"`
}

// UpsertServiceFeeConfigRow writes a single row without touching the others.
// Store.UpsertServiceFeeConfig is the entry point that keeps one policy active.
func (q *Queries) UpsertServiceFeeConfigRow(ctx context.Context, arg UpsertServiceFeeConfigParams) (ServiceFeeConfig, error) {
	row := q.db.QueryRow(ctx, upsertServiceFeeConfigRow,
		arg.Name,
		arg.FeePercentage,
		arg.MinFee,
		arg.MaxFee,
		arg.Active,
	)
	return scanServiceFeeConfig(row)
}

const deactivateOtherServiceFeeConfigs = `-- name: DeactivateOtherServiceFeeConfigs :execrows
UPDATE service_fee_configs
SET active = FALSE, updated_at = NOW()
WHERE active AND name <> $1
`

func (q *Queries) DeactivateOtherServiceFeeConfigs(ctx context.Context, keep string) (int64, error) {
	result, err := q.db.Exec(ctx, deactivateOtherServiceFeeConfigs, keep)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanServiceFeeConfig(row rowScanner) (ServiceFeeConfig, error) {
	var i ServiceFeeConfig
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.FeePercentage,
		&i.MinFee,
		&i.MaxFee,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
