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

const getTaxConfig = `-- name: GetTaxConfig :one
SELECT country, tax_rate, active, created_at, updated_at
FROM tax_configs
WHERE country = $1 AND active
`

// GetTaxConfig returns the active tax row for country. Matching is
// case-sensitive.
func (q *Queries) GetTaxConfig(ctx context.Context, country string) (TaxConfig, error) {
	row := q.db.QueryRow(ctx, getTaxConfig, country)
	var i TaxConfig
	err := row.Scan(
		&i.Country,
		&i.TaxRate,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listTaxConfigs = `-- name: ListTaxConfigs :many
SELECT country, tax_rate, active, created_at, updated_at
FROM tax_configs
ORDER BY country
`

func (q *Queries) ListTaxConfigs(ctx context.Context) ([]TaxConfig, error) {
	rows, err := q.db.Query(ctx, listTaxConfigs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TaxConfig
	for rows.Next() {
		var i TaxConfig
		if err := rows.Scan(
			&i.Country,
			&i.TaxRate,
			&i.Active,
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

const upsertTaxConfig = `-- name: UpsertTaxConfig :one
INSERT INTO tax_configs (country, tax_rate, active)
VALUES ($1, $2, $3)
ON CONFLICT (country) DO UPDATE
SET tax_rate = EXCLUDED.tax_rate,
    active = EXCLUDED.active,
    updated_at = NOW()
RETURNING country, tax_rate, active, created_at, updated_at
`

type UpsertTaxConfigParams struct {
	Country string          `json:"country"`
	TaxRate decimal.Decimal `json:"tax_rate"`
	Active  bool            `json:"active"`
}

func (q *Queries) UpsertTaxConfig(ctx context.Context, arg UpsertTaxConfigParams) (TaxConfig, error) {
	row := q.db.QueryRow(ctx, upsertTaxConfig, arg.Country, arg.TaxRate, arg.Active)
	var i TaxConfig
	err := row.Scan(
		&i.Country,
		&i.TaxRate,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
