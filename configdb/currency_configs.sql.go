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

const currencyConfigColumns = `code, symbol, name, is_default, exchange_rate, active, created_at, updated_at`

const getCurrencyConfig = `-- name: GetCurrencyConfig :one
SELECT ` + currencyConfigColumns + `
FROM currency_configs
WHERE code = $1
`

func (q *Queries) GetCurrencyConfig(ctx context.Context, code string) (CurrencyConfig, error) {
	row := q.db.QueryRow(ctx, getCurrencyConfig, code)
	return scanCurrencyConfig(row)
}

const getDefaultCurrencyConfig = `-- name: GetDefaultCurrencyConfig :one
SELECT ` + currencyConfigColumns + `
FROM currency_configs
WHERE is_default
LIMIT 1
`

func (q *Queries) GetDefaultCurrencyConfig(ctx context.Context) (CurrencyConfig, error) {
	row := q.db.QueryRow(ctx, getDefaultCurrencyConfig)
	return scanCurrencyConfig(row)
}

const listCurrencyConfigs = `-- name: ListCurrencyConfigs :many
SELECT ` + currencyConfigColumns + `
FROM currency_configs
ORDER BY code
`

func (q *Queries) ListCurrencyConfigs(ctx context.Context) ([]CurrencyConfig, error) {
	rows, err := q.db.Query(ctx, listCurrencyConfigs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CurrencyConfig
	for rows.Next() {
		i, err := scanCurrencyConfig(rows)
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

const upsertCurrencyConfig = `-- name: UpsertCurrencyConfig :one
INSERT INTO currency_configs (code, symbol, name, exchange_rate, active)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (code) DO UPDATE
SET symbol = EXCLUDED.symbol,
    name = EXCLUDED.name,
    exchange_rate = EXCLUDED.exchange_rate,
    active = EXCLUDED.active,
    updated_at = NOW()
RETURNING ` + currencyConfigColumns + `
`

// UpsertCurrencyConfigParams deliberately has no IsDefault: the default flag
// only moves through Store.SetDefaultCurrency.
type UpsertCurrencyConfigParams struct {
	Code         string          `json:"code"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Active       bool            `json:"active"`
}

func (q *Queries) UpsertCurrencyConfig(ctx context.Context, arg UpsertCurrencyConfigParams) (CurrencyConfig, error) {
	row := q.db.QueryRow(ctx, upsertCurrencyConfig,
		arg.Code,
		arg.Symbol,
		arg.Name,
		arg.ExchangeRate,
		arg.Active,
	)
	return scanCurrencyConfig(row)
}

const clearOtherDefaultCurrencies = `-- name: ClearOtherDefaultCurrencies :execrows
UPDATE currency_configs
SET is_default = FALSE, updated_at = NOW()
WHERE is_default AND code <> $1
`

func (q *Queries) ClearOtherDefaultCurrencies(ctx context.Context, keep string) (int64, error) {
	result, err := q.db.Exec(ctx, clearOtherDefaultCurrencies, keep)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const markDefaultCurrency = `-- name: MarkDefaultCurrency :execrows
UPDATE currency_configs
SET is_default = TRUE, updated_at = NOW()
WHERE code = $1 AND NOT is_default
`

func (q *Queries) MarkDefaultCurrency(ctx context.Context, code string) (int64, error) {
	result, err := q.db.Exec(ctx, markDefaultCurrency, code)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const countDefaultCurrencies = `-- name: CountDefaultCurrencies :one
SELECT COUNT(*) FROM currency_configs WHERE is_default
`

func (q *Queries) CountDefaultCurrencies(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countDefaultCurrencies)
	var count int64
	err := row.Scan(&count)
	return count, err
}

func scanCurrencyConfig(row rowScanner) (CurrencyConfig, error) {
	var i CurrencyConfig
	err := row.Scan(
		&i.Code,
		&i.Symbol,
		&i.Name,
		&i.IsDefault,
		&i.ExchangeRate,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
