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

const listPaymentGateways = `-- name: ListPaymentGateways :many
SELECT code, name, priority, active, sandbox, credentials, created_at, updated_at
FROM payment_gateways
WHERE active OR NOT $1::boolean
ORDER BY priority, name
`

func (q *Queries) ListPaymentGateways(ctx context.Context, activeOnly bool) ([]PaymentGateway, error) {
	rows, err := q.db.Query(ctx, listPaymentGateways, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PaymentGateway
	for rows.Next() {
		var i PaymentGateway
		if err := rows.Scan(
			&i.Code,
			&i.Name,
			&i.Priority,
			&i.Active,
			&i.Sandbox,
			&i.Credentials,
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

const upsertPaymentGateway = `-- name: UpsertPaymentGateway :one
INSERT INTO payment_gateways (code, name, priority, active, sandbox, credentials)
VALUES ($1, $2, $3, $4, $5, COALESCE($6::jsonb, '{}'::jsonb))
ON CONFLICT (code) DO UPDATE
SET name = EXCLUDED.name,
    priority = EXCLUDED.priority,
    active = EXCLUDED.active,
    sandbox = EXCLUDED.sandbox,
    credentials = EXCLUDED.credentials,
    updated_at = NOW()
RETURNING code, name, priority, active, sandbox, credentials, created_at, updated_at
`

type UpsertPaymentGatewayParams struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Priority    int32  `json:"priority"`
	Active      bool   `json:"active"`
	Sandbox     bool   `json:"sandbox"`
	Credentials []byte `json:"-"`
}

func (q *Queries) UpsertPaymentGateway(ctx context.Context, arg UpsertPaymentGatewayParams) (PaymentGateway, error) {
	row := q.db.QueryRow(ctx, upsertPaymentGateway,
		arg.Code,
		arg.Name,
		arg.Priority,
		arg.Active,
		arg.Sandbox,
		arg.Credentials,
	)
	var i PaymentGateway
	err := row.Scan(
		&i.Code,
		&i.Name,
		&i.Priority,
		&i.Active,
		&i.Sandbox,
		&i.Credentials,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
