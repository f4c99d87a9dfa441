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

	"github.com/google/uuid"
)

const siteConfigColumns = `id, name, tagline, contact_email, contact_phone, address,
    primary_color, secondary_color, logo_url, currency_display, created_at, updated_at`

const getSiteConfig = `-- name: GetSiteConfig :one
SELECT ` + siteConfigColumns + `
FROM site_configs
ORDER BY created_at, id
LIMIT 1
`

// GetSiteConfig returns the oldest row, which is the authoritative one.
func (q *Queries) GetSiteConfig(ctx context.Context) (SiteConfig, error) {
	row := q.db.QueryRow(ctx, getSiteConfig)
	var i SiteConfig
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Tagline,
		&i.ContactEmail,
		&i.ContactPhone,
		&i.Address,
		&i.PrimaryColor,
		&i.SecondaryColor,
		&i.LogoUrl,
		&i.CurrencyDisplay,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertSiteConfig = `-- name: InsertSiteConfig :one
INSERT INTO site_configs (name, tagline, contact_email, contact_phone, address,
    primary_color, secondary_color, logo_url, currency_display)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id
`

type SiteConfigParams struct {
	Name            string `json:"name"`
	Tagline         string `json:"tagline"`
	ContactEmail    string `json:"contact_email"`
	ContactPhone    string `json:"contact_phone"`
	Address         string `json:"address"`
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	LogoUrl         string `json:"logo_url"`
	CurrencyDisplay string `json:"currency_display"`
}

func (q *Queries) InsertSiteConfig(ctx context.Context, arg SiteConfigParams) (uuid.UUID, error) {
	row := q.db.QueryRow(ctx, insertSiteConfig,
		arg.Name,
		arg.Tagline,
		arg.ContactEmail,
		arg.ContactPhone,
		arg.Address,
		arg.PrimaryColor,
		arg.SecondaryColor,
		arg.LogoUrl,
		arg.CurrencyDisplay,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const updateSiteConfig = `-- name: UpdateSiteConfig :exec
UPDATE site_configs
SET name = $2,
    tagline = $3,
    contact_email = $4,
    contact_phone = $5,
    address = $6,
    primary_color = $7,
    secondary_color = $8,
    logo_url = $9,
    currency_display = $10,
    updated_at = NOW()
WHERE id = $1
`

func (q *Queries) UpdateSiteConfig(ctx context.Context, id uuid.UUID, arg SiteConfigParams) error {
	_, err := q.db.Exec(ctx, updateSiteConfig,
		id,
		arg.Name,
		arg.Tagline,
		arg.ContactEmail,
		arg.ContactPhone,
		arg.Address,
		arg.PrimaryColor,
		arg.SecondaryColor,
		arg.LogoUrl,
		arg.CurrencyDisplay,
	)
	return err
}
