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
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CurrencyConfig struct {
	Code         string          `json:"code"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	IsDefault    bool            `json:"is_default"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type FeatureFlag struct {
	Name        string    `json:"name"`
	Enabled     bool      `json:"enabled"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PaymentGateway struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Priority int32  `json:"priority"`
	Active   bool   `json:"active"`
	Sandbox  bool   `json:"sandbox"`
	// Credentials is opaque JSON and is never logged.
	Credentials []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ServiceFeeConfig struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	FeePercentage decimal.Decimal  `json:"fee_percentage"`
	MinFee        decimal.Decimal  `json:"min_fee"`
	MaxFee        *decimal.Decimal `json:"max_fee"`
	Active        bool             `json:"active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type ShippingService struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	BaseRate      decimal.Decimal `json:"base_rate"`
	EstimatedDays int32           `json:"estimated_days"`
	Priority      int32           `json:"priority"`
	Enabled       bool            `json:"enabled"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type SiteConfig struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Tagline         string    `json:"tagline"`
	ContactEmail    string    `json:"contact_email"`
	ContactPhone    string    `json:"contact_phone"`
	Address         string    `json:"address"`
	PrimaryColor    string    `json:"primary_color"`
	SecondaryColor  string    `json:"secondary_color"`
	LogoUrl         string    `json:"logo_url"`
	CurrencyDisplay string    `json:"currency_display"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type TaxConfig struct {
	Country   string          `json:"country"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
