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

package bootstrap

import (
	"github.com/shopspring/decimal"
)

// File is the YAML document accepted by the one-time import.
type File struct {
	Version          int              `yaml:"version" json:"version"`
	Site             *Site            `yaml:"site,omitempty" json:"site,omitempty"`
	FeatureFlags     []FeatureFlag    `yaml:"feature_flags,omitempty" json:"feature_flags,omitempty"`
	ServiceFees      []ServiceFee     `yaml:"service_fees,omitempty" json:"service_fees,omitempty"`
	Taxes            []Tax            `yaml:"taxes,omitempty" json:"taxes,omitempty"`
	Currencies       []Currency       `yaml:"currencies,omitempty" json:"currencies,omitempty"`
	ShippingServices []ShippingMethod `yaml:"shipping_services,omitempty" json:"shipping_services,omitempty"`
	PaymentGateways  []PaymentGateway `yaml:"payment_gateways,omitempty" json:"payment_gateways,omitempty"`
}

// Site matches the site_configs row.
type Site struct {
	Name            string `yaml:"name" json:"name"`
	Tagline         string `yaml:"tagline,omitempty" json:"tagline,omitempty"`
	ContactEmail    string `yaml:"contact_email,omitempty" json:"contact_email,omitempty"`
	ContactPhone    string `yaml:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	Address         string `yaml:"address,omitempty" json:"address,omitempty"`
	PrimaryColor    string `yaml:"primary_color,omitempty" json:"primary_color,omitempty"`
	SecondaryColor  string `yaml:"secondary_color,omitempty" json:"secondary_color,omitempty"`
	LogoURL         string `yaml:"logo_url,omitempty" json:"logo_url,omitempty"`
	CurrencyDisplay string `yaml:"currency_display,omitempty" json:"currency_display,omitempty"` // symbol or code
}

type FeatureFlag struct {
	Name        string `yaml:"name" json:"name"`
	Enabled     bool   `yaml:"enabled" json:"enabled"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ServiceFee matches service_fee_configs. At most one may be active.
type ServiceFee struct {
	Name          string           `yaml:"name" json:"name"`
	FeePercentage decimal.Decimal  `yaml:"fee_percentage" json:"fee_percentage"`
	MinFee        decimal.Decimal  `yaml:"min_fee" json:"min_fee"`
	MaxFee        *decimal.Decimal `yaml:"max_fee,omitempty" json:"max_fee,omitempty"`
	Active        bool             `yaml:"active" json:"active"`
}

type Tax struct {
	Country string          `yaml:"country" json:"country"`
	TaxRate decimal.Decimal `yaml:"tax_rate" json:"tax_rate"`
	Active  bool            `yaml:"active" json:"active"`
}

// Currency matches currency_configs. Exactly one entry must be the default
// when any are listed.
type Currency struct {
	Code         string          `yaml:"code" json:"code"`
	Symbol       string          `yaml:"symbol" json:"symbol"`
	Name         string          `yaml:"name" json:"name"`
	ExchangeRate decimal.Decimal `yaml:"exchange_rate" json:"exchange_rate"`
	Active       bool            `yaml:"active" json:"active"`
	IsDefault    bool            `yaml:"is_default,omitempty" json:"is_default,omitempty"`
}

type ShippingMethod struct {
	Name          string          `yaml:"name" json:"name"`
	Description   string          `yaml:"description,omitempty" json:"description,omitempty"`
	BaseRate      decimal.Decimal `yaml:"base_rate" json:"base_rate"`
	EstimatedDays int32           `yaml:"estimated_days" json:"estimated_days"`
	Priority      int32           `yaml:"priority" json:"priority"`
	Enabled       bool            `yaml:"enabled" json:"enabled"`
}

type PaymentGateway struct {
	Code        string         `yaml:"code" json:"code"`
	Name        string         `yaml:"name" json:"name"`
	Priority    int32          `yaml:"priority" json:"priority"`
	Active      bool           `yaml:"active" json:"active"`
	Sandbox     bool           `yaml:"sandbox" json:"sandbox"`
	Credentials map[string]any `yaml:"credentials,omitempty" json:"-"` // never logged
}
