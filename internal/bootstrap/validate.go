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
	"encoding/json"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// normalize trims keys and upper-cases currency codes so that duplicate
// detection and the stored rows agree.
func (f *File) normalize() {
	if f.Site != nil && f.Site.CurrencyDisplay == "" {
		f.Site.CurrencyDisplay = "symbol"
	}
	for i := range f.FeatureFlags {
		f.FeatureFlags[i].Name = strings.TrimSpace(f.FeatureFlags[i].Name)
	}
	for i := range f.ServiceFees {
		f.ServiceFees[i].Name = strings.TrimSpace(f.ServiceFees[i].Name)
	}
	for i := range f.Taxes {
		f.Taxes[i].Country = strings.TrimSpace(f.Taxes[i].Country)
	}
	for i := range f.Currencies {
		f.Currencies[i].Code = strings.ToUpper(strings.TrimSpace(f.Currencies[i].Code))
	}
	for i := range f.ShippingServices {
		f.ShippingServices[i].Name = strings.TrimSpace(f.ShippingServices[i].Name)
	}
	for i := range f.PaymentGateways {
		f.PaymentGateways[i].Code = strings.TrimSpace(f.PaymentGateways[i].Code)
	}
}

// Validate checks the whole document and reports every problem at once.
func (f *File) Validate() error {
	var errs *multierror.Error

	if f.Version != SupportedVersion {
		errs = multierror.Append(errs, fmt.Errorf("unsupported config version %d, expected %d", f.Version, SupportedVersion))
	}

	if f.Site != nil {
		if f.Site.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("site: name is required"))
		}
		if f.Site.CurrencyDisplay != "symbol" && f.Site.CurrencyDisplay != "code" {
			errs = multierror.Append(errs, fmt.Errorf("site: currency_display %q must be symbol or code", f.Site.CurrencyDisplay))
		}
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	for i, flag := range f.FeatureFlags {
		if flag.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("feature_flags[%d]: name is required", i))
		} else if !seen.Add(flag.Name) {
			errs = multierror.Append(errs, fmt.Errorf("feature_flags[%d]: duplicate name %q", i, flag.Name))
		}
	}

	seen.Clear()
	active := 0
	for i, fee := range f.ServiceFees {
		at := fmt.Sprintf("service_fees[%d]", i)
		if fee.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("%s: name is required", at))
		} else if !seen.Add(fee.Name) {
			errs = multierror.Append(errs, fmt.Errorf("%s: duplicate name %q", at, fee.Name))
		}
		errs = checkPercentage(errs, at, "fee_percentage", fee.FeePercentage)
		if fee.MinFee.IsNegative() {
			errs = multierror.Append(errs, fmt.Errorf("%s: min_fee %s is negative", at, fee.MinFee))
		}
		errs = checkScale(errs, at, "min_fee", fee.MinFee, 2)
		if fee.MaxFee != nil {
			if fee.MaxFee.LessThan(fee.MinFee) {
				errs = multierror.Append(errs, fmt.Errorf("%s: max_fee %s is below min_fee %s", at, fee.MaxFee, fee.MinFee))
			}
			errs = checkScale(errs, at, "max_fee", *fee.MaxFee, 2)
		}
		if fee.Active {
			active++
		}
	}
	if active > 1 {
		errs = multierror.Append(errs, fmt.Errorf("service_fees: %d policies are active, at most one may be", active))
	}

	seen.Clear()
	for i, tax := range f.Taxes {
		at := fmt.Sprintf("taxes[%d]", i)
		if tax.Country == "" {
			errs = multierror.Append(errs, fmt.Errorf("%s: country is required", at))
		} else if !seen.Add(tax.Country) {
			errs = multierror.Append(errs, fmt.Errorf("%s: duplicate country %q", at, tax.Country))
		}
		errs = checkPercentage(errs, at, "tax_rate", tax.TaxRate)
	}

	seen.Clear()
	defaults := mapset.NewThreadUnsafeSet[string]()
	for i, cur := range f.Currencies {
		at := fmt.Sprintf("currencies[%d]", i)
		if !isCurrencyCode(cur.Code) {
			errs = multierror.Append(errs, fmt.Errorf("%s: code %q is not three letters", at, cur.Code))
		} else if !seen.Add(cur.Code) {
			errs = multierror.Append(errs, fmt.Errorf("%s: duplicate code %q", at, cur.Code))
		}
		if !cur.ExchangeRate.IsPositive() {
			errs = multierror.Append(errs, fmt.Errorf("%s: exchange_rate %s must be positive", at, cur.ExchangeRate))
		}
		errs = checkScale(errs, at, "exchange_rate", cur.ExchangeRate, 6)
		if cur.IsDefault {
			defaults.Add(cur.Code)
		}
	}
	if len(f.Currencies) > 0 && defaults.Cardinality() != 1 {
		errs = multierror.Append(errs, fmt.Errorf("currencies: exactly one default is required, found %d", defaults.Cardinality()))
	}

	seen.Clear()
	for i, ship := range f.ShippingServices {
		at := fmt.Sprintf("shipping_services[%d]", i)
		if ship.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("%s: name is required", at))
		} else if !seen.Add(ship.Name) {
			errs = multierror.Append(errs, fmt.Errorf("%s: duplicate name %q", at, ship.Name))
		}
		if ship.BaseRate.IsNegative() {
			errs = multierror.Append(errs, fmt.Errorf("%s: base_rate %s is negative", at, ship.BaseRate))
		}
		errs = checkScale(errs, at, "base_rate", ship.BaseRate, 2)
		if ship.EstimatedDays < 0 {
			errs = multierror.Append(errs, fmt.Errorf("%s: estimated_days %d is negative", at, ship.EstimatedDays))
		}
	}

	seen.Clear()
	for i, gw := range f.PaymentGateways {
		at := fmt.Sprintf("payment_gateways[%d]", i)
		if gw.Code == "" || gw.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("%s: code and name are required", at))
		} else if !seen.Add(gw.Code) {
			errs = multierror.Append(errs, fmt.Errorf("%s: duplicate code %q", at, gw.Code))
		}
		if _, err := json.Marshal(gw.Credentials); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: credentials cannot be encoded: %w", at, err))
		}
	}

	return errs.ErrorOrNil()
}

func checkPercentage(errs *multierror.Error, at, field string, v decimal.Decimal) *multierror.Error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return multierror.Append(errs, fmt.Errorf("%s: %s %s is outside [0,100]", at, field, v))
	}
	return checkScale(errs, at, field, v, 2)
}

// checkScale rejects values with more decimal places than their column holds.
func checkScale(errs *multierror.Error, at, field string, v decimal.Decimal, places int32) *multierror.Error {
	if !v.Equal(v.Truncate(places)) {
		return multierror.Append(errs, fmt.Errorf("%s: %s %s has more than %d decimal places", at, field, v, places))
	}
	return errs
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
