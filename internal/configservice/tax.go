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

package configservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cardinalhq/shopconfig/configdb"
	"github.com/cardinalhq/shopconfig/internal/logctx"
)

// DefaultStaticTaxTable returns the built-in rates used when a country has
// no configured tax row. Keys match country names exactly.
func DefaultStaticTaxTable() map[string]string {
	return map[string]string{
		"Nigeria":        "2",
		"Ghana":          "12.5",
		"Kenya":          "16",
		"South Africa":   "15",
		"Egypt":          "14",
		"United Kingdom": "20",
		"Germany":        "19",
		"France":         "20",
		"Canada":         "5",
		"India":          "18",
	}
}

// ResolveTax returns the tax owed on orderTotal for country. It never fails;
// when nothing matches the tax is zero.
func (s *Service) ResolveTax(ctx context.Context, country string, orderTotal decimal.Decimal) decimal.Decimal {
	return s.ResolveTaxDetailed(ctx, country, orderTotal).Amount
}

// ResolveTaxDetailed tries, in order:
//
//  1. the active configured row for country: total * rate / 100 at full precision
//  2. the static table: truncate(rate) / 100 * total, so 12.5 is charged as 12
//  3. zero
func (s *Service) ResolveTaxDetailed(ctx context.Context, country string, orderTotal decimal.Decimal) TaxResolution {
	e, _ := load(ctx, s, taxKey(country), cacheResolved, func(ctx context.Context) (configdb.TaxConfig, error) {
		return s.store.GetTaxConfig(ctx, country)
	})

	res := TaxResolution{
		Country:           country,
		Amount:            decimal.Zero,
		Rate:              decimal.Zero,
		Tier:              TaxTierNone,
		ConfiguredOutcome: e.Outcome,
	}

	switch {
	case e.Outcome == OutcomeConfigured && e.Value.Active:
		res.Rate = e.Value.TaxRate
		res.Amount = orderTotal.Mul(e.Value.TaxRate).Div(hundred)
		res.Tier = TaxTierConfigured
	default:
		if rate, ok := s.staticRate(ctx, country); ok {
			res.Rate = rate.Truncate(0)
			res.Amount = res.Rate.Div(hundred).Mul(orderTotal)
			res.Tier = TaxTierStatic
		}
	}

	recordResolution(ctx, "tax", res.Tier.String())
	return res
}

func (s *Service) staticRate(ctx context.Context, country string) (decimal.Decimal, bool) {
	raw, ok := s.staticTax[country]
	if !ok {
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		logctx.FromContext(ctx).Warn("Ignoring malformed static tax rate",
			slog.String("country", country),
			slog.String("rate", raw))
		return decimal.Zero, false
	}
	return rate, true
}

// SetTaxConfig validates and persists a country's tax rate, then drops its
// cache entry.
func (s *Service) SetTaxConfig(ctx context.Context, country string, rate decimal.Decimal, active bool) (configdb.TaxConfig, error) {
	if strings.TrimSpace(country) == "" {
		return configdb.TaxConfig{}, fmt.Errorf("%w: tax country is empty", ErrInvalidInput)
	}
	if err := checkPercentage("tax_rate", rate); err != nil {
		return configdb.TaxConfig{}, err
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	row, err := s.store.UpsertTaxConfig(storeCtx, configdb.UpsertTaxConfigParams{
		Country: country,
		TaxRate: rate,
		Active:  active,
	})
	if err != nil {
		return configdb.TaxConfig{}, fmt.Errorf("failed to save tax config %s: %w", country, classify(err))
	}

	s.cache.Invalidate(ctx, taxKey(country))
	return row, nil
}
