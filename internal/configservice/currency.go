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
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cardinalhq/shopconfig/configdb"
	"github.com/cardinalhq/shopconfig/internal/logctx"
)

// CurrencyInput is a currency write. IsDefault routes through
// SetDefaultCurrency after the row is saved.
type CurrencyInput struct {
	Code         string
	Symbol       string
	Name         string
	ExchangeRate decimal.Decimal
	Active       bool
	IsDefault    bool
}

// normalizeCurrencyCode upper-cases code and checks it is three ASCII letters.
func normalizeCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code %q is not three letters", ErrInvalidInput, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: currency code %q is not three letters", ErrInvalidInput, code)
		}
	}
	return code, nil
}

// GetDefaultCurrency returns the default currency. It fails with
// ErrNotConfigured before the first default is set, and with
// ErrTransientUnavailable when the store cannot be reached. Only found rows
// are cached.
func (s *Service) GetDefaultCurrency(ctx context.Context) (configdb.CurrencyConfig, error) {
	e, _ := load(ctx, s, keyDefaultCurrency, cacheConfiguredOnly, func(ctx context.Context) (configdb.CurrencyConfig, error) {
		return s.store.GetDefaultCurrencyConfig(ctx)
	})
	recordResolution(ctx, "default_currency", e.Outcome.String())
	if e.Err != nil {
		return configdb.CurrencyConfig{}, fmt.Errorf("failed to resolve default currency: %w", e.Err)
	}
	return e.Value, nil
}

// GetCurrency returns one currency by code.
func (s *Service) GetCurrency(ctx context.Context, code string) (configdb.CurrencyConfig, error) {
	code, err := normalizeCurrencyCode(code)
	if err != nil {
		return configdb.CurrencyConfig{}, err
	}
	e, _ := load(ctx, s, currencyKey(code), cacheResolved, func(ctx context.Context) (configdb.CurrencyConfig, error) {
		return s.store.GetCurrencyConfig(ctx, code)
	})
	if e.Err != nil {
		return configdb.CurrencyConfig{}, fmt.Errorf("failed to resolve currency %s: %w", code, e.Err)
	}
	return e.Value, nil
}

// ListCurrencies returns every currency ordered by code.
func (s *Service) ListCurrencies(ctx context.Context) ([]configdb.CurrencyConfig, error) {
	e, _ := load(ctx, s, keyCurrencies, cacheConfiguredOnly, func(ctx context.Context) ([]configdb.CurrencyConfig, error) {
		return s.store.ListCurrencyConfigs(ctx)
	})
	if e.Err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", e.Err)
	}
	return e.Value, nil
}

// SetDefaultCurrency makes code the single default currency. The demotion
// of the previous default and the promotion of code commit together, so no
// reader sees zero or two defaults. Calling it again with the same code
// changes nothing.
func (s *Service) SetDefaultCurrency(ctx context.Context, code string) error {
	code, err := normalizeCurrencyCode(code)
	if err != nil {
		return err
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	previous, err := s.store.SetDefaultCurrency(storeCtx, code)
	if err != nil {
		err = classify(err)
		if errors.Is(err, ErrInvariantViolation) {
			logctx.FromContext(ctx).Error("Default currency switch rolled back",
				slog.String("code", code),
				slog.Any("error", err))
		}
		return fmt.Errorf("failed to set default currency %s: %w", code, err)
	}

	keys := []string{keyDefaultCurrency, keyCurrencies, currencyKey(code)}
	if previous != "" && previous != code {
		keys = append(keys, currencyKey(previous))
	}
	s.cache.Invalidate(ctx, keys...)

	if previous != code {
		logctx.FromContext(ctx).Info("Default currency changed",
			slog.String("from", previous),
			slog.String("to", code))
	}
	return nil
}

// UpsertCurrency validates and saves a currency. When in.IsDefault is set
// it then becomes the default; the two steps are separate transactions, so
// a failure in the second leaves the saved row non-default.
func (s *Service) UpsertCurrency(ctx context.Context, in CurrencyInput) (configdb.CurrencyConfig, error) {
	code, err := normalizeCurrencyCode(in.Code)
	if err != nil {
		return configdb.CurrencyConfig{}, err
	}
	if !in.ExchangeRate.IsPositive() {
		return configdb.CurrencyConfig{}, fmt.Errorf("%w: exchange_rate %s must be positive", ErrInvalidRange, in.ExchangeRate)
	}
	if err := checkScale("exchange_rate", in.ExchangeRate, ratePlaces); err != nil {
		return configdb.CurrencyConfig{}, err
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	row, err := s.store.UpsertCurrencyConfig(storeCtx, configdb.UpsertCurrencyConfigParams{
		Code:         code,
		Symbol:       in.Symbol,
		Name:         in.Name,
		ExchangeRate: in.ExchangeRate,
		Active:       in.Active,
	})
	if err != nil {
		return configdb.CurrencyConfig{}, fmt.Errorf("failed to save currency %s: %w", code, classify(err))
	}

	// The row may be the current default, so its cached copy goes too.
	s.cache.Invalidate(ctx, currencyKey(code), keyCurrencies, keyDefaultCurrency)

	if in.IsDefault {
		if err := s.SetDefaultCurrency(ctx, code); err != nil {
			return row, err
		}
		row.IsDefault = true
	}
	return row, nil
}

// ConvertAmount converts amount from the default currency into code using
// code's exchange rate. Converting to the default returns amount unchanged.
func (s *Service) ConvertAmount(ctx context.Context, amount decimal.Decimal, code string) (decimal.Decimal, error) {
	def, err := s.GetDefaultCurrency(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	target, err := s.GetCurrency(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	if target.Code == def.Code {
		return amount, nil
	}
	if !target.Active {
		return decimal.Zero, fmt.Errorf("%w: currency %s is inactive", ErrNotConfigured, target.Code)
	}
	return amount.Mul(target.ExchangeRate), nil
}
