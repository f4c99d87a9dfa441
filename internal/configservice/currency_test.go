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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/shopconfig/configdb"
)

func seedCurrencies(m *mockStore) {
	m.currencies["NGN"] = configdb.CurrencyConfig{Code: "NGN", Symbol: "₦", Name: "Naira", ExchangeRate: dec("1"), Active: true}
	m.currencies["USD"] = configdb.CurrencyConfig{Code: "USD", Symbol: "$", Name: "US Dollar", ExchangeRate: dec("0.00065"), Active: true}
	m.currencies["EUR"] = configdb.CurrencyConfig{Code: "EUR", Symbol: "€", Name: "Euro", ExchangeRate: dec("0.0006"), Active: true}
	m.currencies["GHS"] = configdb.CurrencyConfig{Code: "GHS", Symbol: "₵", Name: "Cedi", ExchangeRate: dec("0.0075"), Active: false}
}

func TestSetDefaultCurrency_ExactlyOneDefault(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	seedCurrencies(mock)
	svc, _ := newTestService(t, mock)

	for _, code := range []string{"NGN", "USD", "USD", "eur", "NGN"} {
		require.NoError(t, svc.SetDefaultCurrency(ctx, code))
		assert.Equal(t, 1, mock.defaultCount(), "after %s", code)

		def, err := svc.GetDefaultCurrency(ctx)
		require.NoError(t, err)
		assert.Equal(t, normalizeOrFail(t, code), def.Code)
	}
}

func normalizeOrFail(t *testing.T, code string) string {
	t.Helper()
	out, err := normalizeCurrencyCode(code)
	require.NoError(t, err)
	return out
}

func TestSetDefaultCurrency_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown code", func(t *testing.T) {
		mock := newMockStore()
		seedCurrencies(mock)
		svc, _ := newTestService(t, mock)
		require.NoError(t, svc.SetDefaultCurrency(ctx, "NGN"))

		err := svc.SetDefaultCurrency(ctx, "JPY")
		assert.ErrorIs(t, err, ErrNotConfigured)

		def, err := svc.GetDefaultCurrency(ctx)
		require.NoError(t, err)
		assert.Equal(t, "NGN", def.Code)
	})

	t.Run("malformed code", func(t *testing.T) {
		mock := newMockStore()
		svc, _ := newTestService(t, mock)
		for _, code := range []string{"", "US", "USDT", "U$D"} {
			assert.ErrorIs(t, svc.SetDefaultCurrency(ctx, code), ErrInvalidInput, code)
		}
		assert.Zero(t, mock.writes.Load())
	})

	t.Run("recount mismatch", func(t *testing.T) {
		mock := newMockStore()
		seedCurrencies(mock)
		mock.breakDefaults = true
		svc, _ := newTestService(t, mock)

		err := svc.SetDefaultCurrency(ctx, "USD")
		assert.ErrorIs(t, err, ErrInvariantViolation)
		assert.Zero(t, mock.defaultCount())
	})

	t.Run("store timeout", func(t *testing.T) {
		mock := newMockStore()
		seedCurrencies(mock)
		mock.writeErr = context.DeadlineExceeded
		svc, _ := newTestService(t, mock)

		assert.ErrorIs(t, svc.SetDefaultCurrency(ctx, "USD"), ErrTransientUnavailable)
	})
}

func TestSetDefaultCurrency_InvalidatesCachedRows(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	seedCurrencies(mock)
	svc, _ := newTestService(t, mock)
	require.NoError(t, svc.SetDefaultCurrency(ctx, "NGN"))

	ngn, err := svc.GetCurrency(ctx, "NGN")
	require.NoError(t, err)
	assert.True(t, ngn.IsDefault)
	list, err := svc.ListCurrencies(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)

	require.NoError(t, svc.SetDefaultCurrency(ctx, "USD"))

	ngn, err = svc.GetCurrency(ctx, "ngn")
	require.NoError(t, err)
	assert.False(t, ngn.IsDefault, "previous default is reloaded")

	usd, err := svc.GetCurrency(ctx, "USD")
	require.NoError(t, err)
	assert.True(t, usd.IsDefault)

	list, err = svc.ListCurrencies(ctx)
	require.NoError(t, err)
	defaults := 0
	for _, c := range list {
		if c.IsDefault {
			defaults++
			assert.Equal(t, "USD", c.Code)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestGetDefaultCurrency_MissingIsNotCached(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	seedCurrencies(mock)
	svc, _ := newTestService(t, mock)

	_, err := svc.GetDefaultCurrency(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = svc.GetDefaultCurrency(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, int32(2), mock.defaultReads.Load())

	mock.readErr = context.DeadlineExceeded
	_, err = svc.GetDefaultCurrency(ctx)
	assert.ErrorIs(t, err, ErrTransientUnavailable)
}

func TestUpsertCurrency(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	seedCurrencies(mock)
	svc, _ := newTestService(t, mock)
	require.NoError(t, svc.SetDefaultCurrency(ctx, "NGN"))

	def, err := svc.GetDefaultCurrency(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Naira", def.Name)

	row, err := svc.UpsertCurrency(ctx, CurrencyInput{
		Code: "ngn", Symbol: "₦", Name: "Nigerian Naira", ExchangeRate: dec("1"), Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "NGN", row.Code)

	def, err = svc.GetDefaultCurrency(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Nigerian Naira", def.Name, "cached default is dropped on update")

	row, err = svc.UpsertCurrency(ctx, CurrencyInput{
		Code: "KES", Symbol: "KSh", Name: "Shilling", ExchangeRate: dec("0.085"), Active: true, IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, row.IsDefault)
	assert.Equal(t, 1, mock.defaultCount())

	def, err = svc.GetDefaultCurrency(ctx)
	require.NoError(t, err)
	assert.Equal(t, "KES", def.Code)
}

func TestUpsertCurrency_Validation(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	svc, _ := newTestService(t, mock)

	_, err := svc.UpsertCurrency(ctx, CurrencyInput{Code: "XX", ExchangeRate: dec("1")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.UpsertCurrency(ctx, CurrencyInput{Code: "USD", ExchangeRate: dec("0")})
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = svc.UpsertCurrency(ctx, CurrencyInput{Code: "USD", ExchangeRate: dec("-2")})
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = svc.UpsertCurrency(ctx, CurrencyInput{Code: "USD", ExchangeRate: dec("0.0000005")})
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Zero(t, mock.writes.Load())
}

func TestConvertAmount(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	seedCurrencies(mock)
	svc, _ := newTestService(t, mock)

	_, err := svc.ConvertAmount(ctx, dec("1000"), "USD")
	assert.ErrorIs(t, err, ErrNotConfigured, "no default yet")

	require.NoError(t, svc.SetDefaultCurrency(ctx, "NGN"))

	got, err := svc.ConvertAmount(ctx, dec("1000"), "USD")
	require.NoError(t, err)
	assert.True(t, dec("0.65").Equal(got), "got %s", got)

	got, err = svc.ConvertAmount(ctx, dec("1000"), "ngn")
	require.NoError(t, err)
	assert.True(t, dec("1000").Equal(got))

	_, err = svc.ConvertAmount(ctx, dec("1000"), "GHS")
	assert.ErrorIs(t, err, ErrNotConfigured, "inactive target")

	_, err = svc.ConvertAmount(ctx, dec("1000"), "JPY")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
