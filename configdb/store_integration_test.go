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

//go:build integration
// +build integration

package configdb_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/shopconfig/configdb"
	"github.com/cardinalhq/shopconfig/testhelpers"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testhelpers.StopContainer()
	os.Exit(code)
}

func seedCurrencies(t *testing.T, ctx context.Context, store *configdb.Store, codes ...string) {
	t.Helper()
	for _, code := range codes {
		_, err := store.UpsertCurrencyConfig(ctx, configdb.UpsertCurrencyConfigParams{
			Code:         code,
			Symbol:       code,
			Name:         code,
			ExchangeRate: decimal.NewFromInt(1),
			Active:       true,
		})
		require.NoError(t, err)
	}
}

func TestSetDefaultCurrency(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewTestConfigDBStore(t)
	seedCurrencies(t, ctx, store, "NGN", "USD", "EUR")

	t.Run("first default", func(t *testing.T) {
		previous, err := store.SetDefaultCurrency(ctx, "NGN")
		require.NoError(t, err)
		assert.Empty(t, previous)

		def, err := store.GetDefaultCurrencyConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, "NGN", def.Code)
	})

	t.Run("switch demotes previous", func(t *testing.T) {
		previous, err := store.SetDefaultCurrency(ctx, "USD")
		require.NoError(t, err)
		assert.Equal(t, "NGN", previous)

		ngn, err := store.GetCurrencyConfig(ctx, "NGN")
		require.NoError(t, err)
		assert.False(t, ngn.IsDefault)

		count, err := store.CountDefaultCurrencies(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("repeat is a no-op", func(t *testing.T) {
		before, err := store.GetCurrencyConfig(ctx, "USD")
		require.NoError(t, err)

		previous, err := store.SetDefaultCurrency(ctx, "USD")
		require.NoError(t, err)
		assert.Equal(t, "USD", previous)

		after, err := store.GetCurrencyConfig(ctx, "USD")
		require.NoError(t, err)
		assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
	})

	t.Run("unknown code changes nothing", func(t *testing.T) {
		_, err := store.SetDefaultCurrency(ctx, "XXX")
		require.Error(t, err)
		assert.True(t, errors.Is(err, pgx.ErrNoRows))

		def, err := store.GetDefaultCurrencyConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, "USD", def.Code)
	})

	t.Run("concurrent switches leave exactly one default", func(t *testing.T) {
		var wg sync.WaitGroup
		for _, code := range []string{"NGN", "USD", "EUR", "NGN", "EUR", "USD"} {
			wg.Add(1)
			go func(code string) {
				defer wg.Done()
				_, err := store.SetDefaultCurrency(ctx, code)
				assert.NoError(t, err)
			}(code)
		}
		wg.Wait()

		count, err := store.CountDefaultCurrencies(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("index rejects a second default", func(t *testing.T) {
		_, err := store.Pool().Exec(ctx, `UPDATE currency_configs SET is_default = TRUE`)
		require.Error(t, err)
		var pgErr *pgconn.PgError
		require.True(t, errors.As(err, &pgErr))
		assert.Equal(t, "23505", pgErr.Code)
	})
}

func TestUpsertServiceFeeConfig(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewTestConfigDBStore(t)

	maxFee := decimal.NewFromInt(50)
	_, err := store.UpsertServiceFeeConfig(ctx, configdb.UpsertServiceFeeConfigParams{
		Name:          "standard",
		FeePercentage: decimal.RequireFromString("2.5"),
		MinFee:        decimal.NewFromInt(1),
		MaxFee:        &maxFee,
		Active:        true,
	})
	require.NoError(t, err)

	active, err := store.GetActiveServiceFeeConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "standard", active.Name)
	require.NotNil(t, active.MaxFee)
	assert.True(t, maxFee.Equal(*active.MaxFee))

	_, err = store.UpsertServiceFeeConfig(ctx, configdb.UpsertServiceFeeConfigParams{
		Name:          "promo",
		FeePercentage: decimal.NewFromInt(1),
		MinFee:        decimal.Zero,
		Active:        true,
	})
	require.NoError(t, err)

	all, err := store.ListServiceFeeConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	activeCount := 0
	for _, c := range all {
		if c.Active {
			activeCount++
			assert.Equal(t, "promo", c.Name)
		}
	}
	assert.Equal(t, 1, activeCount)

	t.Run("inactive write leaves the active policy alone", func(t *testing.T) {
		_, err := store.UpsertServiceFeeConfig(ctx, configdb.UpsertServiceFeeConfigParams{
			Name:          "standard",
			FeePercentage: decimal.NewFromInt(3),
			MinFee:        decimal.Zero,
			Active:        false,
		})
		require.NoError(t, err)

		active, err := store.GetActiveServiceFeeConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, "promo", active.Name)
	})

	t.Run("check constraint rejects out of range percentage", func(t *testing.T) {
		_, err := store.UpsertServiceFeeConfig(ctx, configdb.UpsertServiceFeeConfigParams{
			Name:          "broken",
			FeePercentage: decimal.NewFromInt(101),
			MinFee:        decimal.Zero,
		})
		var pgErr *pgconn.PgError
		require.True(t, errors.As(err, &pgErr))
		assert.Equal(t, "23514", pgErr.Code)
	})
}

func TestUpsertSiteConfig(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewTestConfigDBStore(t)

	_, err := store.GetSiteConfig(ctx)
	require.ErrorIs(t, err, pgx.ErrNoRows)

	first, err := store.UpsertSiteConfig(ctx, configdb.SiteConfigParams{Name: "Shop", PrimaryColor: "#000"})
	require.NoError(t, err)
	assert.Equal(t, "Shop", first.Name)

	second, err := store.UpsertSiteConfig(ctx, configdb.SiteConfigParams{Name: "Renamed", PrimaryColor: "#fff"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Renamed", second.Name)
	assert.Equal(t, "#fff", second.PrimaryColor)
}

func TestListOrdering(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewTestConfigDBStore(t)

	for _, s := range []configdb.UpsertShippingServiceParams{
		{Name: "express", BaseRate: decimal.NewFromInt(20), Priority: 1, Enabled: true},
		{Name: "economy", BaseRate: decimal.NewFromInt(5), Priority: 2, Enabled: true},
		{Name: "courier", BaseRate: decimal.NewFromInt(15), Priority: 1, Enabled: false},
	} {
		_, err := store.UpsertShippingService(ctx, s)
		require.NoError(t, err)
	}

	all, err := store.ListShippingServices(ctx, false)
	require.NoError(t, err)
	var names []string
	for _, s := range all {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"courier", "express", "economy"}, names)

	enabled, err := store.ListShippingServices(ctx, true)
	require.NoError(t, err)
	assert.Len(t, enabled, 2)

	_, err = store.UpsertPaymentGateway(ctx, configdb.UpsertPaymentGatewayParams{
		Code: "paystack", Name: "Paystack", Priority: 1, Active: true, Credentials: []byte(`{"key":"sk"}`),
	})
	require.NoError(t, err)
	_, err = store.UpsertPaymentGateway(ctx, configdb.UpsertPaymentGatewayParams{
		Code: "stripe", Name: "Stripe", Priority: 2,
	})
	require.NoError(t, err)

	gateways, err := store.ListPaymentGateways(ctx, true)
	require.NoError(t, err)
	require.Len(t, gateways, 1)
	assert.Equal(t, "paystack", gateways[0].Code)
	assert.JSONEq(t, `{"key":"sk"}`, string(gateways[0].Credentials))
}

func TestExecTxJoinsOuterTransaction(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewTestConfigDBStore(t)
	seedCurrencies(t, ctx, store, "NGN")

	boom := errors.New("boom")
	err := store.ExecTx(ctx, func(s *configdb.Store) error {
		_, err := s.UpsertFeatureFlag(ctx, configdb.UpsertFeatureFlagParams{Name: "checkout", Enabled: true})
		require.NoError(t, err)
		_, err = s.SetDefaultCurrency(ctx, "NGN")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = store.GetFeatureFlag(ctx, "checkout")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	_, err = store.GetDefaultCurrencyConfig(ctx)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
