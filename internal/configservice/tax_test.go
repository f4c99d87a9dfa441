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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardinalhq/shopconfig/configdb"
)

func TestResolveTax_Tiers(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	mock.taxes["Nigeria"] = configdb.TaxConfig{Country: "Nigeria", TaxRate: dec("2"), Active: true}
	mock.taxes["Ghana"] = configdb.TaxConfig{Country: "Ghana", TaxRate: dec("12.5"), Active: true}
	svc, _ := newTestService(t, mock)

	tests := []struct {
		name    string
		country string
		total   string
		amount  string
		tier    TaxTier
	}{
		{"configured", "Nigeria", "1000", "20", TaxTierConfigured},
		{"configured keeps fractional rate", "Ghana", "1000", "125", TaxTierConfigured},
		{"static table", "Kenya", "1000", "160", TaxTierStatic},
		{"neither", "Atlantis", "1000", "0", TaxTierNone},
		{"names are case sensitive", "nigeria", "1000", "0", TaxTierNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.ResolveTaxDetailed(ctx, tt.country, dec(tt.total))
			assert.True(t, dec(tt.amount).Equal(res.Amount), "amount %s", res.Amount)
			assert.Equal(t, tt.tier, res.Tier)
		})
	}
}

func TestResolveTax_StaticTableTruncatesRate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, newMockStore())

	res := svc.ResolveTaxDetailed(ctx, "Ghana", dec("1000"))
	assert.Equal(t, TaxTierStatic, res.Tier)
	assert.Equal(t, OutcomeNotConfigured, res.ConfiguredOutcome)
	assert.True(t, dec("12").Equal(res.Rate))
	assert.True(t, dec("120").Equal(res.Amount))

	assert.True(t, dec("20").Equal(svc.ResolveTax(ctx, "Nigeria", dec("1000"))))
}

func TestResolveTax_InactiveRowFallsThrough(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	mock.taxes["Nigeria"] = configdb.TaxConfig{Country: "Nigeria", TaxRate: dec("7.5"), Active: false}
	svc, _ := newTestService(t, mock)

	res := svc.ResolveTaxDetailed(ctx, "Nigeria", dec("1000"))
	assert.Equal(t, TaxTierStatic, res.Tier)
	assert.True(t, dec("20").Equal(res.Amount))
}

func TestResolveTax_StoreFailureUsesStaticTable(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	mock.taxes["Nigeria"] = configdb.TaxConfig{Country: "Nigeria", TaxRate: dec("7.5"), Active: true}
	mock.readErr = errors.New("connection refused")
	svc, _ := newTestService(t, mock)

	res := svc.ResolveTaxDetailed(ctx, "Nigeria", dec("1000"))
	assert.Equal(t, TaxTierStatic, res.Tier)
	assert.Equal(t, OutcomeUnavailable, res.ConfiguredOutcome)
	assert.True(t, dec("20").Equal(res.Amount))

	mock.readErr = nil
	res = svc.ResolveTaxDetailed(ctx, "Nigeria", dec("1000"))
	assert.Equal(t, TaxTierConfigured, res.Tier, "failures are not cached")
	assert.True(t, dec("75").Equal(res.Amount))
}

func TestResolveTax_CustomStaticTable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, newMockStore(), WithStaticTaxTable(map[string]string{
		"Freedonia": "9.9",
		"Sylvania":  "not-a-number",
	}))

	assert.True(t, dec("90").Equal(svc.ResolveTax(ctx, "Freedonia", dec("1000"))))
	assert.True(t, svc.ResolveTax(ctx, "Sylvania", dec("1000")).IsZero())
	assert.True(t, svc.ResolveTax(ctx, "Nigeria", dec("1000")).IsZero())
}

func TestSetTaxConfig(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	svc, _ := newTestService(t, mock)

	assert.Equal(t, TaxTierStatic, svc.ResolveTaxDetailed(ctx, "Nigeria", dec("1000")).Tier)

	_, err := svc.SetTaxConfig(ctx, "Nigeria", dec("7.5"), true)
	require.NoError(t, err)
	assert.True(t, dec("75").Equal(svc.ResolveTax(ctx, "Nigeria", dec("1000"))))

	_, err = svc.SetTaxConfig(ctx, "Nigeria", dec("7.5"), false)
	require.NoError(t, err)
	assert.True(t, dec("20").Equal(svc.ResolveTax(ctx, "Nigeria", dec("1000"))))
}

func TestSetTaxConfig_Validation(t *testing.T) {
	ctx := context.Background()
	mock := newMockStore()
	svc, _ := newTestService(t, mock)

	_, err := svc.SetTaxConfig(ctx, "", dec("5"), true)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.SetTaxConfig(ctx, "Nigeria", dec("101"), true)
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = svc.SetTaxConfig(ctx, "Nigeria", dec("-0.5"), true)
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = svc.SetTaxConfig(ctx, "Nigeria", dec("7.125"), true)
	assert.ErrorIs(t, err, ErrInvalidRange, "the column keeps two places")
	assert.Zero(t, mock.writes.Load())

	_, err = svc.SetTaxConfig(ctx, "Nigeria", dec("7.130"), true)
	assert.NoError(t, err, "trailing zeros are not extra precision")

	_, err = svc.SetTaxConfig(ctx, "Nigeria", dec("0"), true)
	assert.NoError(t, err)
}
