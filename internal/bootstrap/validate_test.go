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
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	file, err := Load("testdata/shop.yaml")
	require.NoError(t, err)
	require.NoError(t, file.Validate())

	require.NotNil(t, file.Site)
	assert.Equal(t, "Lagos Market", file.Site.Name)
	assert.Equal(t, "symbol", file.Site.CurrencyDisplay, "defaulted")

	require.Len(t, file.ServiceFees, 2)
	require.NotNil(t, file.ServiceFees[1].MaxFee)
	assert.True(t, decimal.NewFromInt(50).Equal(*file.ServiceFees[1].MaxFee))
	assert.Nil(t, file.ServiceFees[0].MaxFee)

	require.Len(t, file.Taxes, 2)
	assert.True(t, decimal.RequireFromString("7.5").Equal(file.Taxes[0].TaxRate))
	assert.True(t, decimal.RequireFromString("12.5").Equal(file.Taxes[1].TaxRate))

	require.Len(t, file.Currencies, 2)
	assert.Equal(t, "NGN", file.Currencies[0].Code, "codes are upper-cased")
	assert.True(t, decimal.RequireFromString("0.00065").Equal(file.Currencies[1].ExchangeRate))

	require.Len(t, file.PaymentGateways, 1)
	assert.Equal(t, "sk_test_456", file.PaymentGateways[0].Credentials["secret_key"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("version: [1"))
	assert.Error(t, err)
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	file, err := Parse([]byte(`
version: 2
site:
  name: ""
  currency_display: fancy
feature_flags:
  - name: checkout
  - name: checkout
service_fees:
  - name: a
    fee_percentage: 101
    min_fee: -1
    active: true
  - name: b
    fee_percentage: 5
    min_fee: 10
    max_fee: 5
    active: true
taxes:
  - country: Nigeria
    tax_rate: -2
currencies:
  - code: US
    exchange_rate: 0
  - code: eur
    exchange_rate: 1
  - code: EUR
    exchange_rate: 1
shipping_services:
  - name: Express
    base_rate: -1
    estimated_days: -3
payment_gateways:
  - code: paystack
`))
	require.NoError(t, err)

	err = file.Validate()
	require.Error(t, err)

	for _, want := range []string{
		"unsupported config version 2",
		"site: name is required",
		`currency_display "fancy"`,
		`feature_flags[1]: duplicate name "checkout"`,
		"service_fees[0]: fee_percentage 101 is outside [0,100]",
		"service_fees[0]: min_fee -1 is negative",
		"service_fees[1]: max_fee 5 is below min_fee 10",
		"service_fees: 2 policies are active",
		"taxes[0]: tax_rate -2 is outside [0,100]",
		`currencies[0]: code "US" is not three letters`,
		"currencies[0]: exchange_rate 0 must be positive",
		`currencies[2]: duplicate code "EUR"`,
		"currencies: exactly one default is required, found 0",
		"shipping_services[0]: base_rate -1 is negative",
		"shipping_services[0]: estimated_days -3 is negative",
		"payment_gateways[0]: code and name are required",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidate_DecimalPlaces(t *testing.T) {
	file, err := Parse([]byte(`
version: 1
service_fees:
  - {name: standard, fee_percentage: 2.125, min_fee: 0.005, max_fee: 49.999, active: true}
taxes:
  - {country: Nigeria, tax_rate: 7.125}
  - {country: Ghana, tax_rate: 12.50}
currencies:
  - {code: NGN, exchange_rate: 1, is_default: true}
  - {code: USD, exchange_rate: 0.0000005}
shipping_services:
  - {name: Express, base_rate: 4.995}
`))
	require.NoError(t, err)

	err = file.Validate()
	require.Error(t, err)
	for _, want := range []string{
		"service_fees[0]: fee_percentage 2.125 has more than 2 decimal places",
		"service_fees[0]: min_fee 0.005 has more than 2 decimal places",
		"service_fees[0]: max_fee 49.999 has more than 2 decimal places",
		"taxes[0]: tax_rate 7.125 has more than 2 decimal places",
		"currencies[1]: exchange_rate 0.0000005 has more than 6 decimal places",
		"shipping_services[0]: base_rate 4.995 has more than 2 decimal places",
	} {
		assert.Contains(t, err.Error(), want)
	}
	assert.NotContains(t, err.Error(), "taxes[1]")
}

func TestValidate_DefaultCurrency(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"no currencies", "version: 1\n", false},
		{"one default", "version: 1\ncurrencies:\n  - {code: NGN, exchange_rate: 1, is_default: true}\n  - {code: USD, exchange_rate: 2}\n", false},
		{"two defaults", "version: 1\ncurrencies:\n  - {code: NGN, exchange_rate: 1, is_default: true}\n  - {code: USD, exchange_rate: 2, is_default: true}\n", true},
		{"no default", "version: 1\ncurrencies:\n  - {code: NGN, exchange_rate: 1}\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			if tt.wantErr {
				assert.Error(t, file.Validate())
			} else {
				assert.NoError(t, file.Validate())
			}
		})
	}
}
