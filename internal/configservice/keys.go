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

// Cache keys. Per-entity keys are a prefix plus the entity key.
const (
	keyServiceFee      = "service_fee_config"
	keyDefaultCurrency = "currency:default"
	keyCurrencies      = "currencies"
	keySiteConfig      = "site_config"
	keyShipping        = "shipping_services"
	keyGateways        = "payment_gateways"

	prefixFlag     = "flag:"
	prefixTax      = "tax:"
	prefixCurrency = "currency:"
)

func flagKey(name string) string     { return prefixFlag + name }
func taxKey(country string) string   { return prefixTax + country }
func currencyKey(code string) string { return prefixCurrency + code }
