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
	"context"

	"github.com/google/uuid"
)

type Querier interface {
	AcquireXactLock(ctx context.Context, key int64) error
	ClearOtherDefaultCurrencies(ctx context.Context, keep string) (int64, error)
	CountDefaultCurrencies(ctx context.Context) (int64, error)
	DeactivateOtherServiceFeeConfigs(ctx context.Context, keep string) (int64, error)
	GetActiveServiceFeeConfig(ctx context.Context) (ServiceFeeConfig, error)
	GetCurrencyConfig(ctx context.Context, code string) (CurrencyConfig, error)
	GetDefaultCurrencyConfig(ctx context.Context) (CurrencyConfig, error)
	GetFeatureFlag(ctx context.Context, name string) (FeatureFlag, error)
	GetServiceFeeConfigByName(ctx context.Context, name string) (ServiceFeeConfig, error)
	GetSiteConfig(ctx context.Context) (SiteConfig, error)
	GetTaxConfig(ctx context.Context, country string) (TaxConfig, error)
	InsertSiteConfig(ctx context.Context, arg SiteConfigParams) (uuid.UUID, error)
	ListCurrencyConfigs(ctx context.Context) ([]CurrencyConfig, error)
	ListFeatureFlags(ctx context.Context) ([]FeatureFlag, error)
	ListPaymentGateways(ctx context.Context, activeOnly bool) ([]PaymentGateway, error)
	ListServiceFeeConfigs(ctx context.Context) ([]ServiceFeeConfig, error)
	ListShippingServices(ctx context.Context, enabledOnly bool) ([]ShippingService, error)
	ListTaxConfigs(ctx context.Context) ([]TaxConfig, error)
	MarkDefaultCurrency(ctx context.Context, code string) (int64, error)
	UpdateSiteConfig(ctx context.Context, id uuid.UUID, arg SiteConfigParams) error
	UpsertCurrencyConfig(ctx context.Context, arg UpsertCurrencyConfigParams) (CurrencyConfig, error)
	UpsertFeatureFlag(ctx context.Context, arg UpsertFeatureFlagParams) (FeatureFlag, error)
	UpsertPaymentGateway(ctx context.Context, arg UpsertPaymentGatewayParams) (PaymentGateway, error)
	UpsertServiceFeeConfigRow(ctx context.Context, arg UpsertServiceFeeConfigParams) (ServiceFeeConfig, error)
	UpsertShippingService(ctx context.Context, arg UpsertShippingServiceParams) (ShippingService, error)
	UpsertTaxConfig(ctx context.Context, arg UpsertTaxConfigParams) (TaxConfig, error)
}

var _ Querier = (*Queries)(nil)
