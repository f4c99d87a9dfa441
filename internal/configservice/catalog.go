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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cardinalhq/shopconfig/configdb"
)

// ListShippingServices returns shipping services ordered by priority, then
// name. The full list is cached once and filtered in memory.
func (s *Service) ListShippingServices(ctx context.Context, enabledOnly bool) ([]configdb.ShippingService, error) {
	e, _ := load(ctx, s, keyShipping, cacheConfiguredOnly, func(ctx context.Context) ([]configdb.ShippingService, error) {
		return s.store.ListShippingServices(ctx, false)
	})
	if e.Err != nil {
		return nil, fmt.Errorf("failed to list shipping services: %w", e.Err)
	}
	if !enabledOnly {
		return e.Value, nil
	}
	out := make([]configdb.ShippingService, 0, len(e.Value))
	for _, svc := range e.Value {
		if svc.Enabled {
			out = append(out, svc)
		}
	}
	return out, nil
}

// SetShippingService validates and saves a shipping service.
func (s *Service) SetShippingService(ctx context.Context, arg configdb.UpsertShippingServiceParams) (configdb.ShippingService, error) {
	if strings.TrimSpace(arg.Name) == "" {
		return configdb.ShippingService{}, fmt.Errorf("%w: shipping service name is empty", ErrInvalidInput)
	}
	if arg.BaseRate.IsNegative() {
		return configdb.ShippingService{}, fmt.Errorf("%w: base_rate %s is negative", ErrInvalidRange, arg.BaseRate)
	}
	if err := checkScale("base_rate", arg.BaseRate, moneyPlaces); err != nil {
		return configdb.ShippingService{}, err
	}
	if arg.EstimatedDays < 0 {
		return configdb.ShippingService{}, fmt.Errorf("%w: estimated_days %d is negative", ErrInvalidRange, arg.EstimatedDays)
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	row, err := s.store.UpsertShippingService(storeCtx, arg)
	if err != nil {
		return configdb.ShippingService{}, fmt.Errorf("failed to save shipping service %s: %w", arg.Name, classify(err))
	}

	s.cache.Invalidate(ctx, keyShipping)
	return row, nil
}

// ListPaymentGateways returns gateways ordered by priority, then name.
func (s *Service) ListPaymentGateways(ctx context.Context, activeOnly bool) ([]configdb.PaymentGateway, error) {
	e, _ := load(ctx, s, keyGateways, cacheConfiguredOnly, func(ctx context.Context) ([]configdb.PaymentGateway, error) {
		return s.store.ListPaymentGateways(ctx, false)
	})
	if e.Err != nil {
		return nil, fmt.Errorf("failed to list payment gateways: %w", e.Err)
	}
	if !activeOnly {
		return e.Value, nil
	}
	out := make([]configdb.PaymentGateway, 0, len(e.Value))
	for _, gw := range e.Value {
		if gw.Active {
			out = append(out, gw)
		}
	}
	return out, nil
}

// IsPaymentGatewayEnabled reports whether the gateway exists and is active.
// Any failure reads as disabled.
func (s *Service) IsPaymentGatewayEnabled(ctx context.Context, code string) bool {
	gateways, err := s.ListPaymentGateways(ctx, true)
	if err != nil {
		recordResolution(ctx, "payment_gateway", OutcomeUnavailable.String())
		return false
	}
	for _, gw := range gateways {
		if gw.Code == code {
			recordResolution(ctx, "payment_gateway", OutcomeConfigured.String())
			return true
		}
	}
	recordResolution(ctx, "payment_gateway", OutcomeNotConfigured.String())
	return false
}

// SetPaymentGateway validates and saves a gateway. Credentials must be a
// JSON object when present; they are stored but never logged.
func (s *Service) SetPaymentGateway(ctx context.Context, arg configdb.UpsertPaymentGatewayParams) (configdb.PaymentGateway, error) {
	if strings.TrimSpace(arg.Code) == "" || strings.TrimSpace(arg.Name) == "" {
		return configdb.PaymentGateway{}, fmt.Errorf("%w: payment gateway code and name are required", ErrInvalidInput)
	}
	if len(arg.Credentials) > 0 {
		var obj map[string]any
		if err := json.Unmarshal(arg.Credentials, &obj); err != nil || obj == nil {
			return configdb.PaymentGateway{}, fmt.Errorf("%w: payment gateway %s credentials are not a JSON object", ErrInvalidInput, arg.Code)
		}
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	row, err := s.store.UpsertPaymentGateway(storeCtx, arg)
	if err != nil {
		return configdb.PaymentGateway{}, fmt.Errorf("failed to save payment gateway %s: %w", arg.Code, classify(err))
	}

	s.cache.Invalidate(ctx, keyGateways)
	return row, nil
}
