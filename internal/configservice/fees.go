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
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cardinalhq/shopconfig/configdb"
)

var hundred = decimal.NewFromInt(100)

// CalculateServiceFee returns the fee the active policy charges on
// orderTotal, or zero when no policy is active.
func (s *Service) CalculateServiceFee(ctx context.Context, orderTotal decimal.Decimal) decimal.Decimal {
	return s.ResolveServiceFee(ctx, orderTotal).Fee
}

// ResolveServiceFee is CalculateServiceFee with the policy, clamp and
// outcome attached.
func (s *Service) ResolveServiceFee(ctx context.Context, orderTotal decimal.Decimal) FeeResolution {
	e, cached := load(ctx, s, keyServiceFee, cacheResolved, func(ctx context.Context) (configdb.ServiceFeeConfig, error) {
		return s.store.GetActiveServiceFeeConfig(ctx)
	})
	recordResolution(ctx, "service_fee", e.Outcome.String())

	res := FeeResolution{Fee: decimal.Zero, Outcome: e.Outcome, Cached: cached}
	if e.Outcome != OutcomeConfigured || !e.Value.Active {
		return res
	}
	res.Fee, res.Clamp = applyFeePolicy(e.Value, orderTotal)
	res.Policy = e.Value.Name
	return res
}

// applyFeePolicy computes total*pct/100, raises it to MinFee, then lowers
// it to MaxFee. The ceiling is applied last so it wins when MaxFee < MinFee.
func applyFeePolicy(policy configdb.ServiceFeeConfig, orderTotal decimal.Decimal) (decimal.Decimal, FeeClamp) {
	fee := orderTotal.Mul(policy.FeePercentage).Div(hundred)
	clamp := FeeClampNone

	if fee.LessThan(policy.MinFee) {
		fee = policy.MinFee
		clamp = FeeClampFloor
	}
	if policy.MaxFee != nil && fee.GreaterThan(*policy.MaxFee) {
		fee = *policy.MaxFee
		clamp = FeeClampCeiling
	}
	return fee, clamp
}

// SetServiceFeeConfig validates and persists a fee policy. Saving an active
// policy deactivates every other one in the same transaction.
func (s *Service) SetServiceFeeConfig(ctx context.Context, arg configdb.UpsertServiceFeeConfigParams) (configdb.ServiceFeeConfig, error) {
	if err := validateServiceFee(arg); err != nil {
		return configdb.ServiceFeeConfig{}, err
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	row, err := s.store.UpsertServiceFeeConfig(storeCtx, arg)
	if err != nil {
		return configdb.ServiceFeeConfig{}, fmt.Errorf("failed to save service fee config %s: %w", arg.Name, classify(err))
	}

	s.cache.Invalidate(ctx, keyServiceFee)
	return row, nil
}

func validateServiceFee(arg configdb.UpsertServiceFeeConfigParams) error {
	if strings.TrimSpace(arg.Name) == "" {
		return fmt.Errorf("%w: service fee config name is empty", ErrInvalidInput)
	}
	if err := checkPercentage("fee_percentage", arg.FeePercentage); err != nil {
		return err
	}
	if arg.MinFee.IsNegative() {
		return fmt.Errorf("%w: min_fee %s is negative", ErrInvalidRange, arg.MinFee)
	}
	if err := checkScale("min_fee", arg.MinFee, moneyPlaces); err != nil {
		return err
	}
	if arg.MaxFee != nil {
		if arg.MaxFee.LessThan(arg.MinFee) {
			return fmt.Errorf("%w: max_fee %s is below min_fee %s", ErrInvalidRange, arg.MaxFee, arg.MinFee)
		}
		if err := checkScale("max_fee", *arg.MaxFee, moneyPlaces); err != nil {
			return err
		}
	}
	return nil
}

// Decimal places of the configdb NUMERIC columns. Postgres rounds extra
// places on insert, so writes carrying more are rejected instead.
const (
	percentPlaces = 2
	moneyPlaces   = 2
	ratePlaces    = 6
)

func checkPercentage(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return fmt.Errorf("%w: %s %s is outside [0,100]", ErrInvalidRange, field, v)
	}
	return checkScale(field, v, percentPlaces)
}

func checkScale(field string, v decimal.Decimal, places int32) error {
	if !v.Equal(v.Truncate(places)) {
		return fmt.Errorf("%w: %s %s has more than %d decimal places", ErrInvalidRange, field, v, places)
	}
	return nil
}
