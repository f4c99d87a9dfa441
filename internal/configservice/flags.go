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

	"github.com/cardinalhq/shopconfig/configdb"
)

// IsFeatureEnabled reports whether the named flag is on. A missing flag, or
// one that could not be loaded, is off.
func (s *Service) IsFeatureEnabled(ctx context.Context, name string) bool {
	return s.ResolveFeatureFlag(ctx, name).Enabled
}

// ResolveFeatureFlag is IsFeatureEnabled with the outcome attached. The
// negative result of a failed load is cached like any other, for the full
// TTL.
func (s *Service) ResolveFeatureFlag(ctx context.Context, name string) FlagResolution {
	e, cached := load(ctx, s, flagKey(name), cacheAll, func(ctx context.Context) (bool, error) {
		row, err := s.store.GetFeatureFlag(ctx, name)
		if err != nil {
			return false, err
		}
		return row.Enabled, nil
	})
	recordResolution(ctx, "feature_flag", e.Outcome.String())
	return FlagResolution{
		Name:    name,
		Enabled: e.Outcome == OutcomeConfigured && e.Value,
		Outcome: e.Outcome,
		Cached:  cached,
	}
}

// SetFeatureFlag persists the flag, then drops its cache entry.
func (s *Service) SetFeatureFlag(ctx context.Context, name string, enabled bool, description string) (configdb.FeatureFlag, error) {
	if strings.TrimSpace(name) == "" {
		return configdb.FeatureFlag{}, fmt.Errorf("%w: feature flag name is empty", ErrInvalidInput)
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	row, err := s.store.UpsertFeatureFlag(storeCtx, configdb.UpsertFeatureFlagParams{
		Name:        name,
		Enabled:     enabled,
		Description: description,
	})
	if err != nil {
		return configdb.FeatureFlag{}, fmt.Errorf("failed to save feature flag %s: %w", name, classify(err))
	}

	s.cache.Invalidate(ctx, flagKey(name))
	return row, nil
}
