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

// GetSiteConfig returns the authoritative site configuration. The boolean
// is false when none exists or it could not be loaded.
func (s *Service) GetSiteConfig(ctx context.Context) (configdb.SiteConfig, bool) {
	e, _ := load(ctx, s, keySiteConfig, cacheResolved, func(ctx context.Context) (configdb.SiteConfig, error) {
		return s.store.GetSiteConfig(ctx)
	})
	recordResolution(ctx, "site_config", e.Outcome.String())
	return e.Value, e.Outcome == OutcomeConfigured
}

// ReloadSiteConfig drops the cached site configuration everywhere and loads
// it again.
func (s *Service) ReloadSiteConfig(ctx context.Context) (configdb.SiteConfig, bool) {
	s.cache.Invalidate(ctx, keySiteConfig)
	return s.GetSiteConfig(ctx)
}

// SetSiteConfig updates the authoritative row, or creates it.
func (s *Service) SetSiteConfig(ctx context.Context, arg configdb.SiteConfigParams) (configdb.SiteConfig, error) {
	if strings.TrimSpace(arg.Name) == "" {
		return configdb.SiteConfig{}, fmt.Errorf("%w: site name is empty", ErrInvalidInput)
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	row, err := s.store.UpsertSiteConfig(storeCtx, arg)
	if err != nil {
		return configdb.SiteConfig{}, fmt.Errorf("failed to save site config: %w", classify(err))
	}

	s.cache.Invalidate(ctx, keySiteConfig)
	return row, nil
}
