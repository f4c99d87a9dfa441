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
)

// StoreFull is the query surface plus the transactional operations.
type StoreFull interface {
	Querier

	// High-level transactional operations
	SetDefaultCurrency(ctx context.Context, code string) (previous string, err error)
	UpsertServiceFeeConfig(ctx context.Context, arg UpsertServiceFeeConfigParams) (ServiceFeeConfig, error)
	UpsertSiteConfig(ctx context.Context, arg SiteConfigParams) (SiteConfig, error)
}

var _ StoreFull = (*Store)(nil)
