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
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UpsertSiteConfig updates the authoritative (oldest) site row, or inserts
// the first one when the table is empty.
func (store *Store) UpsertSiteConfig(ctx context.Context, arg SiteConfigParams) (SiteConfig, error) {
	var saved SiteConfig

	err := store.execTx(ctx, func(s *Store) error {
		if err := s.AcquireXactLock(ctx, LockKeySiteConfig); err != nil {
			return fmt.Errorf("failed to lock site config: %w", err)
		}

		current, err := s.GetSiteConfig(ctx)
		switch {
		case err == nil:
			if err := s.UpdateSiteConfig(ctx, current.ID, arg); err != nil {
				return fmt.Errorf("failed to update site config: %w", err)
			}
		case errors.Is(err, pgx.ErrNoRows):
			if _, err := s.InsertSiteConfig(ctx, arg); err != nil {
				return fmt.Errorf("failed to insert site config: %w", err)
			}
		default:
			return fmt.Errorf("failed to load site config: %w", err)
		}

		saved, err = s.GetSiteConfig(ctx)
		return err
	})
	if err != nil {
		return SiteConfig{}, err
	}
	return saved, nil
}
