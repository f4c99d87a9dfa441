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
	"fmt"
)

// UpsertServiceFeeConfig writes a fee policy. When the policy is active every
// other active policy is demoted in the same transaction.
func (store *Store) UpsertServiceFeeConfig(ctx context.Context, arg UpsertServiceFeeConfigParams) (ServiceFeeConfig, error) {
	var saved ServiceFeeConfig

	err := store.execTx(ctx, func(s *Store) error {
		if arg.Active {
			if err := s.AcquireXactLock(ctx, LockKeyActiveServiceFee); err != nil {
				return fmt.Errorf("failed to lock service fee set: %w", err)
			}
			if _, err := s.DeactivateOtherServiceFeeConfigs(ctx, arg.Name); err != nil {
				return fmt.Errorf("failed to deactivate other service fee configs: %w", err)
			}
		}

		row, err := s.UpsertServiceFeeConfigRow(ctx, arg)
		if err != nil {
			return fmt.Errorf("failed to upsert service fee config %s: %w", arg.Name, err)
		}
		saved = row
		return nil
	})
	if err != nil {
		return ServiceFeeConfig{}, err
	}
	return saved, nil
}
