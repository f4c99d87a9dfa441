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
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// ErrDefaultCurrencyCount is returned when a default-currency switch would
// leave zero or several defaults behind. The transaction is rolled back.
var ErrDefaultCurrencyCount = errors.New("default currency count is not exactly one")

// SetDefaultCurrency makes code the only default currency. It returns the
// code of the default it replaced, or "" when there was none. An unknown
// code yields an error wrapping pgx.ErrNoRows and changes nothing.
func (store *Store) SetDefaultCurrency(ctx context.Context, code string) (previous string, err error) {
	err = store.execTx(ctx, func(s *Store) error {
		if err := s.AcquireXactLock(ctx, LockKeyDefaultCurrency); err != nil {
			return fmt.Errorf("failed to lock currency set: %w", err)
		}

		if _, err := s.GetCurrencyConfig(ctx, code); err != nil {
			return fmt.Errorf("failed to load currency %s: %w", code, err)
		}

		current, err := s.GetDefaultCurrencyConfig(ctx)
		switch {
		case err == nil:
			previous = current.Code
		case errors.Is(err, pgx.ErrNoRows):
		default:
			return fmt.Errorf("failed to load current default currency: %w", err)
		}

		// Demote before promoting so the single-default index never sees two.
		if _, err := s.ClearOtherDefaultCurrencies(ctx, code); err != nil {
			return fmt.Errorf("failed to clear default currency: %w", err)
		}
		if _, err := s.MarkDefaultCurrency(ctx, code); err != nil {
			return fmt.Errorf("failed to mark default currency: %w", err)
		}

		count, err := s.CountDefaultCurrencies(ctx)
		if err != nil {
			return fmt.Errorf("failed to count default currencies: %w", err)
		}
		if count != 1 {
			slog.Error("Default currency invariant violated, rolling back",
				slog.String("code", code),
				slog.Int64("defaultCount", count))
			return fmt.Errorf("%w: %d defaults after setting %s", ErrDefaultCurrencyCount, count, code)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return previous, nil
}
