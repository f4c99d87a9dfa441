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
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cardinalhq/shopconfig/configdb"
)

var (
	// ErrNotConfigured means no matching row exists. Read paths turn it into
	// their fallback value.
	ErrNotConfigured = errors.New("configuration not found")
	// ErrInvalidRange rejects a write whose numeric fields are out of range.
	ErrInvalidRange = errors.New("configuration value out of range")
	// ErrInvalidInput rejects a write with a malformed key.
	ErrInvalidInput = errors.New("invalid configuration input")
	// ErrTransientUnavailable means the store timed out or could not be
	// reached. Callers may retry.
	ErrTransientUnavailable = errors.New("configuration store unavailable")
	// ErrInvariantViolation means a write would have broken a cross-row
	// invariant and was rolled back.
	ErrInvariantViolation = errors.New("configuration invariant violated")
)

// Postgres SQLSTATE codes mapped onto the taxonomy.
const (
	sqlstateCheckViolation  = "23514"
	sqlstateUniqueViolation = "23505"
	sqlstateNumericOverflow = "22003"
)

// classify wraps err with the matching sentinel, keeping the original in
// the chain. Unrecognized errors are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var (
		pgErr   *pgconn.PgError
		connErr *pgconn.ConnectError
	)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("%w: %w", ErrNotConfigured, err)
	case errors.Is(err, configdb.ErrDefaultCurrencyCount):
		return fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case sqlstateCheckViolation, sqlstateNumericOverflow:
			return fmt.Errorf("%w: %w", ErrInvalidRange, err)
		case sqlstateUniqueViolation:
			if pgErr.ConstraintName == "currency_configs_single_default_idx" {
				return fmt.Errorf("%w: %w", ErrInvariantViolation, err)
			}
		}
		return err
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.As(err, &connErr),
		pgconn.Timeout(err),
		pgconn.SafeToRetry(err):
		return fmt.Errorf("%w: %w", ErrTransientUnavailable, err)
	}
	return err
}

// outcomeOf maps a classified read error onto an Outcome. Anything that is
// not a plain "no row" counts as unavailable.
func outcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeConfigured
	case errors.Is(err, ErrNotConfigured):
		return OutcomeNotConfigured
	default:
		return OutcomeUnavailable
	}
}
