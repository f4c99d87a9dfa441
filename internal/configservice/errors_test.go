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
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/cardinalhq/shopconfig/configdb"
)

func TestClassify(t *testing.T) {
	plain := errors.New("boom")

	tests := []struct {
		name    string
		err     error
		want    error
		outcome Outcome
	}{
		{"no rows", pgx.ErrNoRows, ErrNotConfigured, OutcomeNotConfigured},
		{"wrapped no rows", fmt.Errorf("load: %w", pgx.ErrNoRows), ErrNotConfigured, OutcomeNotConfigured},
		{"default recount", fmt.Errorf("%w: 0 defaults", configdb.ErrDefaultCurrencyCount), ErrInvariantViolation, OutcomeUnavailable},
		{"check constraint", &pgconn.PgError{Code: "23514", ConstraintName: "service_fee_configs_fee_percentage_check"}, ErrInvalidRange, OutcomeUnavailable},
		{"numeric overflow", &pgconn.PgError{Code: "22003"}, ErrInvalidRange, OutcomeUnavailable},
		{"second default", &pgconn.PgError{Code: "23505", ConstraintName: "currency_configs_single_default_idx"}, ErrInvariantViolation, OutcomeUnavailable},
		{"deadline", context.DeadlineExceeded, ErrTransientUnavailable, OutcomeUnavailable},
		{"canceled", fmt.Errorf("query: %w", context.Canceled), ErrTransientUnavailable, OutcomeUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err, "original error stays in the chain")
			assert.Equal(t, tt.outcome, outcomeOf(got))
		})
	}

	t.Run("unrecognized errors pass through", func(t *testing.T) {
		assert.Same(t, plain, classify(plain))

		other := &pgconn.PgError{Code: "23505", ConstraintName: "feature_flags_pkey"}
		assert.Same(t, other, classify(other))
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, classify(nil))
		assert.Equal(t, OutcomeConfigured, outcomeOf(nil))
	})
}
