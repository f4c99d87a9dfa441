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

// Advisory lock keys for entity sets that carry a cross-row invariant.
const (
	LockKeyDefaultCurrency  int64 = 0x73686f7001
	LockKeyActiveServiceFee int64 = 0x73686f7002
	LockKeySiteConfig       int64 = 0x73686f7003
)

const acquireXactLock = `-- name: AcquireXactLock :exec
SELECT pg_advisory_xact_lock($1)
`

// AcquireXactLock blocks until the transaction-scoped advisory lock is held.
// Outside a transaction the lock is released as soon as the statement ends.
func (q *Queries) AcquireXactLock(ctx context.Context, key int64) error {
	_, err := q.db.Exec(ctx, acquireXactLock, key)
	return err
}
