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

package invalidation

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Listen applies messages from subject to target until ctx is done.
// Messages stamped with self are this process's own and are skipped.
func Listen(ctx context.Context, sub *NATSSubscriber, subject string, self int64, target LocalInvalidator) error {
	ch, cancel, err := sub.Subscribe(subject)
	if err != nil {
		return err
	}
	defer cancel()

	slog.Info("Listening for cache invalidations", slog.String("subject", subject))

	for {
		select {
		case <-ctx.Done():
			return nil
		case data, ok := <-ch:
			if !ok {
				return nil
			}
			apply(data, self, target)
		}
	}
}

func apply(data []byte, self int64, target LocalInvalidator) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		slog.Warn("Ignoring malformed cache invalidation", slog.Any("error", err))
		return
	}
	if msg.Origin == self {
		return
	}
	if msg.All {
		target.InvalidateAllLocal()
		return
	}
	if len(msg.Keys) > 0 {
		target.InvalidateLocal(msg.Keys...)
	}
}
