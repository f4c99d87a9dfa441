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

// Package invalidation broadcasts cache invalidations between processes
// over NATS. Delivery is best effort; the cache TTL bounds staleness when a
// message is lost.
package invalidation

import (
	"context"
)

// DefaultSubject is the NATS subject used when none is configured.
const DefaultSubject = "shopconfig.cache.invalidate"

// Message names the cache keys another process should drop. All asks for
// the whole cache to be flushed.
type Message struct {
	Origin int64    `json:"origin"`
	Keys   []string `json:"keys,omitempty"`
	All    bool     `json:"all,omitempty"`
}

// Publisher sends invalidation messages to other processes.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// LocalInvalidator applies a remote invalidation without re-broadcasting it.
type LocalInvalidator interface {
	InvalidateLocal(keys ...string)
	InvalidateAllLocal()
}

// NoopPublisher drops every message. It is used when no broker is configured.
type NoopPublisher struct{}

var _ Publisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, Message) error { return nil }
func (NoopPublisher) Close() error                           { return nil }
