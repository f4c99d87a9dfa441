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

// Package configservice resolves shop configuration through a cache and
// applies the business rules built on it.
//
// # Reads
//
// Resolvers (IsFeatureEnabled, CalculateServiceFee, ResolveTax, ...) check
// the cache, load from the store on a miss, apply their fallback policy and
// repopulate the cache. They never return errors: a missing row and an
// unreachable store both resolve to the fallback value. The Resolve*
// variants return typed results that say which case happened.
//
// # Fallbacks
//
//   - feature flag: false, cached even when the store failed
//   - service fee: zero when no active policy exists
//   - tax: configured rate, then the static table, then zero
//
// # Writes
//
// Set* methods validate, persist, then invalidate the affected cache keys
// before returning, so a read that follows a returned write sees it.
// Writers surface every error and never retry.
package configservice
