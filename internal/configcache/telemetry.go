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

package configcache

import (
	"context"
	"log"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	cacheHits          metric.Int64Counter
	cacheMisses        metric.Int64Counter
	cacheInvalidations metric.Int64Counter
)

func init() {
	meter := otel.Meter("github.com/cardinalhq/shopconfig/internal/configcache")

	var err error

	cacheHits, err = meter.Int64Counter(
		"shopconfig.cache.hits",
		metric.WithDescription("Configuration cache lookups answered from the cache"),
	)
	if err != nil {
		log.Fatalf("failed to create cache.hits counter: %v", err)
	}

	cacheMisses, err = meter.Int64Counter(
		"shopconfig.cache.misses",
		metric.WithDescription("Configuration cache lookups that found nothing"),
	)
	if err != nil {
		log.Fatalf("failed to create cache.misses counter: %v", err)
	}

	cacheInvalidations, err = meter.Int64Counter(
		"shopconfig.cache.invalidations",
		metric.WithDescription("Configuration cache keys dropped after a write"),
	)
	if err != nil {
		log.Fatalf("failed to create cache.invalidations counter: %v", err)
	}
}

// kindAttr buckets a key by its prefix ("flag:checkout" -> "flag") so the
// metric cardinality stays bounded.
func kindAttr(key string) metric.MeasurementOption {
	kind, _, _ := strings.Cut(key, ":")
	return metric.WithAttributes(attribute.String("kind", kind))
}

func recordHit(key string) {
	cacheHits.Add(context.Background(), 1, kindAttr(key))
}

func recordMiss(key string) {
	cacheMisses.Add(context.Background(), 1, kindAttr(key))
}

func recordInvalidation(key string, source string) {
	cacheInvalidations.Add(context.Background(), 1, kindAttr(key),
		metric.WithAttributes(attribute.String("source", source)))
}
