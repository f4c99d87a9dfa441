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
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	resolutions metric.Int64Counter
	tracer      trace.Tracer
)

func init() {
	meter := otel.Meter("github.com/cardinalhq/shopconfig/internal/configservice")
	tracer = otel.Tracer("github.com/cardinalhq/shopconfig/internal/configservice")

	var err error
	resolutions, err = meter.Int64Counter(
		"shopconfig.resolutions",
		metric.WithDescription("Read-path configuration resolutions by resolver and result"),
	)
	if err != nil {
		log.Fatalf("failed to create resolutions counter: %v", err)
	}
}

func recordResolution(ctx context.Context, resolver string, result string) {
	resolutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resolver", resolver),
		attribute.String("result", result),
	))
}
