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
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/cardinalhq/shopconfig/configdb"
	"github.com/cardinalhq/shopconfig/internal/configcache"
	"github.com/cardinalhq/shopconfig/internal/logctx"
)

// DefaultStoreTimeout bounds every store call made by the service.
const DefaultStoreTimeout = 2 * time.Second

// ConfigStore is the row store the service reads and writes through.
// configdb.Store implements it against Postgres.
type ConfigStore interface {
	GetFeatureFlag(ctx context.Context, name string) (configdb.FeatureFlag, error)
	UpsertFeatureFlag(ctx context.Context, arg configdb.UpsertFeatureFlagParams) (configdb.FeatureFlag, error)

	GetActiveServiceFeeConfig(ctx context.Context) (configdb.ServiceFeeConfig, error)
	UpsertServiceFeeConfig(ctx context.Context, arg configdb.UpsertServiceFeeConfigParams) (configdb.ServiceFeeConfig, error)

	GetTaxConfig(ctx context.Context, country string) (configdb.TaxConfig, error)
	UpsertTaxConfig(ctx context.Context, arg configdb.UpsertTaxConfigParams) (configdb.TaxConfig, error)

	GetCurrencyConfig(ctx context.Context, code string) (configdb.CurrencyConfig, error)
	GetDefaultCurrencyConfig(ctx context.Context) (configdb.CurrencyConfig, error)
	ListCurrencyConfigs(ctx context.Context) ([]configdb.CurrencyConfig, error)
	UpsertCurrencyConfig(ctx context.Context, arg configdb.UpsertCurrencyConfigParams) (configdb.CurrencyConfig, error)
	SetDefaultCurrency(ctx context.Context, code string) (previous string, err error)

	GetSiteConfig(ctx context.Context) (configdb.SiteConfig, error)
	UpsertSiteConfig(ctx context.Context, arg configdb.SiteConfigParams) (configdb.SiteConfig, error)

	ListShippingServices(ctx context.Context, enabledOnly bool) ([]configdb.ShippingService, error)
	UpsertShippingService(ctx context.Context, arg configdb.UpsertShippingServiceParams) (configdb.ShippingService, error)

	ListPaymentGateways(ctx context.Context, activeOnly bool) ([]configdb.PaymentGateway, error)
	UpsertPaymentGateway(ctx context.Context, arg configdb.UpsertPaymentGatewayParams) (configdb.PaymentGateway, error)
}

var _ ConfigStore = (configdb.StoreFull)(nil)

// Service resolves configuration through the cache and owns every write
// path that must invalidate it.
type Service struct {
	store        ConfigStore
	cache        *configcache.Cache
	storeTimeout time.Duration
	staticTax    map[string]string
	loads        singleflight.Group
}

type Option func(*Service)

// WithStoreTimeout bounds each store call. Non-positive values are ignored.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

// WithStaticTaxTable replaces the built-in country to rate table used when
// no tax row is configured. Rates are decimal strings. A nil table keeps
// the built-in one.
func WithStaticTaxTable(table map[string]string) Option {
	return func(s *Service) {
		if table != nil {
			s.staticTax = table
		}
	}
}

// New creates a Service. The cache is shared, not owned: the caller closes it.
func New(store ConfigStore, cache *configcache.Cache, opts ...Option) *Service {
	s := &Service{
		store:        store,
		cache:        cache,
		storeTimeout: DefaultStoreTimeout,
		staticTax:    DefaultStaticTaxTable(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InvalidateAll flushes the cache here and, when broadcasting is enabled,
// in every other process.
func (s *Service) InvalidateAll(ctx context.Context) {
	s.cache.InvalidateAll(ctx)
}

func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// cachePolicy decides which load outcomes are written back to the cache.
type cachePolicy int

const (
	// cacheAll also caches unavailable results, so a failing store is not
	// hammered by every read.
	cacheAll cachePolicy = iota
	// cacheResolved caches rows and confirmed absences.
	cacheResolved
	// cacheConfiguredOnly caches rows only.
	cacheConfiguredOnly
)

func (p cachePolicy) allows(o Outcome) bool {
	switch p {
	case cacheAll:
		return true
	case cacheResolved:
		return o != OutcomeUnavailable
	default:
		return o == OutcomeConfigured
	}
}

// entry is what resolvers keep in the cache: the loaded value and how the
// load went.
type entry[T any] struct {
	Value   T
	Outcome Outcome
	Err     error
}

// load returns the cached entry for key, or fetches it from the store.
// Concurrent misses for the same key and generation share one fetch. The
// result is installed only if no invalidation happened while fetching.
//
// The shared fetch is detached from the caller's cancellation and bounded
// by the store timeout alone. A caller that gives up gets an unavailable
// entry that is never cached, while the fetch carries on for the others.
func load[T any](ctx context.Context, s *Service, key string, policy cachePolicy, fetch func(context.Context) (T, error)) (entry[T], bool) {
	if e, ok := configcache.Lookup[entry[T]](s.cache, key); ok {
		return e, true
	}
	if err := ctx.Err(); err != nil {
		return abandoned[T](err), false
	}

	gen := s.cache.Generation()
	ch := s.loads.DoChan(fmt.Sprintf("%s@%d", key, gen), func() (any, error) {
		fetchCtx, cancel := s.storeCtx(context.WithoutCancel(ctx))
		defer cancel()
		fetchCtx, span := tracer.Start(fetchCtx, "configservice.fetch",
			trace.WithAttributes(attribute.String("key", key)))
		defer span.End()

		val, err := fetch(fetchCtx)
		err = classify(err)
		e := entry[T]{Value: val, Outcome: outcomeOf(err), Err: err}
		span.SetAttributes(attribute.String("outcome", e.Outcome.String()))

		if e.Outcome == OutcomeUnavailable {
			span.RecordError(err)
			span.SetStatus(codes.Error, "store unavailable")
			logctx.FromContext(ctx).Warn("Configuration store unavailable, using fallback",
				slog.String("key", key),
				slog.Any("error", err))
		}
		if policy.allows(e.Outcome) {
			s.cache.SetIfCurrent(key, e, 0, gen)
		}
		return e, nil
	})

	select {
	case res := <-ch:
		return res.Val.(entry[T]), false
	case <-ctx.Done():
		return abandoned[T](ctx.Err()), false
	}
}

// abandoned is the entry handed to a caller whose own context ended first.
func abandoned[T any](cause error) entry[T] {
	return entry[T]{
		Outcome: OutcomeUnavailable,
		Err:     fmt.Errorf("%w: %w", ErrTransientUnavailable, cause),
	}
}
