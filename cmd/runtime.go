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

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/shopconfig/config"
	"github.com/cardinalhq/shopconfig/configdb"
	"github.com/cardinalhq/shopconfig/internal/configcache"
	"github.com/cardinalhq/shopconfig/internal/configservice"
	"github.com/cardinalhq/shopconfig/internal/idgen"
	"github.com/cardinalhq/shopconfig/internal/invalidation"
	"github.com/cardinalhq/shopconfig/internal/logctx"
)

// shopRuntime is everything a command needs to read and write
// configuration: the store, the cache shared by the resolvers, and the
// invalidation broadcast when one is configured. Only long-running
// commands also listen for invalidations from other processes; a
// one-shot command's cache dies with it.
type shopRuntime struct {
	cfg       *config.Config
	store     *configdb.Store
	cache     *configcache.Cache
	svc       *configservice.Service
	publisher invalidation.Publisher

	stopListener func()
}

func openRuntime(ctx context.Context, listen bool) (*shopRuntime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := configdb.ConfigDBStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to configdb: %w", err)
	}

	rt := &shopRuntime{
		cfg:          cfg,
		store:        store,
		publisher:    invalidation.NoopPublisher{},
		stopListener: func() {},
	}

	if cfg.Invalidation.Enabled() {
		pub, err := invalidation.NewNATSPublisher(cfg.Invalidation.NATSURL, cfg.Invalidation.Subject, idgen.InstanceID())
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to connect invalidation publisher: %w", err)
		}
		rt.publisher = pub
	}

	rt.cache = configcache.New(
		configcache.WithTTL(cfg.Cache.TTL),
		configcache.WithPublisher(rt.publisher),
	)
	rt.svc = configservice.New(store, rt.cache,
		configservice.WithStoreTimeout(cfg.Store.Timeout),
		configservice.WithStaticTaxTable(cfg.Tax.StaticTable()),
	)

	if listen && cfg.Invalidation.Enabled() {
		if err := rt.startListener(ctx); err != nil {
			rt.Close()
			return nil, err
		}
	}

	return rt, nil
}

// startListener applies invalidations broadcast by other processes to this
// process's cache until Close.
func (rt *shopRuntime) startListener(ctx context.Context) error {
	sub, err := invalidation.NewNATSSubscriber(rt.cfg.Invalidation.NATSURL)
	if err != nil {
		return fmt.Errorf("failed to connect invalidation subscriber: %w", err)
	}

	listenCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := invalidation.Listen(listenCtx, sub, rt.cfg.Invalidation.Subject, idgen.InstanceID(), rt.cache); err != nil {
			slog.Warn("Cache invalidation listener stopped", slog.Any("error", err))
		}
	}()

	rt.stopListener = func() {
		cancel()
		<-done
		_ = sub.Close()
	}
	return nil
}

func (rt *shopRuntime) Close() {
	rt.stopListener()
	if rt.cache != nil {
		rt.cache.Close()
	}
	if err := rt.publisher.Close(); err != nil {
		slog.Warn("Failed to close invalidation publisher", slog.Any("error", err))
	}
	rt.store.Close()
}

// runWithRuntime sets up telemetry, opens the runtime, and runs fn.
func runWithRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt *shopRuntime) error) error {
	return runCommand(cmd, false, fn)
}

// runWithListener is runWithRuntime for commands that keep running until
// interrupted. Invalidations published elsewhere are applied to their cache.
func runWithListener(cmd *cobra.Command, fn func(ctx context.Context, rt *shopRuntime) error) error {
	return runCommand(cmd, true, fn)
}

func runCommand(cmd *cobra.Command, listen bool, fn func(ctx context.Context, rt *shopRuntime) error) (err error) {
	ctx, doneFx, err := setupTelemetry(servicename, nil)
	if err != nil {
		return fmt.Errorf("failed to setup telemetry: %w", err)
	}
	defer func() {
		if err := doneFx(); err != nil {
			slog.Error("Error shutting down telemetry", slog.Any("error", err))
		}
	}()

	start := time.Now()
	defer func() { recordCommand(ctx, cmd.CommandPath(), start, err) }()

	ctx = logctx.WithLogger(ctx, slog.Default().With(slog.String("command", cmd.CommandPath())))

	rt, err := openRuntime(ctx, listen)
	if err != nil {
		return err
	}
	defer rt.Close()

	return fn(ctx, rt)
}
