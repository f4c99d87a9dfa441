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
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cardinalhq/shopconfig/configdb"
	"github.com/cardinalhq/shopconfig/internal/configcache"
)

// mockStore is an in-memory ConfigStore with per-read call counters.
type mockStore struct {
	mu         sync.Mutex
	flags      map[string]configdb.FeatureFlag
	fees       []configdb.ServiceFeeConfig
	taxes      map[string]configdb.TaxConfig
	currencies map[string]configdb.CurrencyConfig
	site       *configdb.SiteConfig
	shipping   map[string]configdb.ShippingService
	gateways   map[string]configdb.PaymentGateway

	readErr  error
	writeErr error
	// delay is applied to every call and honours ctx cancellation.
	delay time.Duration
	// gate, when set, blocks reads until it is closed.
	gate chan struct{}
	// breakDefaults makes SetDefaultCurrency fail its recount.
	breakDefaults bool

	flagReads     atomic.Int32
	feeReads      atomic.Int32
	taxReads      atomic.Int32
	currencyReads atomic.Int32
	defaultReads  atomic.Int32
	listReads     atomic.Int32
	siteReads     atomic.Int32
	writes        atomic.Int32
}

var _ ConfigStore = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		flags:      map[string]configdb.FeatureFlag{},
		taxes:      map[string]configdb.TaxConfig{},
		currencies: map[string]configdb.CurrencyConfig{},
		shipping:   map[string]configdb.ShippingService{},
		gateways:   map[string]configdb.PaymentGateway{},
	}
}

// newTestService wires a Service to m with a fresh cache.
func newTestService(t *testing.T, m *mockStore, opts ...Option) (*Service, *configcache.Cache) {
	t.Helper()
	return newTestServiceWithCache(t, m, nil, opts...)
}

func newTestServiceWithCache(t *testing.T, m *mockStore, cacheOpts []configcache.Option, opts ...Option) (*Service, *configcache.Cache) {
	t.Helper()
	cache := configcache.New(cacheOpts...)
	t.Cleanup(cache.Close)
	return New(m, cache, opts...), cache
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func (m *mockStore) wait(ctx context.Context, read bool) error {
	if read && m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if read {
		return m.readErr
	}
	return m.writeErr
}

func (m *mockStore) GetFeatureFlag(ctx context.Context, name string) (configdb.FeatureFlag, error) {
	m.flagReads.Add(1)
	if err := m.wait(ctx, true); err != nil {
		return configdb.FeatureFlag{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.flags[name]
	if !ok {
		return configdb.FeatureFlag{}, pgx.ErrNoRows
	}
	return row, nil
}

func (m *mockStore) UpsertFeatureFlag(ctx context.Context, arg configdb.UpsertFeatureFlagParams) (configdb.FeatureFlag, error) {
	m.writes.Add(1)
	if err := m.wait(ctx, false); err != nil {
		return configdb.FeatureFlag{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row := configdb.FeatureFlag{Name: arg.Name, Enabled: arg.Enabled, Description: arg.Description, UpdatedAt: time.Now()}
	m.flags[arg.Name] = row
	return row, nil
}

func (m *mockStore) GetActiveServiceFeeConfig(ctx context.Context) (configdb.ServiceFeeConfig, error) {
	m.feeReads.Add(1)
	if err := m.wait(ctx, true); err != nil {
		return configdb.ServiceFeeConfig{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, fee := range m.fees {
		if fee.Active {
			return fee, nil
		}
	}
	return configdb.ServiceFeeConfig{}, pgx.ErrNoRows
}

func (m *mockStore) UpsertServiceFeeConfig(ctx context.Context, arg configdb.UpsertServiceFeeConfigParams) (configdb.ServiceFeeConfig, error) {
	m.writes.Add(1)
	if err := m.wait(ctx, false); err != nil {
		return configdb.ServiceFeeConfig{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if arg.Active {
		for i := range m.fees {
			if m.fees[i].Name != arg.Name {
				m.fees[i].Active = false
			}
		}
	}
	row := configdb.ServiceFeeConfig{
		ID:            uuid.New(),
		Name:          arg.Name,
		FeePercentage: arg.FeePercentage,
		MinFee:        arg.MinFee,
		MaxFee:        arg.MaxFee,
		Active:        arg.Active,
	}
	for i := range m.fees {
		if m.fees[i].Name == arg.Name {
			row.ID = m.fees[i].ID
			m.fees[i] = row
			return row, nil
		}
	}
	m.fees = append(m.fees, row)
	return row, nil
}

func (m *mockStore) GetTaxConfig(ctx context.Context, country string) (configdb.TaxConfig, error) {
	m.taxReads.Add(1)
	if err := m.wait(ctx, true); err != nil {
		return configdb.TaxConfig{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.taxes[country]
	if !ok || !row.Active {
		return configdb.TaxConfig{}, pgx.ErrNoRows
	}
	return row, nil
}

func (m *mockStore) UpsertTaxConfig(ctx context.Context, arg configdb.UpsertTaxConfigParams) (configdb.TaxConfig, error) {
	m.writes.Add(1)
	if err := m.wait(ctx, false); err != nil {
		return configdb.TaxConfig{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row := configdb.TaxConfig{Country: arg.Country, TaxRate: arg.TaxRate, Active: arg.Active}
	m.taxes[arg.Country] = row
	return row, nil
}

func (m *mockStore) GetCurrencyConfig(ctx context.Context, code string) (configdb.CurrencyConfig, error) {
	m.currencyReads.Add(1)
	if err := m.wait(ctx, true); err != nil {
		return configdb.CurrencyConfig{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.currencies[code]
	if !ok {
		return configdb.CurrencyConfig{}, pgx.ErrNoRows
	}
	return row, nil
}

func (m *mockStore) GetDefaultCurrencyConfig(ctx context.Context) (configdb.CurrencyConfig, error) {
	m.defaultReads.Add(1)
	if err := m.wait(ctx, true); err != nil {
		return configdb.CurrencyConfig{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.currencies {
		if row.IsDefault {
			return row, nil
		}
	}
	return configdb.CurrencyConfig{}, pgx.ErrNoRows
}

func (m *mockStore) ListCurrencyConfigs(ctx context.Context) ([]configdb.CurrencyConfig, error) {
	m.listReads.Add(1)
	if err := m.wait(ctx, true); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []configdb.CurrencyConfig
	for _, row := range m.currencies {
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b configdb.CurrencyConfig) int { return strings.Compare(a.Code, b.Code) })
	return out, nil
}

func (m *mockStore) UpsertCurrencyConfig(ctx context.Context, arg configdb.UpsertCurrencyConfigParams) (configdb.CurrencyConfig, error) {
	m.writes.Add(1)
	if err := m.wait(ctx, false); err != nil {
		return configdb.CurrencyConfig{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row := m.currencies[arg.Code]
	row.Code = arg.Code
	row.Symbol = arg.Symbol
	row.Name = arg.Name
	row.ExchangeRate = arg.ExchangeRate
	row.Active = arg.Active
	m.currencies[arg.Code] = row
	return row, nil
}

func (m *mockStore) SetDefaultCurrency(ctx context.Context, code string) (string, error) {
	m.writes.Add(1)
	if err := m.wait(ctx, false); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.currencies[code]; !ok {
		return "", fmt.Errorf("failed to load currency %s: %w", code, pgx.ErrNoRows)
	}
	if m.breakDefaults {
		return "", fmt.Errorf("%w: 2 defaults after setting %s", configdb.ErrDefaultCurrencyCount, code)
	}
	previous := ""
	for k, row := range m.currencies {
		if row.IsDefault {
			previous = k
		}
		row.IsDefault = k == code
		m.currencies[k] = row
	}
	return previous, nil
}

func (m *mockStore) defaultCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, row := range m.currencies {
		if row.IsDefault {
			n++
		}
	}
	return n
}

func (m *mockStore) GetSiteConfig(ctx context.Context) (configdb.SiteConfig, error) {
	m.siteReads.Add(1)
	if err := m.wait(ctx, true); err != nil {
		return configdb.SiteConfig{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.site == nil {
		return configdb.SiteConfig{}, pgx.ErrNoRows
	}
	return *m.site, nil
}

func (m *mockStore) UpsertSiteConfig(ctx context.Context, arg configdb.SiteConfigParams) (configdb.SiteConfig, error) {
	m.writes.Add(1)
	if err := m.wait(ctx, false); err != nil {
		return configdb.SiteConfig{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	if m.site != nil {
		id = m.site.ID
	}
	m.site = &configdb.SiteConfig{
		ID:              id,
		Name:            arg.Name,
		Tagline:         arg.Tagline,
		ContactEmail:    arg.ContactEmail,
		ContactPhone:    arg.ContactPhone,
		Address:         arg.Address,
		PrimaryColor:    arg.PrimaryColor,
		SecondaryColor:  arg.SecondaryColor,
		LogoUrl:         arg.LogoUrl,
		CurrencyDisplay: arg.CurrencyDisplay,
	}
	return *m.site, nil
}

func (m *mockStore) ListShippingServices(ctx context.Context, enabledOnly bool) ([]configdb.ShippingService, error) {
	m.listReads.Add(1)
	if err := m.wait(ctx, true); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []configdb.ShippingService
	for _, row := range m.shipping {
		if enabledOnly && !row.Enabled {
			continue
		}
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b configdb.ShippingService) int {
		if a.Priority != b.Priority {
			return int(a.Priority - b.Priority)
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (m *mockStore) UpsertShippingService(ctx context.Context, arg configdb.UpsertShippingServiceParams) (configdb.ShippingService, error) {
	m.writes.Add(1)
	if err := m.wait(ctx, false); err != nil {
		return configdb.ShippingService{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row := configdb.ShippingService{
		Name:          arg.Name,
		Description:   arg.Description,
		BaseRate:      arg.BaseRate,
		EstimatedDays: arg.EstimatedDays,
		Priority:      arg.Priority,
		Enabled:       arg.Enabled,
	}
	m.shipping[arg.Name] = row
	return row, nil
}

func (m *mockStore) ListPaymentGateways(ctx context.Context, activeOnly bool) ([]configdb.PaymentGateway, error) {
	m.listReads.Add(1)
	if err := m.wait(ctx, true); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []configdb.PaymentGateway
	for _, row := range m.gateways {
		if activeOnly && !row.Active {
			continue
		}
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b configdb.PaymentGateway) int {
		if a.Priority != b.Priority {
			return int(a.Priority - b.Priority)
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (m *mockStore) UpsertPaymentGateway(ctx context.Context, arg configdb.UpsertPaymentGatewayParams) (configdb.PaymentGateway, error) {
	m.writes.Add(1)
	if err := m.wait(ctx, false); err != nil {
		return configdb.PaymentGateway{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	row := configdb.PaymentGateway{
		Code:        arg.Code,
		Name:        arg.Name,
		Priority:    arg.Priority,
		Active:      arg.Active,
		Sandbox:     arg.Sandbox,
		Credentials: arg.Credentials,
	}
	m.gateways[arg.Code] = row
	return row, nil
}
