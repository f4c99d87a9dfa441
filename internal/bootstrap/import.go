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

// Package bootstrap loads a shop's initial configuration from a YAML file
// into configdb in a single transaction.
package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cardinalhq/shopconfig/configdb"
	"github.com/cardinalhq/shopconfig/internal/logctx"
)

const SupportedVersion = 1

// Summary counts the rows written by an import.
type Summary struct {
	Site             bool
	FeatureFlags     int
	ServiceFees      int
	Taxes            int
	Currencies       int
	DefaultCurrency  string
	ShippingServices int
	PaymentGateways  int
}

// ImportFromYAML loads, validates and imports filePath. Nothing is written
// unless the whole file is valid and every row saves. Callers that cache
// configuration must flush their caches afterwards.
func ImportFromYAML(ctx context.Context, filePath string, store *configdb.Store) (Summary, error) {
	logctx.FromContext(ctx).Info("Starting bootstrap import from YAML", slog.String("file", filePath))

	file, err := Load(filePath)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load config: %w", err)
	}
	return Import(ctx, store, file)
}

// Load reads and parses a bootstrap file.
func Load(filePath string) (*File, error) {
	contents, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return Parse(contents)
}

// Parse decodes a bootstrap document. Unknown fields are ignored so newer
// files still load.
func Parse(contents []byte) (*File, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(contents))
	dec.KnownFields(false)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	file.normalize()
	return &file, nil
}

// Import validates file and writes it in one transaction.
func Import(ctx context.Context, store *configdb.Store, file *File) (Summary, error) {
	ll := logctx.FromContext(ctx)

	if err := file.Validate(); err != nil {
		return Summary{}, fmt.Errorf("invalid bootstrap file: %w", err)
	}

	ll.Info("Loaded bootstrap configuration",
		slog.Bool("site", file.Site != nil),
		slog.Int("feature_flags", len(file.FeatureFlags)),
		slog.Int("service_fees", len(file.ServiceFees)),
		slog.Int("taxes", len(file.Taxes)),
		slog.Int("currencies", len(file.Currencies)),
		slog.Int("shipping_services", len(file.ShippingServices)),
		slog.Int("payment_gateways", len(file.PaymentGateways)))

	var summary Summary
	err := store.ExecTx(ctx, func(tx *configdb.Store) error {
		summary = Summary{}
		steps := []struct {
			name string
			run  func(context.Context, *configdb.Store, *File, *Summary) error
		}{
			{"site config", importSite},
			{"feature flags", importFeatureFlags},
			{"service fees", importServiceFees},
			{"taxes", importTaxes},
			{"currencies", importCurrencies},
			{"shipping services", importShippingServices},
			{"payment gateways", importPaymentGateways},
		}
		for _, step := range steps {
			if err := step.run(ctx, tx, file, &summary); err != nil {
				return fmt.Errorf("failed to import %s: %w", step.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	ll.Info("Bootstrap import completed successfully",
		slog.String("default_currency", summary.DefaultCurrency))
	return summary, nil
}

func importSite(ctx context.Context, tx *configdb.Store, file *File, summary *Summary) error {
	if file.Site == nil {
		return nil
	}
	site := file.Site
	if _, err := tx.UpsertSiteConfig(ctx, configdb.SiteConfigParams{
		Name:            site.Name,
		Tagline:         site.Tagline,
		ContactEmail:    site.ContactEmail,
		ContactPhone:    site.ContactPhone,
		Address:         site.Address,
		PrimaryColor:    site.PrimaryColor,
		SecondaryColor:  site.SecondaryColor,
		LogoUrl:         site.LogoURL,
		CurrencyDisplay: site.CurrencyDisplay,
	}); err != nil {
		return err
	}
	summary.Site = true
	logctx.FromContext(ctx).Info("Imported site config", slog.String("name", site.Name))
	return nil
}

func importFeatureFlags(ctx context.Context, tx *configdb.Store, file *File, summary *Summary) error {
	for _, flag := range file.FeatureFlags {
		if _, err := tx.UpsertFeatureFlag(ctx, configdb.UpsertFeatureFlagParams{
			Name:        flag.Name,
			Enabled:     flag.Enabled,
			Description: flag.Description,
		}); err != nil {
			return fmt.Errorf("flag %s: %w", flag.Name, err)
		}
		summary.FeatureFlags++
	}
	return nil
}

// importServiceFees writes inactive policies first so the active one is
// the last activation and survives.
func importServiceFees(ctx context.Context, tx *configdb.Store, file *File, summary *Summary) error {
	for _, wantActive := range []bool{false, true} {
		for _, fee := range file.ServiceFees {
			if fee.Active != wantActive {
				continue
			}
			if _, err := tx.UpsertServiceFeeConfig(ctx, configdb.UpsertServiceFeeConfigParams{
				Name:          fee.Name,
				FeePercentage: fee.FeePercentage,
				MinFee:        fee.MinFee,
				MaxFee:        fee.MaxFee,
				Active:        fee.Active,
			}); err != nil {
				return fmt.Errorf("policy %s: %w", fee.Name, err)
			}
			summary.ServiceFees++
		}
	}
	return nil
}

func importTaxes(ctx context.Context, tx *configdb.Store, file *File, summary *Summary) error {
	for _, tax := range file.Taxes {
		if _, err := tx.UpsertTaxConfig(ctx, configdb.UpsertTaxConfigParams{
			Country: tax.Country,
			TaxRate: tax.TaxRate,
			Active:  tax.Active,
		}); err != nil {
			return fmt.Errorf("country %s: %w", tax.Country, err)
		}
		summary.Taxes++
	}
	return nil
}

func importCurrencies(ctx context.Context, tx *configdb.Store, file *File, summary *Summary) error {
	defaultCode := ""
	for _, cur := range file.Currencies {
		if _, err := tx.UpsertCurrencyConfig(ctx, configdb.UpsertCurrencyConfigParams{
			Code:         cur.Code,
			Symbol:       cur.Symbol,
			Name:         cur.Name,
			ExchangeRate: cur.ExchangeRate,
			Active:       cur.Active,
		}); err != nil {
			return fmt.Errorf("currency %s: %w", cur.Code, err)
		}
		if cur.IsDefault {
			defaultCode = cur.Code
		}
		summary.Currencies++
	}
	if defaultCode == "" {
		return nil
	}

	previous, err := tx.SetDefaultCurrency(ctx, defaultCode)
	if err != nil {
		return err
	}
	summary.DefaultCurrency = defaultCode
	if previous != defaultCode {
		logctx.FromContext(ctx).Info("Default currency changed",
			slog.String("from", previous),
			slog.String("to", defaultCode))
	}
	return nil
}

func importShippingServices(ctx context.Context, tx *configdb.Store, file *File, summary *Summary) error {
	for _, ship := range file.ShippingServices {
		if _, err := tx.UpsertShippingService(ctx, configdb.UpsertShippingServiceParams{
			Name:          ship.Name,
			Description:   ship.Description,
			BaseRate:      ship.BaseRate,
			EstimatedDays: ship.EstimatedDays,
			Priority:      ship.Priority,
			Enabled:       ship.Enabled,
		}); err != nil {
			return fmt.Errorf("shipping service %s: %w", ship.Name, err)
		}
		summary.ShippingServices++
	}
	return nil
}

func importPaymentGateways(ctx context.Context, tx *configdb.Store, file *File, summary *Summary) error {
	for _, gw := range file.PaymentGateways {
		var creds []byte
		if len(gw.Credentials) > 0 {
			var err error
			if creds, err = json.Marshal(gw.Credentials); err != nil {
				return fmt.Errorf("gateway %s: failed to encode credentials: %w", gw.Code, err)
			}
		}
		if _, err := tx.UpsertPaymentGateway(ctx, configdb.UpsertPaymentGatewayParams{
			Code:        gw.Code,
			Name:        gw.Name,
			Priority:    gw.Priority,
			Active:      gw.Active,
			Sandbox:     gw.Sandbox,
			Credentials: creds,
		}); err != nil {
			return fmt.Errorf("gateway %s: %w", gw.Code, err)
		}
		summary.PaymentGateways++
	}
	return nil
}
