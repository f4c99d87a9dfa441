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

package config

import (
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cardinalhq/shopconfig/internal/configcache"
	"github.com/cardinalhq/shopconfig/internal/configservice"
	"github.com/cardinalhq/shopconfig/internal/invalidation"
)

// Config aggregates configuration for the application.
type Config struct {
	Cache        CacheConfig        `mapstructure:"cache"`
	Store        StoreConfig        `mapstructure:"store"`
	Invalidation InvalidationConfig `mapstructure:"invalidation"`
	Tax          TaxConfig          `mapstructure:"tax"`
}

type CacheConfig struct {
	// TTL bounds staleness when a cross-process invalidation is lost.
	TTL time.Duration `mapstructure:"ttl"`
}

type StoreConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// InvalidationConfig controls cache invalidation broadcast. An empty
// NATSURL keeps invalidation local to the process.
type InvalidationConfig struct {
	NATSURL string `mapstructure:"nats_url"`
	Subject string `mapstructure:"subject"`
}

func (c InvalidationConfig) Enabled() bool {
	return c.NATSURL != ""
}

type TaxConfig struct {
	// StaticRates replaces the built-in country table. Config file only;
	// a list rather than a map because viper lower-cases map keys and
	// country names are matched exactly.
	StaticRates []StaticRate `mapstructure:"static_rates"`
}

type StaticRate struct {
	Country string `mapstructure:"country"`
	Rate    string `mapstructure:"rate"`
}

// StaticTable returns the configured rates keyed by country, or nil when
// none are configured.
func (c TaxConfig) StaticTable() map[string]string {
	if len(c.StaticRates) == 0 {
		return nil
	}
	table := make(map[string]string, len(c.StaticRates))
	for _, r := range c.StaticRates {
		table[r.Country] = r.Rate
	}
	return table
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Cache:        CacheConfig{TTL: configcache.DefaultTTL},
		Store:        StoreConfig{Timeout: configservice.DefaultStoreTimeout},
		Invalidation: InvalidationConfig{Subject: invalidation.DefaultSubject},
	}
}

// Load reads configuration from files and environment variables.
// Environment variables use the prefix "SHOPCONFIG" and the dot character
// in keys is replaced by an underscore. For example, "cache.ttl" becomes
// "SHOPCONFIG_CACHE_TTL".
func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("shopconfig")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/shopconfig")
	v.SetEnvPrefix("SHOPCONFIG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)
	_ = v.ReadInConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.Invalidation.Subject == "" {
		cfg.Invalidation.Subject = invalidation.DefaultSubject
	}
	return cfg, nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling. Map and slice
// fields are left to the config file.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(parts, tag)
		switch f.Type.Kind() {
		case reflect.Struct:
			bindEnvs(v, val.Field(i).Interface(), key...)
		case reflect.Map, reflect.Slice:
		default:
			_ = v.BindEnv(strings.Join(key, "."))
		}
	}
}
