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
	"github.com/shopspring/decimal"
)

// Outcome records how a read-path lookup went, so callers can tell "no data"
// from "backend down" even though both resolve to the same fallback.
type Outcome int

const (
	OutcomeConfigured Outcome = iota
	OutcomeNotConfigured
	OutcomeUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfigured:
		return "configured"
	case OutcomeNotConfigured:
		return "not_configured"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// FlagResolution is the typed result of a feature flag lookup.
type FlagResolution struct {
	Name    string
	Enabled bool
	Outcome Outcome
	Cached  bool
}

// FeeClamp names the bound that determined a service fee, if any.
type FeeClamp int

const (
	FeeClampNone FeeClamp = iota
	FeeClampFloor
	FeeClampCeiling
)

func (c FeeClamp) String() string {
	switch c {
	case FeeClampFloor:
		return "floor"
	case FeeClampCeiling:
		return "ceiling"
	default:
		return "none"
	}
}

// FeeResolution is the typed result of a service fee calculation. Policy is
// empty when no active policy applied.
type FeeResolution struct {
	Fee     decimal.Decimal
	Clamp   FeeClamp
	Policy  string
	Outcome Outcome
	Cached  bool
}

// TaxTier names the fallback tier that produced a tax amount.
type TaxTier int

const (
	TaxTierConfigured TaxTier = iota
	TaxTierStatic
	TaxTierNone
)

func (t TaxTier) String() string {
	switch t {
	case TaxTierConfigured:
		return "configured"
	case TaxTierStatic:
		return "static"
	default:
		return "none"
	}
}

// TaxResolution is the typed result of a tax lookup. ConfiguredOutcome is
// the result of the tier-1 lookup, which explains why a lower tier fired.
type TaxResolution struct {
	Country           string
	Amount            decimal.Decimal
	Rate              decimal.Decimal
	Tier              TaxTier
	ConfiguredOutcome Outcome
}
