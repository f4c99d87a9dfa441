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

// Package migrations holds the options shared by schema version checks.
package migrations

import "time"

// CheckMode defines how a schema version mismatch is handled at connect time.
type CheckMode int

const (
	// CheckModeWait polls until the schema reaches the expected version or the timeout expires.
	CheckModeWait CheckMode = iota
	// CheckModeWarn logs the mismatch and continues.
	CheckModeWarn
	// CheckModeSkip does not look at the schema version at all.
	CheckModeSkip
)

func (m CheckMode) String() string {
	switch m {
	case CheckModeWait:
		return "wait"
	case CheckModeWarn:
		return "warn"
	case CheckModeSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// CheckOptions contains options for migration version checking.
type CheckOptions struct {
	Mode          CheckMode
	Timeout       time.Duration
	RetryInterval time.Duration
	AllowDirty    bool
}

// CheckOption modifies CheckOptions.
type CheckOption func(*CheckOptions)

// WithCheckMode sets the check mode.
func WithCheckMode(mode CheckMode) CheckOption {
	return func(opts *CheckOptions) {
		opts.Mode = mode
	}
}

// WithTimeout sets how long CheckModeWait keeps polling.
func WithTimeout(timeout time.Duration) CheckOption {
	return func(opts *CheckOptions) {
		opts.Timeout = timeout
	}
}

// WithRetryInterval sets the interval between polls.
func WithRetryInterval(interval time.Duration) CheckOption {
	return func(opts *CheckOptions) {
		opts.RetryInterval = interval
	}
}

// WithAllowDirty allows proceeding when the migration table is marked dirty.
func WithAllowDirty(allow bool) CheckOption {
	return func(opts *CheckOptions) {
		opts.AllowDirty = allow
	}
}

// DefaultCheckOptions returns the options used when nothing is overridden.
func DefaultCheckOptions() CheckOptions {
	return CheckOptions{
		Mode:          CheckModeWait,
		Timeout:       60 * time.Second,
		RetryInterval: 5 * time.Second,
		AllowDirty:    false,
	}
}

// Apply layers opts over base and returns the result.
func Apply(base CheckOptions, opts ...CheckOption) CheckOptions {
	for _, opt := range opts {
		opt(&base)
	}
	return base
}
