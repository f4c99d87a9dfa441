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

// Package idgen hands out time-ordered int64 IDs and a per-process instance ID.
package idgen

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sony/sonyflake"
)

var epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

type SonyFlakeGenerator struct {
	sf *sonyflake.Sonyflake
}

// NewFlakeGenerator derives the machine ID from the host's private IP. When
// the host has none (containers on some networks), a random one is used.
func NewFlakeGenerator() (*SonyFlakeGenerator, error) {
	sf, err := sonyflake.New(sonyflake.Settings{StartTime: epoch})
	if err != nil {
		sf, err = sonyflake.New(sonyflake.Settings{
			StartTime: epoch,
			MachineID: func() (uint16, error) { return uint16(rand.Uint32()), nil },
		})
	}
	if err != nil {
		return nil, err
	}
	if sf == nil {
		return nil, errors.New("failed to create Sonyflake instance")
	}
	return &SonyFlakeGenerator{sf: sf}, nil
}

// NextID returns a positive int64 that'll increase roughly in time order.
func (g *SonyFlakeGenerator) NextID() int64 {
	v, err := g.sf.NextID()
	if err != nil {
		return rand.Int64()
	}
	return int64(v)
}

var (
	instanceOnce sync.Once
	instanceID   int64
)

// InstanceID identifies this process. It is stable for the life of the
// process and used to tag outgoing cache invalidations and telemetry.
func InstanceID() int64 {
	instanceOnce.Do(func() {
		gen, err := NewFlakeGenerator()
		if err != nil {
			instanceID = rand.Int64()
			return
		}
		instanceID = gen.NextID()
	})
	return instanceID
}
