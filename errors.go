// Copyright 2025 The Unitable Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package unitable

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a key, value, or configuration
	// parameter is outside the supported domain: a zero-value Key or Value,
	// an unknown kind or pass method, or load factors that do not satisfy
	// 0 < min < max < 1.
	ErrInvalidArgument = errors.New("unitable: invalid argument")

	// ErrAllocation is returned when the configured Allocator fails. A
	// failed allocation during a resize leaves the table in its prior,
	// still-valid state.
	ErrAllocation = errors.New("unitable: allocation failed")

	// ErrCapacityOverflow is returned when growing the table would exceed
	// the maximum representable capacity. The table is unchanged.
	ErrCapacityOverflow = errors.New("unitable: capacity overflow")
)

// InvalidCapacityError indicates a requested capacity that is not a
// power of two (or is negative).
//
// It unwraps to ErrInvalidArgument.
type InvalidCapacityError struct {
	Capacity int
}

func (e *InvalidCapacityError) Error() string {
	return fmt.Sprintf("unitable: invalid capacity %d: must be a power of two", e.Capacity)
}

func (e *InvalidCapacityError) Unwrap() error { return ErrInvalidArgument }
