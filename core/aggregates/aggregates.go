/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package aggregates computes page summaries over the per-row values a column
// collected for the current page.
package aggregates

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidOperand is returned when a value cannot take part in an aggregation,
// for example a non-numeric string in a sum or a string compared with a number.
var ErrInvalidOperand = errors.New("invalid operand")

// Func selects the aggregation applied to a column's page values.
type Func int

const (
	// FuncUnset is the zero value. It sums like FuncSum; columns with their
	// own default, such as serial columns, replace it.
	FuncUnset Func = iota
	// FuncNone behaves exactly like FuncSum. Grids written against the older
	// API rely on it summing the column.
	FuncNone
	FuncSum
	FuncCount
	FuncAvg
	FuncMax
	FuncMin
)

var funcNames = map[Func]string{
	FuncUnset: "",
	FuncNone:  "none",
	FuncSum:   "f_sum",
	FuncCount: "f_count",
	FuncAvg:   "f_avg",
	FuncMax:   "f_max",
	FuncMin:   "f_min",
}

// String returns the configuration name of the function.
func (f Func) String() string {
	if name, ok := funcNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Func(%d)", int(f))
}

// Symbol returns a short symbol used in text renderings.
func (f Func) Symbol() string {
	switch f {
	case FuncUnset, FuncNone, FuncSum:
		return "Σ"
	case FuncCount:
		return "#"
	case FuncAvg:
		return "μ"
	case FuncMax:
		return "↑"
	case FuncMin:
		return "↓"
	default:
		return "?"
	}
}

// ParseFunc parses a function name. Both the long "f_sum" style names and the
// short "sum" style names are accepted; the empty string yields FuncUnset.
func ParseFunc(s string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FuncUnset, nil
	case "none":
		return FuncNone, nil
	case "f_sum", "sum":
		return FuncSum, nil
	case "f_count", "count":
		return FuncCount, nil
	case "f_avg", "avg", "average":
		return FuncAvg, nil
	case "f_max", "max":
		return FuncMax, nil
	case "f_min", "min":
		return FuncMin, nil
	}
	return FuncUnset, fmt.Errorf("unknown summary function %q", s)
}

// Aggregate applies fn to values. The result is nil for an empty input,
// whatever the function. values is never modified.
func Aggregate(values []any, fn Func) (any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	switch fn {
	case FuncUnset, FuncNone, FuncSum:
		state, err := accumulate(values)
		if err != nil {
			return nil, err
		}
		return state.Sum, nil
	case FuncCount:
		return len(values), nil
	case FuncAvg:
		state, err := accumulate(values)
		if err != nil {
			return nil, err
		}
		if state.Count == 0 {
			return nil, nil
		}
		return state.Avg(), nil
	case FuncMax:
		return extreme(values, 1)
	case FuncMin:
		return extreme(values, -1)
	}
	return nil, fmt.Errorf("unknown summary function %v", fn)
}

// NumericAggState stores the running state of a numeric aggregation.
type NumericAggState struct {
	Count int64   // Number of values
	Sum   float64 // Sum of values
	Min   float64 // Minimum value
	Max   float64 // Maximum value
}

// NewNumericAggState creates a new empty numeric aggregate state.
func NewNumericAggState() *NumericAggState {
	return &NumericAggState{
		Min: math.MaxFloat64,
		Max: -math.MaxFloat64,
	}
}

// Add adds a single value to the aggregate state.
func (s *NumericAggState) Add(value float64) {
	s.Count++
	s.Sum += value
	if value < s.Min {
		s.Min = value
	}
	if value > s.Max {
		s.Max = value
	}
}

// Combine merges another numeric state into this one.
func (s *NumericAggState) Combine(other *NumericAggState) {
	if other == nil || other.Count == 0 {
		return
	}
	s.Count += other.Count
	s.Sum += other.Sum
	if other.Min < s.Min {
		s.Min = other.Min
	}
	if other.Max > s.Max {
		s.Max = other.Max
	}
}

// Avg returns the average (mean) of the values.
func (s *NumericAggState) Avg() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// accumulate folds values into a numeric state. nil counts as zero.
func accumulate(values []any) (*NumericAggState, error) {
	state := NewNumericAggState()
	for i, v := range values {
		if v == nil {
			state.Add(0)
			continue
		}
		f, ok := ToFloat(v)
		if !ok {
			return nil, fmt.Errorf("row %d: %w: %v (%T) is not numeric", i, ErrInvalidOperand, v, v)
		}
		state.Add(f)
	}
	return state, nil
}

// extreme returns the largest (sign 1) or smallest (sign -1) present value.
func extreme(values []any, sign int) (any, error) {
	var best any
	for i, v := range values {
		if v == nil {
			continue
		}
		if best == nil {
			if _, err := operandKind(v); err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			best = v
			continue
		}
		c, err := Compare(v, best)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if c*sign > 0 {
			best = v
		}
	}
	return best, nil
}
