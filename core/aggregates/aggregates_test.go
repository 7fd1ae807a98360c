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

package aggregates

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	values := []any{3, 5, 2}
	tests := []struct {
		name     string
		fn       Func
		expected any
	}{
		{"sum", FuncSum, 10.0},
		{"none behaves like sum", FuncNone, 10.0},
		{"unset behaves like sum", FuncUnset, 10.0},
		{"count", FuncCount, 3},
		{"average", FuncAvg, 10.0 / 3},
		{"max", FuncMax, 5},
		{"min", FuncMin, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Aggregate(values, tt.fn)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
	assert.Equal(t, []any{3, 5, 2}, values, "input must not be modified")
}

func TestAggregateEmpty(t *testing.T) {
	for _, fn := range []Func{FuncUnset, FuncNone, FuncSum, FuncCount, FuncAvg, FuncMax, FuncMin} {
		t.Run(fn.String(), func(t *testing.T) {
			got, err := Aggregate(nil, fn)
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestCountIsStructural(t *testing.T) {
	values := []any{nil, "n/a", struct{}{}, 4.5}
	got, err := Aggregate(values, FuncCount)
	require.NoError(t, err)
	assert.Equal(t, len(values), got)
}

func TestSumOperands(t *testing.T) {
	got, err := Aggregate([]any{"1.5", nil, int64(2), uint8(1)}, FuncSum)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got)

	got, err = Aggregate([]any{nil, 4}, FuncAvg)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)

	_, err = Aggregate([]any{1, "abc"}, FuncSum)
	assert.True(t, errors.Is(err, ErrInvalidOperand), "got %v", err)
}

func TestMaxMin(t *testing.T) {
	t.Run("numeric strings compare numerically", func(t *testing.T) {
		got, err := Aggregate([]any{"9", "10", nil}, FuncMax)
		require.NoError(t, err)
		assert.Equal(t, "10", got)
	})
	t.Run("strings compare lexically", func(t *testing.T) {
		got, err := Aggregate([]any{"pear", "apple", "fig"}, FuncMin)
		require.NoError(t, err)
		assert.Equal(t, "apple", got)
	})
	t.Run("times compare chronologically", func(t *testing.T) {
		early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		late := early.Add(time.Hour)
		got, err := Aggregate([]any{early, late}, FuncMax)
		require.NoError(t, err)
		assert.Equal(t, late, got)
	})
	t.Run("all nil", func(t *testing.T) {
		got, err := Aggregate([]any{nil, nil}, FuncMin)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
	t.Run("mixed kinds fail", func(t *testing.T) {
		_, err := Aggregate([]any{1, "apple"}, FuncMax)
		assert.ErrorIs(t, err, ErrInvalidOperand)
	})
	t.Run("uncomparable value fails", func(t *testing.T) {
		_, err := Aggregate([]any{[]int{1}}, FuncMin)
		assert.ErrorIs(t, err, ErrInvalidOperand)
	})
}

func TestParseFunc(t *testing.T) {
	tests := map[string]Func{
		"":        FuncUnset,
		"None":    FuncNone,
		"f_sum":   FuncSum,
		"COUNT":   FuncCount,
		"average": FuncAvg,
		"f_max":   FuncMax,
		"min":     FuncMin,
	}
	for in, want := range tests {
		got, err := ParseFunc(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFunc("median")
	assert.Error(t, err)
}

func TestNumericAggStateCombine(t *testing.T) {
	a := NewNumericAggState()
	a.Add(1)
	a.Add(4)
	b := NewNumericAggState()
	b.Add(-2)
	a.Combine(b)
	a.Combine(NewNumericAggState())

	assert.EqualValues(t, 3, a.Count)
	assert.Equal(t, 3.0, a.Sum)
	assert.Equal(t, -2.0, a.Min)
	assert.Equal(t, 4.0, a.Max)
	assert.Equal(t, 1.0, a.Avg())
}
