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
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type kind int

const (
	kindNumber kind = iota
	kindString
	kindTime
)

// ToFloat converts numeric values and numeric strings to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case time.Duration:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func operandKind(v any) (kind, error) {
	if _, ok := ToFloat(v); ok {
		return kindNumber, nil
	}
	switch v.(type) {
	case string:
		return kindString, nil
	case time.Time:
		return kindTime, nil
	}
	return 0, fmt.Errorf("%w: %v (%T) is not comparable", ErrInvalidOperand, v, v)
}

// Compare orders two non-nil operands of the same kind: numbers (including
// numeric strings), strings, or times. Mixed kinds are an ErrInvalidOperand.
func Compare(a, b any) (int, error) {
	ka, err := operandKind(a)
	if err != nil {
		return 0, err
	}
	kb, err := operandKind(b)
	if err != nil {
		return 0, err
	}
	if ka != kb {
		return 0, fmt.Errorf("%w: cannot compare %v (%T) with %v (%T)", ErrInvalidOperand, a, a, b, b)
	}
	switch ka {
	case kindNumber:
		fa, _ := ToFloat(a)
		fb, _ := ToFloat(b)
		return compareFloat64s(fa, fb), nil
	case kindTime:
		return a.(time.Time).Compare(b.(time.Time)), nil
	default:
		return strings.Compare(a.(string), b.(string)), nil
	}
}

func compareFloat64s(a, b float64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
