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

package columns

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidColumnReference is returned when a formula refers to a
	// position without a column.
	ErrInvalidColumnReference = errors.New("invalid column reference")
	// ErrSelfReference is returned when a formula refers to its own column.
	ErrSelfReference = errors.New("self-referencing formula column")
	// ErrInvalidConfigState is returned for columns that cannot work as
	// configured, e.g. a formula without a value function.
	ErrInvalidConfigState = errors.New("invalid column configuration")
	// ErrCircularReference is returned when formulas refer to each other in
	// a loop.
	ErrCircularReference = errors.New("circular formula reference")
)

// ColumnError names the column an error occurred in.
type ColumnError struct {
	Index int
	Err   error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %d: %v", e.Index, e.Err)
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

// Wrap returns err annotated with the column index, or nil.
func Wrap(index int, err error) error {
	if err == nil {
		return nil
	}
	var ce *ColumnError
	if errors.As(err, &ce) && ce.Index == index {
		return err
	}
	return &ColumnError{Index: index, Err: err}
}
