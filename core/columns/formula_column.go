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
	"fmt"
)

// FormulaFunc computes the value of a formula column. model is nil outside
// RowScope. Sibling values are read with self.Col.
type FormulaFunc func(model any, scope Scope, self *FormulaColumn) (any, error)

// FormulaColumn derives its values from other columns of the grid.
type FormulaColumn struct {
	DataColumn

	Value FormulaFunc
	// AutoFooter computes the footer with the formula in FooterScope
	// instead of showing Footer. NewFormulaColumn sets it; a FormulaColumn
	// literal starts with a static footer.
	AutoFooter bool
}

// NewFormulaColumn returns a formula column computing its footer with value.
func NewFormulaColumn(value FormulaFunc) *FormulaColumn {
	return &FormulaColumn{Value: value, AutoFooter: true}
}

// Init implements Column. Formula columns keep no row cache; their summary
// is the formula evaluated in SummaryScope.
func (f *FormulaColumn) Init(ctx *Context, index int) error {
	return f.init(ctx, index, f)
}

// Col returns the value of the column at position i in the given scope: its
// raw summary in SummaryScope, its raw footer in FooterScope and its cell
// value for the row otherwise. Hidden columns resolve like visible ones.
func (f *FormulaColumn) Col(i int, scope Scope) (any, error) {
	if f.ctx == nil || f.ctx.Columns == nil {
		return nil, fmt.Errorf("%w: formula column not initialized", ErrInvalidConfigState)
	}
	col, ok := f.ctx.Columns.At(i)
	if !ok || col == nil {
		return nil, fmt.Errorf("%w: no column at index %d", ErrInvalidColumnReference, i)
	}
	if f.Value == nil {
		return nil, fmt.Errorf("%w: formula column %d has no value function", ErrInvalidConfigState, f.index)
	}
	if col == Column(f) {
		return nil, fmt.Errorf("%w: column %d", ErrSelfReference, i)
	}
	switch s := scope.(type) {
	case SummaryScope:
		return col.SummaryValue()
	case FooterScope:
		return col.FooterValue()
	case RowScope:
		return col.CellValue(s.Row)
	}
	return nil, fmt.Errorf("%w: unknown scope %T", ErrInvalidConfigState, scope)
}

func (f *FormulaColumn) evaluate(model any, scope Scope) (any, error) {
	if f.Value == nil {
		return nil, fmt.Errorf("%w: formula column %d has no value function", ErrInvalidConfigState, f.index)
	}
	if f.ctx == nil {
		return nil, fmt.Errorf("%w: formula column not initialized", ErrInvalidConfigState)
	}
	release, err := f.ctx.enter(f)
	if err != nil {
		return nil, err
	}
	defer release()
	return f.Value(model, scope, f)
}

// CellValue evaluates the formula for one row.
func (f *FormulaColumn) CellValue(row Row) (any, error) {
	return f.evaluate(row.Model, RowScope{Row: row})
}

// SummaryValue evaluates the formula in SummaryScope for computed and
// overridden summaries. An override receives no row values.
func (f *FormulaColumn) SummaryValue() (any, error) {
	switch f.PageSummary.Mode {
	case SummaryComputed:
		return f.evaluate(nil, SummaryScope{})
	case SummaryOverride:
		v, err := f.evaluate(nil, SummaryScope{})
		if err != nil {
			return nil, err
		}
		return f.PageSummary.Fn(v, nil)
	}
	return f.summaryValue()
}

// FooterValue evaluates the formula in FooterScope when AutoFooter is set.
func (f *FormulaColumn) FooterValue() (any, error) {
	if f.AutoFooter {
		return f.evaluate(nil, FooterScope{})
	}
	return f.Footer, nil
}

// FooterText formats the computed footer.
func (f *FormulaColumn) FooterText() (string, error) {
	if !f.AutoFooter {
		return f.Base.FooterText()
	}
	v, err := f.FooterValue()
	if err != nil {
		return "", err
	}
	return f.formatValue(v)
}
