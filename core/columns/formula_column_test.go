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
	"testing"

	"github.com/google/taxigrid/core/aggregates"
	"github.com/google/taxigrid/core/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(model any, scope Scope, self *FormulaColumn) (any, error) {
	a, err := self.Col(0, scope)
	if err != nil {
		return nil, err
	}
	b, err := self.Col(1, scope)
	if err != nil {
		return nil, err
	}
	x, _ := aggregates.ToFloat(a)
	y, _ := aggregates.ToFloat(b)
	return x * y, nil
}

// fiveColumns returns price, qty, a formula, a serial and a hidden column.
func fiveColumns(value FormulaFunc) (*FormulaColumn, []Column) {
	price := &DataColumn{Attribute: "price"}
	price.PageSummary = Computed()
	qty := &DataColumn{Attribute: "qty"}
	qty.PageSummary = Computed()
	qty.PageSummaryFunc = aggregates.FuncMax
	formula := &FormulaColumn{Value: value}
	hidden := &DataColumn{Attribute: "price"}
	hidden.Hidden = true
	return formula, []Column{price, qty, formula, NewSerialColumn(), hidden}
}

func TestFormulaRowValue(t *testing.T) {
	formula, cols := fiveColumns(product)
	ctx := newContext(data.NewSliceProvider(items(3, 5)), cols...)
	initAll(t, ctx)

	v, err := formula.CellValue(Row{Model: map[string]any{"price": 4, "qty": 3}, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)
	assert.Empty(t, formula.Rows())
}

func TestFormulaResolveErrors(t *testing.T) {
	formula, cols := fiveColumns(product)
	initAll(t, newContext(data.NewSliceProvider(items(1)), cols...))
	row := RowScope{Row: Row{Model: map[string]any{"price": 1}}}

	_, err := formula.Col(2, row)
	assert.ErrorIs(t, err, ErrSelfReference)

	_, err = formula.Col(99, row)
	assert.ErrorIs(t, err, ErrInvalidColumnReference)

	_, err = formula.Col(-1, row)
	assert.ErrorIs(t, err, ErrInvalidColumnReference)

	v, err := formula.Col(4, row)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "hidden columns still resolve")

	formula.Value = nil
	_, err = formula.Col(0, row)
	assert.ErrorIs(t, err, ErrInvalidConfigState)
	_, err = formula.CellValue(row.Row)
	assert.ErrorIs(t, err, ErrInvalidConfigState)
}

func TestFormulaSummaryUsesRawSiblingSummaries(t *testing.T) {
	formula, cols := fiveColumns(product)
	formula.PageSummary = Computed()
	formula.Format = "decimal:1"
	ctx := newContext(data.NewSliceProvider(items(3, 5, 2)), cols...)
	initAll(t, ctx)

	// sum(price) * max(qty)
	v, err := formula.SummaryValue()
	require.NoError(t, err)
	assert.Equal(t, 20.0, v)

	text, err := formula.SummaryText()
	require.NoError(t, err)
	assert.Equal(t, "20.0", text)
}

func TestFormulaSummaryOverrideGetsNoRows(t *testing.T) {
	formula, cols := fiveColumns(product)
	formula.PageSummary = Override(func(summary any, rows []any) (string, error) {
		assert.Nil(t, rows)
		return fmt.Sprintf("total %v", summary), nil
	})
	initAll(t, newContext(data.NewSliceProvider(items(3, 5, 2)), cols...))

	text, err := formula.SummaryText()
	require.NoError(t, err)
	assert.Equal(t, "total 20", text)
}

type footerSpy struct {
	*DataColumn
	calls int
}

func (s *footerSpy) FooterValue() (any, error) {
	s.calls++
	return s.DataColumn.FooterValue()
}

func TestFormulaAutoFooter(t *testing.T) {
	spy := &footerSpy{DataColumn: &DataColumn{Attribute: "price"}}
	spy.Footer = "static"
	formula := NewFormulaColumn(func(model any, scope Scope, self *FormulaColumn) (any, error) {
		if _, ok := scope.(FooterScope); ok {
			return 42, nil
		}
		return self.Col(0, scope)
	})
	assert.True(t, formula.AutoFooter)
	initAll(t, newContext(data.NewSliceProvider(items(1)), spy, formula))

	text, err := formula.FooterText()
	require.NoError(t, err)
	assert.Equal(t, "42", text)
	assert.Zero(t, spy.calls)

	formula.AutoFooter = false
	formula.Footer = "fixed"
	text, err = formula.FooterText()
	require.NoError(t, err)
	assert.Equal(t, "fixed", text)
}

func TestFormulaFooterScopeReadsSiblingFooter(t *testing.T) {
	spy := &footerSpy{DataColumn: &DataColumn{Attribute: "price"}}
	spy.Footer = "static"
	formula := &FormulaColumn{
		AutoFooter: true,
		Value: func(model any, scope Scope, self *FormulaColumn) (any, error) {
			return self.Col(0, scope)
		},
	}
	initAll(t, newContext(data.NewSliceProvider(nil), spy, formula))

	text, err := formula.FooterText()
	require.NoError(t, err)
	assert.Equal(t, "static", text)
	assert.Equal(t, 1, spy.calls)
}

func TestFormulaCircularReference(t *testing.T) {
	ref := func(i int) FormulaFunc {
		return func(model any, scope Scope, self *FormulaColumn) (any, error) {
			return self.Col(i, scope)
		}
	}
	a := &FormulaColumn{Value: ref(1)}
	b := &FormulaColumn{Value: ref(0)}
	ctx := newContext(data.NewSliceProvider(items(1)), a, b)
	initAll(t, ctx)

	_, err := a.CellValue(Row{})
	require.ErrorIs(t, err, ErrCircularReference)
	assert.Contains(t, err.Error(), "0 -> 1 -> 0")
	assert.Empty(t, ctx.resolving)

	_, err = b.SummaryValue()
	assert.NoError(t, err, "summary is disabled")
}

func TestScopeName(t *testing.T) {
	assert.Equal(t, "row", ScopeName(RowScope{}))
	assert.Equal(t, "summary", ScopeName(SummaryScope{}))
	assert.Equal(t, "footer", ScopeName(FooterScope{}))
	assert.Equal(t, "", ScopeName(nil))
}
