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

package grid

import (
	"github.com/google/taxigrid/core/columns"
)

// Table is a grid laid out into rows of cells. Only visible columns appear;
// a nil cell means the column emits nothing in that row.
type Table struct {
	Title          string
	Columns        []columns.Column
	Header         []*columns.Cell
	Filter         []*columns.Cell // nil without a filter model
	FilterPosition columns.FilterPosition
	Body           [][]*columns.Cell
	Summary        []*columns.Cell // nil unless page summaries are shown
	Footer         []*columns.Cell // nil unless the footer is shown
	EmptyText      string          // set when the page has no rows

	TotalRows int
	Offset    int
}

// Build lays out the current page.
func (g *Grid) Build() (*Table, error) {
	items, err := g.ctx.Page()
	if err != nil {
		return nil, err
	}
	vis := g.visible()
	t := &Table{
		Title:          g.title,
		Columns:        vis,
		FilterPosition: g.ctx.FilterPosition,
		TotalRows:      g.ctx.Provider.TotalCount(),
		Offset:         g.ctx.Offset(),
	}

	if t.Header, err = eachColumn(vis, columns.Column.HeaderCell); err != nil {
		return nil, err
	}
	if g.ctx.FilterModel != nil {
		if t.Filter, err = eachColumn(vis, columns.Column.FilterCell); err != nil {
			return nil, err
		}
	}
	for i, item := range items {
		row := columns.Row{Model: item.Model, Key: item.Key, Index: i}
		cells, err := eachColumn(vis, func(c columns.Column) (*columns.Cell, error) {
			return c.DataCell(row)
		})
		if err != nil {
			return nil, err
		}
		t.Body = append(t.Body, cells)
	}
	if len(items) == 0 {
		t.EmptyText = g.emptyText
	}
	if g.ctx.ShowPageSummary {
		if t.Summary, err = eachColumn(vis, columns.Column.SummaryCell); err != nil {
			return nil, err
		}
	}
	if g.showFooter {
		if t.Footer, err = eachColumn(vis, columns.Column.FooterCell); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func eachColumn(cols []columns.Column, cell func(columns.Column) (*columns.Cell, error)) ([]*columns.Cell, error) {
	cells := make([]*columns.Cell, 0, len(cols))
	for _, c := range cols {
		v, err := cell(c)
		if err != nil {
			return nil, columns.Wrap(c.Index(), err)
		}
		cells = append(cells, v)
	}
	return cells, nil
}

// CellCount returns the number of non-nil cells.
func CellCount(cells []*columns.Cell) int {
	n := 0
	for _, c := range cells {
		if c != nil {
			n++
		}
	}
	return n
}
