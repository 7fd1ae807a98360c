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
	"github.com/google/safehtml"
	"github.com/google/taxigrid/core/columns"
	"github.com/google/taxigrid/core/markup"
	"github.com/google/taxigrid/core/views"
)

// ViewModel converts the table into the model consumed by the HTML
// templates. Pagination links are left to the caller.
func (t *Table) ViewModel() views.TableViewModel {
	vm := views.TableViewModel{
		Title:       t.Title,
		ColumnCount: len(t.Columns),
		TotalRows:   t.TotalRows,
		HasFilter:   t.Filter != nil,
	}

	header := rowView(views.RowHeader, "th", t.Header)
	switch {
	case t.Filter == nil:
		vm.Head = []views.RowView{header}
	case t.FilterPosition == columns.FilterHeader:
		vm.Head = filterAboveHeader(t.Header, t.Filter)
	case t.FilterPosition == columns.FilterFooter:
		vm.Head = []views.RowView{header}
	default:
		vm.Head = []views.RowView{header, rowView(views.RowFilter, "td", t.Filter)}
	}

	for _, cells := range t.Body {
		vm.Body = append(vm.Body, rowView(views.RowData, "td", cells))
	}
	if len(t.Body) == 0 {
		vm.Empty = true
		vm.EmptyText = t.EmptyText
		opts := markup.NewOptions("kv-empty")
		opts.ColSpan = len(t.Columns)
		vm.EmptyRow = markup.Tag("tr", nil, markup.Tag("td", opts.Attrs(), markup.Text(t.EmptyText)))
	} else {
		vm.FirstRow = t.Offset + 1
		vm.LastRow = t.Offset + len(t.Body)
	}

	if t.Summary != nil {
		vm.Foot = append(vm.Foot, rowView(views.RowSummary, "td", t.Summary))
	}
	if t.Footer != nil {
		vm.Foot = append(vm.Foot, rowView(views.RowFooter, "td", t.Footer))
	}
	if t.Filter != nil && t.FilterPosition == columns.FilterFooter {
		vm.Foot = append(vm.Foot, rowView(views.RowFilter, "td", t.Filter))
	}
	return vm
}

func rowView(kind views.RowKind, tag string, cells []*columns.Cell) views.RowView {
	row := views.RowView{Kind: kind}
	for _, c := range cells {
		if c == nil {
			continue
		}
		row.Cells = append(row.Cells, cellHTML(tag, c))
	}
	return row
}

// filterAboveHeader lays out a filter row placed above the header. A merged
// header cell moves up into the filter row so its rowspan covers the header
// row below it.
func filterAboveHeader(header, filter []*columns.Cell) []views.RowView {
	top := views.RowView{Kind: views.RowFilter}
	bottom := views.RowView{Kind: views.RowHeader}
	for i, h := range header {
		f := filter[i]
		if h != nil && f == nil && h.Options.RowSpan > 1 {
			top.Cells = append(top.Cells, cellHTML("th", h))
			continue
		}
		if f != nil {
			top.Cells = append(top.Cells, cellHTML("td", f))
		}
		if h != nil {
			bottom.Cells = append(bottom.Cells, cellHTML("th", h))
		}
	}
	return []views.RowView{top, bottom}
}

func cellHTML(tag string, c *columns.Cell) safehtml.HTML {
	return markup.Tag(tag, c.Options.Attrs(), c.Content)
}
