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

	"github.com/google/safehtml"
	"github.com/google/taxigrid/core/data"
	"github.com/google/taxigrid/core/filters"
	"github.com/google/taxigrid/core/markup"
)

// DataColumn shows an attribute of the row models, or the result of Value.
type DataColumn struct {
	Base

	Attribute string // dotted path into the model
	Value     func(row Row) (any, error)

	// MergeHeader lets the header span the filter row. The filter cell of
	// the column is then dropped.
	MergeHeader bool

	Filter             safehtml.HTML // literal filter cell content
	FilterType         filters.Kind
	FilterOptions      []filters.Option
	FilterPrompt       string
	FilterInputOptions markup.Options
	DisableFilter      bool

	widget      filters.Widget
	filterInput markup.Options
}

// Init implements Column.
func (d *DataColumn) Init(ctx *Context, index int) error {
	if err := d.init(ctx, index, d); err != nil {
		return err
	}
	return d.collect()
}

func (d *DataColumn) init(ctx *Context, index int, self Column) error {
	if d.MergeHeader && d.VAlign == "" {
		d.VAlign = markup.AlignMiddle
	}
	if err := d.setup(ctx, index, self); err != nil {
		return err
	}
	d.filterInput = d.FilterInputOptions.Clone()
	if ctx.Bootstrap {
		d.filterInput.AddClass("form-control")
	}
	return d.resolveWidget()
}

// resolveWidget picks the filter widget up front so that unknown kinds fail
// when the grid is built.
func (d *DataColumn) resolveWidget() error {
	d.widget = nil
	if d.Attribute == "" || d.DisableFilter {
		return nil
	}
	kind := d.FilterType
	if kind == "" {
		if d.Filter.String() != "" {
			return nil
		}
		kind = filters.KindText
		if len(d.FilterOptions) > 0 {
			kind = filters.KindSelect
		}
	}
	if d.ctx.Filters == nil {
		return fmt.Errorf("%w: no filter registry", ErrInvalidConfigState)
	}
	w, err := d.ctx.Filters.Resolve(kind, len(d.FilterOptions) > 0)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfigState, err)
	}
	d.widget = w
	return nil
}

// CellValue returns the value of the column for one row.
func (d *DataColumn) CellValue(row Row) (any, error) {
	if d.Value != nil {
		return d.Value(row)
	}
	if d.Attribute == "" {
		return nil, nil
	}
	return data.Attribute(row.Model, d.Attribute)
}

// SummaryValue returns the raw page summary.
func (d *DataColumn) SummaryValue() (any, error) {
	return d.summaryValue()
}

// SummaryText returns the page summary as shown.
func (d *DataColumn) SummaryText() (string, error) {
	return d.summaryText(d.formatValue)
}

// HeaderText returns the label, or the humanized attribute.
func (d *DataColumn) HeaderText() string {
	if d.Label != "" {
		return d.Label
	}
	return d.humanize(d.Attribute)
}

func (d *DataColumn) merged() bool {
	return d.MergeHeader && d.ctx != nil && d.ctx.filterAdjacent()
}

// HeaderCell renders the header cell.
func (d *DataColumn) HeaderCell() (*Cell, error) {
	return d.headerCell(d.merged()), nil
}

// FilterCell renders the filter cell, or nil when the header spans it.
func (d *DataColumn) FilterCell() (*Cell, error) {
	if d.merged() {
		return nil, nil
	}
	if d.Filter.String() != "" && d.FilterType == "" {
		return &Cell{Content: d.Filter}, nil
	}
	if !d.filterable() {
		return textCell(d.emptyCell(), markup.Options{}), nil
	}
	if d.widget == nil {
		return nil, fmt.Errorf("%w: column not initialized", ErrInvalidConfigState)
	}
	content, err := d.widget.Render(filters.Input{
		Name:      "filter:" + d.Attribute,
		Attribute: d.Attribute,
		Values:    d.ctx.FilterModel.FilterValues(d.Attribute),
		Options:   d.FilterOptions,
		Prompt:    d.FilterPrompt,
		HTML:      d.filterInput.Clone(),
	})
	if err != nil {
		return nil, err
	}
	return &Cell{Content: content}, nil
}

// filterable reports whether there is anything to filter in this column.
func (d *DataColumn) filterable() bool {
	if d.Attribute == "" || d.DisableFilter || d.ctx == nil || d.ctx.FilterModel == nil {
		return false
	}
	return d.ctx.FilterModel.IsFilterable(d.Attribute)
}
