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

package config

import (
	"fmt"
	"strings"

	"github.com/google/taxigrid/core/aggregates"
	"github.com/google/taxigrid/core/columns"
	"github.com/google/taxigrid/core/data"
	"github.com/google/taxigrid/core/filters"
	"github.com/google/taxigrid/core/grid"
	"github.com/google/taxigrid/core/markup"
	"github.com/google/taxigrid/datasources"
	"golang.org/x/text/language"
)

// BuildColumns instantiates the configured columns. Without configured columns
// it derives a serial column plus one column per schema column, summing the
// numeric ones.
func (g *GridConfig) BuildColumns(schema *datasources.TableSchema) ([]columns.Column, error) {
	if len(g.Columns) == 0 {
		return defaultColumns(schema), nil
	}
	cols := make([]columns.Column, 0, len(g.Columns))
	for i, cc := range g.Columns {
		col, err := cc.build()
		if err != nil {
			return nil, columns.Wrap(i, err)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func defaultColumns(schema *datasources.TableSchema) []columns.Column {
	if schema == nil {
		return nil
	}
	cols := []columns.Column{columns.NewSerialColumn()}
	for _, s := range schema.Columns {
		col := &columns.DataColumn{Attribute: s.Name}
		if s.Type.Numeric() {
			col.HAlign = markup.AlignRight
			col.PageSummary = columns.Computed()
		}
		cols = append(cols, col)
	}
	return cols
}

// GridOptions are the request dependent parts of a grid.
type GridOptions struct {
	Provider    data.Provider
	FilterModel columns.FilterModel // used when the grid shows filters
	Schema      *datasources.TableSchema
	Filters     *filters.Registry
}

// NewGrid builds a grid from the definition.
func (g *GridConfig) NewGrid(opts GridOptions) (*grid.Grid, error) {
	cols, err := g.BuildColumns(opts.Schema)
	if err != nil {
		return nil, err
	}
	pos, err := columns.ParseFilterPosition(g.FilterPosition)
	if err != nil {
		return nil, err
	}
	locale := language.Und
	if g.Locale != "" {
		if locale, err = language.Parse(g.Locale); err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", g.Locale, err)
		}
	}
	cfg := grid.Config{
		Title:               g.Title,
		Columns:             cols,
		Provider:            opts.Provider,
		Filters:             opts.Filters,
		FilterPosition:      pos,
		EmptyCell:           g.EmptyCell,
		EmptyText:           g.EmptyText,
		ShowPageSummary:     g.ShowPageSummary,
		ShowFooter:          g.ShowFooter,
		PageRelativeSerials: g.PageRelativeSerials,
		Bootstrap:           g.Bootstrap,
		Locale:              locale,
	}
	if g.ShowFilters {
		cfg.FilterModel = opts.FilterModel
	}
	return grid.New(cfg)
}

// FilterAttributes returns the attributes with a filter input.
func (g *GridConfig) FilterAttributes() []string {
	var attrs []string
	for _, c := range g.Columns {
		if c.Attribute != "" && !c.DisableFilter && c.kind() == "data" {
			attrs = append(attrs, c.Attribute)
		}
	}
	return attrs
}

func (c ColumnConfig) kind() string {
	if c.Type == "" {
		return "data"
	}
	return strings.ToLower(c.Type)
}

func (c ColumnConfig) build() (columns.Column, error) {
	switch c.kind() {
	case "data":
		col := &columns.DataColumn{}
		if err := c.applyData(col); err != nil {
			return nil, err
		}
		return col, nil
	case "serial":
		col := &columns.SerialColumn{}
		if err := c.applyBase(&col.Base); err != nil {
			return nil, err
		}
		return col, nil
	case "formula":
		col := columns.NewFormulaColumn(nil)
		if err := c.applyData(&col.DataColumn); err != nil {
			return nil, err
		}
		if c.AutoFooter != nil {
			col.AutoFooter = *c.AutoFooter
		}
		if c.Formula == "" {
			return nil, fmt.Errorf("%w: formula column without formula", columns.ErrInvalidConfigState)
		}
		fn, err := compileFormula(c.Formula)
		if err != nil {
			return nil, err
		}
		col.Value = fn
		return col, nil
	}
	return nil, fmt.Errorf("unknown column type %q", c.Type)
}

func (c ColumnConfig) applyBase(b *columns.Base) error {
	b.Label = c.Label
	b.HAlign = markup.HAlign(strings.ToLower(c.HAlign))
	b.VAlign = markup.VAlign(strings.ToLower(c.VAlign))
	if err := b.HAlign.Validate(); err != nil {
		return err
	}
	if err := b.VAlign.Validate(); err != nil {
		return err
	}
	b.Width = c.Width
	b.WidthUnit = c.WidthUnit
	b.Format = c.Format
	b.Hidden = c.Hidden
	b.HidePageSummary = c.HidePageSummary
	if c.Footer != "" {
		b.Footer = c.Footer
	}

	fn, err := aggregates.ParseFunc(c.PageSummaryFunc)
	if err != nil {
		return err
	}
	b.PageSummaryFunc = fn

	switch v := c.PageSummary.(type) {
	case nil:
	case bool:
		if v {
			b.PageSummary = columns.Computed()
		}
	case string:
		b.PageSummary = columns.Literal(v)
	default:
		return fmt.Errorf("page_summary must be a boolean or a string, got %T", c.PageSummary)
	}
	if c.PageSummaryExpr != "" {
		if b.PageSummary.Mode == columns.SummaryLiteral {
			return fmt.Errorf("page_summary_expr cannot be combined with a literal page_summary")
		}
		fn, err := compileSummary(c.PageSummaryExpr)
		if err != nil {
			return err
		}
		b.PageSummary = columns.Override(fn)
	}
	return nil
}

func (c ColumnConfig) applyData(d *columns.DataColumn) error {
	if err := c.applyBase(&d.Base); err != nil {
		return err
	}
	d.Attribute = c.Attribute
	d.MergeHeader = c.MergeHeader
	d.FilterType = filters.Kind(strings.ToLower(c.FilterType))
	d.FilterPrompt = c.FilterPrompt
	d.DisableFilter = c.DisableFilter
	for _, o := range c.FilterOptions {
		label := o.Label
		if label == "" {
			label = o.Value
		}
		d.FilterOptions = append(d.FilterOptions, filters.Option{Value: o.Value, Label: label})
	}
	return nil
}
