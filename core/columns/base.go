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
	"strings"

	"github.com/google/taxigrid/core/aggregates"
	"github.com/google/taxigrid/core/formatter"
	"github.com/google/taxigrid/core/markup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Base holds the configuration and summary machinery shared by all column
// types. It is embedded, never used on its own.
type Base struct {
	Label     string
	HAlign    markup.HAlign
	VAlign    markup.VAlign
	Width     int
	WidthUnit string
	Format    string // formatter spec, e.g. "decimal:2"
	Hidden    bool

	PageSummary     PageSummary
	PageSummaryFunc aggregates.Func
	// HidePageSummary shows the empty cell in the summary row. The summary
	// is still computed.
	HidePageSummary bool
	Footer          any

	HeaderOptions      markup.Options
	ContentOptions     markup.Options
	PageSummaryOptions markup.Options
	FooterOptions      markup.Options

	ctx    *Context
	self   Column
	index  int
	format formatter.Spec
	rows   []any

	headerOpts  markup.Options
	contentOpts markup.Options
	summaryOpts markup.Options
	footerOpts  markup.Options
}

// setup binds the column to ctx and prepares the cell options. self is the
// outermost column value so that shared methods reach overridden ones.
func (b *Base) setup(ctx *Context, index int, self Column) error {
	if ctx == nil {
		return fmt.Errorf("%w: nil context", ErrInvalidConfigState)
	}
	b.ctx, b.self, b.index, b.rows = ctx, self, index, nil

	spec, err := formatter.ParseSpec(b.Format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfigState, err)
	}
	b.format = spec
	if err := b.PageSummary.validate(); err != nil {
		return err
	}

	b.headerOpts = b.HeaderOptions.Clone()
	b.contentOpts = b.ContentOptions.Clone()
	b.summaryOpts = b.PageSummaryOptions.Clone()
	b.footerOpts = b.FooterOptions.Clone()
	if err := markup.FormatColumn(b.HAlign, b.VAlign, b.Width, b.WidthUnit,
		&b.headerOpts, &b.contentOpts, &b.summaryOpts, &b.footerOpts); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfigState, err)
	}
	return nil
}

// collect fills the row cache when the grid shows page summaries and the
// summary is computed from the rows.
func (b *Base) collect() error {
	if !b.ctx.ShowPageSummary || !b.PageSummary.collects() {
		return nil
	}
	rows, err := collectRows(b.ctx, b.self)
	if err != nil {
		return err
	}
	b.rows = rows
	return nil
}

// Index returns the position of the column in its grid.
func (b *Base) Index() int {
	return b.index
}

// Visible reports whether the column is rendered.
func (b *Base) Visible() bool {
	return !b.Hidden
}

// Alignment returns the horizontal alignment.
func (b *Base) Alignment() markup.HAlign {
	return b.HAlign
}

// Rows returns a copy of the row values collected for the page summary.
func (b *Base) Rows() []any {
	return append([]any(nil), b.rows...)
}

func (b *Base) emptyCell() string {
	if b.ctx == nil {
		return ""
	}
	return b.ctx.EmptyCell
}

// summaryValue is the raw summary of a column computed from its rows.
func (b *Base) summaryValue() (any, error) {
	switch b.PageSummary.Mode {
	case SummaryLiteral:
		return b.PageSummary.Text, nil
	case SummaryComputed:
		return aggregates.Aggregate(b.rows, b.PageSummaryFunc)
	case SummaryOverride:
		agg, err := aggregates.Aggregate(b.rows, b.PageSummaryFunc)
		if err != nil {
			return nil, err
		}
		return b.PageSummary.Fn(agg, b.Rows())
	}
	return nil, nil
}

// summaryText renders the summary. Computed summaries go through format.
func (b *Base) summaryText(format func(any) (string, error)) (string, error) {
	v, err := b.self.SummaryValue()
	if err != nil {
		return "", err
	}
	if b.HidePageSummary {
		return b.emptyCell(), nil
	}
	switch b.PageSummary.Mode {
	case SummaryComputed:
		if v == nil {
			return "", nil
		}
		return format(v)
	case SummaryLiteral, SummaryOverride:
		if v == nil {
			return b.emptyCell(), nil
		}
		return fmt.Sprint(v), nil
	}
	return b.emptyCell(), nil
}

// formatValue formats v with the column format. nil shows the empty cell.
func (b *Base) formatValue(v any) (string, error) {
	if v == nil {
		return b.emptyCell(), nil
	}
	if b.ctx == nil || b.ctx.Formatter == nil {
		return fmt.Sprint(v), nil
	}
	return b.ctx.Formatter.Format(v, b.format)
}

// FooterValue returns the configured footer.
func (b *Base) FooterValue() (any, error) {
	return b.Footer, nil
}

// FooterText returns the configured footer, or the empty cell.
func (b *Base) FooterText() (string, error) {
	v, err := b.self.FooterValue()
	if err != nil {
		return "", err
	}
	if v == nil {
		return b.emptyCell(), nil
	}
	return fmt.Sprint(v), nil
}

// DataCell renders the cell of one row.
func (b *Base) DataCell(row Row) (*Cell, error) {
	v, err := b.self.CellValue(row)
	if err != nil {
		return nil, err
	}
	text, err := b.formatValue(v)
	if err != nil {
		return nil, err
	}
	return textCell(text, b.contentOpts.Clone()), nil
}

// SummaryCell renders the page summary cell.
func (b *Base) SummaryCell() (*Cell, error) {
	text, err := b.self.SummaryText()
	if err != nil {
		return nil, err
	}
	return textCell(text, b.summaryOpts.Clone()), nil
}

// FooterCell renders the footer cell.
func (b *Base) FooterCell() (*Cell, error) {
	text, err := b.self.FooterText()
	if err != nil {
		return nil, err
	}
	return textCell(text, b.footerOpts.Clone()), nil
}

// headerCell renders the header, spanning the filter row when merged.
func (b *Base) headerCell(merged bool) *Cell {
	opts := b.headerOpts.Clone()
	if merged {
		opts.RowSpan = 2
		opts.AddClass("kv-merged-header")
	}
	return textCell(b.self.HeaderText(), opts)
}

// humanize turns an attribute path such as "unit_price" into "Unit Price".
func (b *Base) humanize(attribute string) string {
	r := strings.NewReplacer("_", " ", ".", " ", "-", " ")
	words := strings.Join(strings.Fields(r.Replace(attribute)), " ")
	locale := language.Und
	if b.ctx != nil {
		locale = b.ctx.Locale
	}
	return cases.Title(locale).String(words)
}
