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

// Package columns implements the columns of a grid: plain data columns,
// serial (row number) columns and formula columns computed from their
// siblings, each able to contribute a page summary cell.
package columns

import (
	"fmt"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/taxigrid/core/data"
	"github.com/google/taxigrid/core/filters"
	"github.com/google/taxigrid/core/formatter"
	"github.com/google/taxigrid/core/markup"
	"golang.org/x/text/language"
)

// Row identifies one row of the current page.
type Row struct {
	Model any
	Key   any
	Index int // position on the page, starting at 0
}

// Scope tells a formula what it is being evaluated for: a single row, the
// page summary or the footer.
type Scope interface {
	scopeName() string
}

// RowScope evaluates a formula for one row.
type RowScope struct {
	Row Row
}

// SummaryScope evaluates a formula for the page summary.
type SummaryScope struct{}

// FooterScope evaluates a formula for the footer.
type FooterScope struct{}

func (RowScope) scopeName() string     { return "row" }
func (SummaryScope) scopeName() string { return "summary" }
func (FooterScope) scopeName() string  { return "footer" }

// ScopeName returns "row", "summary" or "footer".
func ScopeName(s Scope) string {
	if s == nil {
		return ""
	}
	return s.scopeName()
}

// Cell is a rendered table cell. A nil *Cell means the column emits no cell
// in that row.
type Cell struct {
	Text    string // plain text, empty for widget cells
	Content safehtml.HTML
	Options markup.Options
}

func textCell(text string, opts markup.Options) *Cell {
	return &Cell{Text: text, Content: markup.Text(text), Options: opts}
}

// Column is implemented by every column type.
type Column interface {
	// Init binds the column to its grid and position. It is called again
	// whenever the page changes.
	Init(ctx *Context, index int) error
	Index() int
	Visible() bool
	Alignment() markup.HAlign
	HeaderText() string

	CellValue(row Row) (any, error)
	SummaryValue() (any, error)
	SummaryText() (string, error)
	FooterValue() (any, error)
	FooterText() (string, error)

	HeaderCell() (*Cell, error)
	FilterCell() (*Cell, error)
	DataCell(row Row) (*Cell, error)
	SummaryCell() (*Cell, error)
	FooterCell() (*Cell, error)
}

// Registry gives access to the columns of a grid by position.
type Registry interface {
	At(i int) (Column, bool)
	Len() int
}

// List is a Registry backed by a slice.
type List []Column

// At returns the column at position i.
func (l List) At(i int) (Column, bool) {
	if i < 0 || i >= len(l) {
		return nil, false
	}
	return l[i], true
}

// Len returns the number of columns.
func (l List) Len() int {
	return len(l)
}

// FilterModel holds the current filter values of a grid.
type FilterModel interface {
	FilterValues(attribute string) []string
	IsFilterable(attribute string) bool
}

// FilterPosition places the filter row.
type FilterPosition string

const (
	FilterHeader FilterPosition = "header" // above the header row
	FilterBody   FilterPosition = "body"   // below the header row
	FilterFooter FilterPosition = "footer" // in the table footer
)

// ParseFilterPosition parses a filter position, defaulting to FilterBody.
func ParseFilterPosition(s string) (FilterPosition, error) {
	switch p := FilterPosition(strings.ToLower(s)); p {
	case "":
		return FilterBody, nil
	case FilterHeader, FilterBody, FilterFooter:
		return p, nil
	}
	return "", fmt.Errorf("invalid filter position %q", s)
}

// Context carries what columns need from their grid. One context is shared
// by all columns of a grid for the duration of a render.
type Context struct {
	Provider            data.Provider
	Columns             Registry
	Formatter           formatter.Formatter
	Filters             *filters.Registry
	FilterModel         FilterModel // nil when the grid has no filters
	FilterPosition      FilterPosition
	EmptyCell           string
	ShowPageSummary     bool
	PageRelativeSerials bool
	Bootstrap           bool // adds form-control to filter inputs
	Locale              language.Tag

	page      []data.Item
	loaded    bool
	resolving []Column
}

// Page returns the items of the current page, reading them from the
// provider once per Reset.
func (c *Context) Page() ([]data.Item, error) {
	if c.loaded {
		return c.page, nil
	}
	if c.Provider == nil {
		return nil, fmt.Errorf("%w: no data provider", ErrInvalidConfigState)
	}
	items, err := c.Provider.PageItems()
	if err != nil {
		return nil, err
	}
	c.page, c.loaded = items, true
	return c.page, nil
}

// Offset returns the position of the first page item in the whole result.
func (c *Context) Offset() int {
	if c.Provider == nil {
		return 0
	}
	return c.Provider.Offset()
}

// Reset drops the cached page so the next Page call reads it again.
func (c *Context) Reset() {
	c.page, c.loaded = nil, false
	c.resolving = nil
}

// filterAdjacent reports whether a filter row is rendered next to the header.
func (c *Context) filterAdjacent() bool {
	return c.FilterModel != nil && c.FilterPosition != FilterFooter
}

// enter pushes col on the resolution stack and fails if it is already being
// evaluated. The returned func pops it again.
func (c *Context) enter(col Column) (func(), error) {
	for i, r := range c.resolving {
		if r == col {
			path := make([]string, 0, len(c.resolving)-i+1)
			for _, p := range c.resolving[i:] {
				path = append(path, fmt.Sprint(p.Index()))
			}
			path = append(path, fmt.Sprint(col.Index()))
			return nil, fmt.Errorf("%w: %s", ErrCircularReference, strings.Join(path, " -> "))
		}
	}
	c.resolving = append(c.resolving, col)
	n := len(c.resolving)
	return func() { c.resolving = c.resolving[:n-1] }, nil
}

var (
	_ Column = (*DataColumn)(nil)
	_ Column = (*SerialColumn)(nil)
	_ Column = (*FormulaColumn)(nil)
)
