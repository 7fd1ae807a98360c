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

// Package grid lays out columns over a page of models and renders the
// result as a table with optional filter, page summary and footer rows.
package grid

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/taxigrid/core/columns"
	"github.com/google/taxigrid/core/data"
	"github.com/google/taxigrid/core/filters"
	"github.com/google/taxigrid/core/formatter"
	"golang.org/x/text/language"
)

// DefaultEmptyText is shown when the page has no rows.
const DefaultEmptyText = "No results found."

// Config describes a grid.
type Config struct {
	Title    string
	Columns  []columns.Column
	Provider data.Provider

	Formatter      formatter.Formatter // defaults to formatter.New
	Filters        *filters.Registry   // defaults to filters.NewRegistry
	FilterModel    columns.FilterModel // nil hides the filter row
	FilterPosition columns.FilterPosition

	EmptyCell           string
	EmptyText           string
	ShowPageSummary     bool
	ShowFooter          bool
	PageRelativeSerials bool
	Bootstrap           bool
	Locale              language.Tag
}

// Grid owns the columns of a table and the context they share.
type Grid struct {
	title      string
	emptyText  string
	showFooter bool
	cols       columns.List
	ctx        *columns.Context
}

// New creates a grid and initializes its columns in order. The first
// column error aborts construction.
func New(cfg Config) (*Grid, error) {
	if cfg.Provider == nil {
		return nil, errors.New("grid: no data provider")
	}
	if len(cfg.Columns) == 0 {
		return nil, errors.New("grid: no columns")
	}
	for i, c := range cfg.Columns {
		if c == nil {
			return nil, columns.Wrap(i, fmt.Errorf("%w: nil column", columns.ErrInvalidConfigState))
		}
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.New(formatter.Options{Locale: cfg.Locale, NullDisplay: cfg.EmptyCell})
	}
	if cfg.Filters == nil {
		cfg.Filters = filters.NewRegistry()
	}
	pos := cfg.FilterPosition
	if pos == "" {
		pos = columns.FilterBody
	}
	if _, err := columns.ParseFilterPosition(string(pos)); err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	emptyText := cfg.EmptyText
	if emptyText == "" {
		emptyText = DefaultEmptyText
	}

	cols := columns.List(append([]columns.Column(nil), cfg.Columns...))
	g := &Grid{
		title:      cfg.Title,
		emptyText:  emptyText,
		showFooter: cfg.ShowFooter,
		cols:       cols,
		ctx: &columns.Context{
			Provider:            cfg.Provider,
			Columns:             cols,
			Formatter:           cfg.Formatter,
			Filters:             cfg.Filters,
			FilterModel:         cfg.FilterModel,
			FilterPosition:      pos,
			EmptyCell:           cfg.EmptyCell,
			ShowPageSummary:     cfg.ShowPageSummary,
			PageRelativeSerials: cfg.PageRelativeSerials,
			Bootstrap:           cfg.Bootstrap,
			Locale:              cfg.Locale,
		},
	}
	if err := g.Refresh(); err != nil {
		return nil, err
	}
	return g, nil
}

// Refresh reads the current page again and re-initializes every column.
// Call it after the provider moved to another page.
func (g *Grid) Refresh() error {
	g.ctx.Reset()
	for i, c := range g.cols {
		if err := c.Init(g.ctx, i); err != nil {
			return columns.Wrap(i, err)
		}
	}
	items, err := g.ctx.Page()
	if err != nil {
		return fmt.Errorf("grid: reading page: %w", err)
	}
	slog.Debug("grid initialized", "title", g.title, "columns", len(g.cols), "rows", len(items))
	return nil
}

// Title returns the grid title.
func (g *Grid) Title() string {
	return g.title
}

// Columns returns the column registry.
func (g *Grid) Columns() columns.Registry {
	return g.cols
}

// Context returns the context shared by the columns.
func (g *Grid) Context() *columns.Context {
	return g.ctx
}

func (g *Grid) visible() []columns.Column {
	var vis []columns.Column
	for _, c := range g.cols {
		if c.Visible() {
			vis = append(vis, c)
		}
	}
	return vis
}
