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

package views

import (
	"github.com/google/safehtml"
)

// RowKind tells the template how to style a row.
type RowKind string

const (
	RowHeader  RowKind = "header"
	RowFilter  RowKind = "filter"
	RowData    RowKind = "data"
	RowSummary RowKind = "summary"
	RowFooter  RowKind = "footer"
)

// RowView is one rendered table row. Cells are complete th/td elements.
type RowView struct {
	Kind  RowKind
	Cells []safehtml.HTML
}

// PageLink is a link in the pager.
type PageLink struct {
	Label  string
	URL    safehtml.URL
	Active bool
}

// TableViewModel contains the grid formatted for template consumption
type TableViewModel struct {
	Title       string
	Head        []RowView // header row, plus the filter row unless it sits in the footer
	Body        []RowView
	Foot        []RowView // page summary, footer and relocated filter rows
	ColumnCount int       // number of visible columns
	Empty       bool
	EmptyText   string
	EmptyRow    safehtml.HTML // row spanning all columns with EmptyText

	// Pagination info
	TotalRows    int // rows matching the filters
	FirstRow     int // 1-based position of the first displayed row
	LastRow      int
	Pages        []PageLink
	ClearURL     safehtml.URL  // URL without filters
	HasFilter    bool          // whether a filter row is shown
	HiddenInputs safehtml.HTML // form fields carrying the non-filter state
}

// GridInfo describes a grid on the landing page
type GridInfo struct {
	Name  string
	Title string
	URL   safehtml.URL
}

// LandingViewModel lists the available grids
type LandingViewModel struct {
	Title string
	Grids []GridInfo
}
