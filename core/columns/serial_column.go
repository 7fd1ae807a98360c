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

	"github.com/google/taxigrid/core/aggregates"
	"github.com/google/taxigrid/core/markup"
)

// SerialColumn numbers the rows of the grid. Numbering continues across
// pages unless the grid asks for page relative serials.
type SerialColumn struct {
	Base
}

// NewSerialColumn returns a serial column with the usual defaults.
func NewSerialColumn() *SerialColumn {
	s := &SerialColumn{}
	s.applyDefaults()
	return s
}

func (s *SerialColumn) applyDefaults() {
	if s.HAlign == "" {
		s.HAlign = markup.AlignCenter
	}
	if s.VAlign == "" {
		s.VAlign = markup.AlignMiddle
	}
	if s.Width == 0 {
		s.Width = 50
		s.WidthUnit = markup.UnitPixel
	}
	if s.PageSummaryFunc == aggregates.FuncUnset {
		s.PageSummaryFunc = aggregates.FuncCount
	}
	if s.Label == "" {
		s.Label = "#"
	}
}

// Init implements Column.
func (s *SerialColumn) Init(ctx *Context, index int) error {
	s.applyDefaults()
	if err := s.setup(ctx, index, s); err != nil {
		return err
	}
	return s.collect()
}

// CellValue returns the 1-based ordinal of the row.
func (s *SerialColumn) CellValue(row Row) (any, error) {
	n := row.Index + 1
	if s.ctx != nil && !s.ctx.PageRelativeSerials {
		n += s.ctx.Offset()
	}
	return n, nil
}

// SummaryValue returns the raw page summary.
func (s *SerialColumn) SummaryValue() (any, error) {
	return s.summaryValue()
}

// SummaryText returns the page summary without applying the column format.
func (s *SerialColumn) SummaryText() (string, error) {
	return s.summaryText(func(v any) (string, error) { return fmt.Sprint(v), nil })
}

// HeaderText returns the label.
func (s *SerialColumn) HeaderText() string {
	return s.Label
}

// HeaderCell spans the filter row whenever one is rendered next to the
// header.
func (s *SerialColumn) HeaderCell() (*Cell, error) {
	return s.headerCell(s.ctx != nil && s.ctx.filterAdjacent()), nil
}

// FilterCell returns nil; serial columns cannot be filtered.
func (s *SerialColumn) FilterCell() (*Cell, error) {
	return nil, nil
}
