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
	"log/slog"
)

// SummaryMode selects how a column fills the page summary row.
type SummaryMode int

const (
	SummaryDisabled SummaryMode = iota
	SummaryLiteral
	SummaryComputed
	SummaryOverride
)

func (m SummaryMode) String() string {
	switch m {
	case SummaryDisabled:
		return "disabled"
	case SummaryLiteral:
		return "literal"
	case SummaryComputed:
		return "computed"
	case SummaryOverride:
		return "override"
	}
	return fmt.Sprintf("SummaryMode(%d)", int(m))
}

// SummaryFunc turns the aggregate of a page, and the row values it was
// computed from, into the summary text. Its result is shown unformatted.
type SummaryFunc func(summary any, rows []any) (string, error)

// PageSummary configures the page summary of a column. The zero value is
// disabled.
type PageSummary struct {
	Mode SummaryMode
	Text string      // SummaryLiteral
	Fn   SummaryFunc // SummaryOverride
}

// Literal shows text as is.
func Literal(text string) PageSummary {
	return PageSummary{Mode: SummaryLiteral, Text: text}
}

// Computed shows the formatted aggregate of the page.
func Computed() PageSummary {
	return PageSummary{Mode: SummaryComputed}
}

// Override shows the result of fn applied to the aggregate of the page.
func Override(fn SummaryFunc) PageSummary {
	return PageSummary{Mode: SummaryOverride, Fn: fn}
}

// collects reports whether the summary needs the row values of the page.
func (p PageSummary) collects() bool {
	return p.Mode == SummaryComputed || p.Mode == SummaryOverride
}

func (p PageSummary) validate() error {
	switch p.Mode {
	case SummaryDisabled, SummaryLiteral, SummaryComputed:
		return nil
	case SummaryOverride:
		if p.Fn == nil {
			return fmt.Errorf("%w: page summary override without function", ErrInvalidConfigState)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown page summary mode %d", ErrInvalidConfigState, int(p.Mode))
}

// collectRows computes the value of col for every item of the current page,
// in page order.
func collectRows(ctx *Context, col Column) ([]any, error) {
	items, err := ctx.Page()
	if err != nil {
		return nil, err
	}
	rows := make([]any, 0, len(items))
	for i, item := range items {
		v, err := col.CellValue(Row{Model: item.Model, Key: item.Key, Index: i})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, v)
	}
	slog.Debug("collected page summary rows", "column", col.Index(), "rows", len(rows))
	return rows, nil
}
