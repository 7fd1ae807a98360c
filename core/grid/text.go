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
	"github.com/google/taxigrid/core/markup"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderText renders the current page as an ASCII table. Filter cells are
// left out.
func (g *Grid) RenderText() (string, error) {
	t, err := g.Build()
	if err != nil {
		return "", err
	}
	return t.Text(), nil
}

// Text renders the table as ASCII.
func (t *Table) Text() string {
	tw := table.NewWriter()
	if t.Title != "" {
		tw.SetTitle("%s", t.Title)
	}
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	tw.SetStyle(style)

	configs := make([]table.ColumnConfig, 0, len(t.Columns))
	for i, c := range t.Columns {
		align := textAlign(c.Alignment())
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: align,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(configs)

	tw.AppendHeader(textRow(t.Header))
	for _, cells := range t.Body {
		tw.AppendRow(textRow(cells))
	}
	if len(t.Body) == 0 && len(t.Columns) > 0 {
		row := make(table.Row, len(t.Columns))
		row[0] = t.EmptyText
		for i := 1; i < len(row); i++ {
			row[i] = ""
		}
		tw.AppendRow(row)
	}
	if t.Summary != nil {
		tw.AppendFooter(textRow(t.Summary))
	}
	if t.Footer != nil {
		tw.AppendFooter(textRow(t.Footer))
	}
	return tw.Render()
}

func textRow(cells []*columns.Cell) table.Row {
	row := make(table.Row, 0, len(cells))
	for _, c := range cells {
		if c == nil {
			row = append(row, "")
			continue
		}
		row = append(row, c.Text)
	}
	return row
}

func textAlign(a markup.HAlign) text.Align {
	switch a {
	case markup.AlignCenter:
		return text.AlignCenter
	case markup.AlignRight:
		return text.AlignRight
	case markup.AlignLeft:
		return text.AlignLeft
	}
	return text.AlignDefault
}
