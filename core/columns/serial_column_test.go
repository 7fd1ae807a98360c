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
	"testing"

	"github.com/google/taxigrid/core/aggregates"
	"github.com/google/taxigrid/core/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialNumbers(t *testing.T) {
	tests := []struct {
		name         string
		pageRelative bool
		want         []any
	}{
		{"continuous", false, []any{3, 4}},
		{"page relative", true, []any{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := data.NewSliceProvider(items(1, 2, 3, 4, 5)).Paginate(data.Pagination{Page: 1, PageSize: 2})
			col := NewSerialColumn()
			col.PageSummary = Computed()
			ctx := newContext(provider, col)
			ctx.PageRelativeSerials = tt.pageRelative
			initAll(t, ctx)

			assert.Equal(t, tt.want, col.Rows())
			text, err := col.SummaryText()
			require.NoError(t, err)
			assert.Equal(t, "2", text)
		})
	}
}

func TestSerialDefaults(t *testing.T) {
	col := &SerialColumn{}
	col.PageSummary = Computed()
	col.PageSummaryFunc = aggregates.FuncSum
	ctx := newContext(data.NewSliceProvider(items(1, 2, 3)), col)
	ctx.FilterModel = filterModel{}
	initAll(t, ctx)

	assert.Equal(t, aggregates.FuncSum, col.PageSummaryFunc)
	text, err := col.SummaryText()
	require.NoError(t, err)
	assert.Equal(t, "6", text)

	header, err := col.HeaderCell()
	require.NoError(t, err)
	assert.Equal(t, "#", header.Text)
	assert.Equal(t, 2, header.Options.RowSpan)
	assert.Equal(t, "kv-align-center kv-align-middle kv-merged-header", header.Options.Class())
	assert.Equal(t, "50px", header.Options.Width())

	filter, err := col.FilterCell()
	require.NoError(t, err)
	assert.Nil(t, filter)

	cell, err := col.DataCell(Row{Index: 0})
	require.NoError(t, err)
	assert.Equal(t, "1", cell.Text)
	assert.Equal(t, "", cell.Options.Width())
}

func TestSerialSummaryFuncDefault(t *testing.T) {
	tests := []struct {
		name string
		fn   aggregates.Func
		want string
	}{
		{"unset counts", aggregates.FuncUnset, "3"},
		{"explicit none sums", aggregates.FuncNone, "6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := &SerialColumn{}
			col.PageSummary = Computed()
			col.PageSummaryFunc = tt.fn
			ctx := newContext(data.NewSliceProvider(items(1, 2, 3)), col)
			initAll(t, ctx)

			text, err := col.SummaryText()
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestSerialHeaderWithFilterInFooter(t *testing.T) {
	col := NewSerialColumn()
	ctx := newContext(data.NewSliceProvider(nil), col)
	ctx.FilterModel = filterModel{}
	ctx.FilterPosition = FilterFooter
	initAll(t, ctx)

	header, err := col.HeaderCell()
	require.NoError(t, err)
	assert.False(t, header.Options.HasClass("kv-merged-header"))
}
