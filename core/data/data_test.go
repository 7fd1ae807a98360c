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

package data

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type order struct {
	ID       int    `grid:"id"`
	Customer string `grid:"customer"`
	Amount   float64
	Address  *address
	secret   string
}

type address struct {
	City string `grid:"city"`
}

func TestAttribute(t *testing.T) {
	o := &order{ID: 7, Customer: "ACME", Amount: 12.5, Address: &address{City: "Lyon"}, secret: "x"}
	tests := []struct {
		model    any
		path     string
		expected any
	}{
		{o, "id", 7},
		{o, "customer", "ACME"},
		{o, "amount", 12.5},
		{o, "Address.city", "Lyon"},
		{o, "secret", nil},
		{&order{}, "Address.city", nil},
		{map[string]any{"a": map[string]any{"b": 2}}, "a.b", 2},
		{map[string]any{"items": []any{"x", "y"}}, "items.1", "y"},
		{map[string]string{"name": "n"}, "name", "n"},
		{map[string]any{}, "missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Attribute(tt.model, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := Attribute(42, "x")
	assert.Error(t, err)
	_, err = Attribute(o, "")
	assert.Error(t, err)
}

func TestSliceProviderPagination(t *testing.T) {
	models := []any{
		map[string]any{"id": "a", "n": 1},
		map[string]any{"id": "b", "n": 2},
		map[string]any{"id": "c", "n": 3},
		map[string]any{"id": "d", "n": 4},
		map[string]any{"id": "e", "n": 5},
	}
	p := NewSliceProvider(models).WithKeyAttribute("id").Paginate(Pagination{Page: 1, PageSize: 2})

	items, err := p.PageItems()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[0].Key)
	assert.Equal(t, "d", items[1].Key)
	assert.Equal(t, 2, p.Offset())
	assert.Equal(t, 5, p.TotalCount())
	assert.Equal(t, 3, p.Pagination().PageCount(p.TotalCount()))

	p.Paginate(Pagination{Page: 2, PageSize: 2})
	items, err = p.PageItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "e", items[0].Key)

	p.Paginate(Pagination{Page: 9, PageSize: 2})
	items, err = p.PageItems()
	require.NoError(t, err)
	assert.Empty(t, items)

	p.Paginate(Pagination{Page: -1, PageSize: 2})
	_, err = p.PageItems()
	assert.Error(t, err)
}

func TestSliceProviderHugePage(t *testing.T) {
	p := NewSliceProvider([]any{1, 2, 3}).Paginate(Pagination{Page: 1 << 62, PageSize: 2})

	assert.Equal(t, math.MaxInt, p.Offset())
	items, err := p.PageItems()
	require.NoError(t, err)
	assert.Empty(t, items)

	p.Paginate(Pagination{Page: 0, PageSize: math.MaxInt})
	items, err = p.PageItems()
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, 1, p.Pagination().PageCount(3))

	assert.Equal(t, math.MaxInt, Pagination{Page: math.MaxInt, PageSize: math.MaxInt}.Offset())
	assert.Equal(t, 4, Pagination{Page: 2, PageSize: 2}.Offset())
}

func TestSliceProviderWhere(t *testing.T) {
	models := []any{1, 2, 3, 4}
	p := NewSliceProvider(models).Where(func(m any) bool { return m.(int)%2 == 0 })

	items, err := p.PageItems()
	require.NoError(t, err)
	assert.Equal(t, []Item{{Key: 1, Model: 2}, {Key: 3, Model: 4}}, items)
	assert.Equal(t, 2, p.TotalCount())
	assert.Equal(t, 0, p.Offset())
}
