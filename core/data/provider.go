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

// Package data defines the page of models a grid renders and an in-memory
// provider that paginates a slice of models.
package data

import (
	"fmt"
	"math"
)

// Item is one row of the current page.
type Item struct {
	Key   any
	Model any
}

// Provider supplies the models of the page currently being rendered.
type Provider interface {
	// PageItems returns the current page in display order.
	PageItems() ([]Item, error)
	// Offset returns the zero-based position of the first page item within
	// the whole result set.
	Offset() int
	// TotalCount returns the number of models across all pages.
	TotalCount() int
}

// KeyFunc derives the key of a model from the model and its position in the
// unpaginated slice.
type KeyFunc func(model any, i int) any

// Pagination describes which page of a result set is displayed.
type Pagination struct {
	Page     int // zero-based page number
	PageSize int // 0 disables pagination
}

// Offset returns the index of the first item of the page. Offsets past
// math.MaxInt saturate.
func (p Pagination) Offset() int {
	if p.PageSize <= 0 || p.Page <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return p.Page * p.PageSize
}

// PageCount returns the number of pages needed for total items.
func (p Pagination) PageCount(total int) int {
	if p.PageSize <= 0 {
		if total == 0 {
			return 0
		}
		return 1
	}
	n := total / p.PageSize
	if total%p.PageSize != 0 {
		n++
	}
	return n
}

// SliceProvider serves models held in memory.
type SliceProvider struct {
	models     []any
	keyFunc    KeyFunc
	where      func(model any) bool
	pagination Pagination
}

// NewSliceProvider creates a provider over models. Keys default to the
// model's index in the slice.
func NewSliceProvider(models []any) *SliceProvider {
	return &SliceProvider{models: models}
}

// WithKey sets the function used to derive keys.
func (p *SliceProvider) WithKey(fn KeyFunc) *SliceProvider {
	p.keyFunc = fn
	return p
}

// WithKeyAttribute derives keys from an attribute of each model.
func (p *SliceProvider) WithKeyAttribute(attribute string) *SliceProvider {
	p.keyFunc = func(model any, i int) any {
		v, err := Attribute(model, attribute)
		if err != nil || v == nil {
			return i
		}
		return v
	}
	return p
}

// Where restricts the provider to models accepted by pred.
func (p *SliceProvider) Where(pred func(model any) bool) *SliceProvider {
	p.where = pred
	return p
}

// Paginate sets the page to serve.
func (p *SliceProvider) Paginate(pg Pagination) *SliceProvider {
	p.pagination = pg
	return p
}

// Pagination returns the current pagination.
func (p *SliceProvider) Pagination() Pagination {
	return p.pagination
}

func (p *SliceProvider) filtered() []int {
	indices := make([]int, 0, len(p.models))
	for i, m := range p.models {
		if p.where == nil || p.where(m) {
			indices = append(indices, i)
		}
	}
	return indices
}

// PageItems returns the items of the configured page.
func (p *SliceProvider) PageItems() ([]Item, error) {
	if p.pagination.Page < 0 || p.pagination.PageSize < 0 {
		return nil, fmt.Errorf("invalid pagination: page %d, size %d", p.pagination.Page, p.pagination.PageSize)
	}
	indices := p.filtered()
	start := p.pagination.Offset()
	if start < 0 {
		return nil, fmt.Errorf("invalid pagination: offset %d", start)
	}
	if start >= len(indices) {
		return []Item{}, nil
	}
	end := len(indices)
	if p.pagination.PageSize > 0 && p.pagination.PageSize < end-start {
		end = start + p.pagination.PageSize
	}
	items := make([]Item, 0, end-start)
	for _, i := range indices[start:end] {
		model := p.models[i]
		var key any = i
		if p.keyFunc != nil {
			key = p.keyFunc(model, i)
		}
		items = append(items, Item{Key: key, Model: model})
	}
	return items, nil
}

// Offset returns the offset of the current page.
func (p *SliceProvider) Offset() int {
	return p.pagination.Offset()
}

// TotalCount returns the number of models accepted by the filter.
func (p *SliceProvider) TotalCount() int {
	return len(p.filtered())
}
