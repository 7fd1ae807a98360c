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

package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/taxigrid/core/data"
)

// DefaultPerPage is the page size used when the URL has none.
const DefaultPerPage = 20

// Query represents the parsed state of a grid URL
type Query struct {
	// Base path (e.g., "/grid")
	Path string

	Grid    string              // The grid being viewed
	Page    int                 // 1-based page number
	PerPage int                 // Rows per page (0 = show all)
	Filters map[string][]string // Filter values (attribute -> values)

	filterable map[string]bool
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path:    u.Path,
		Page:    1,
		PerPage: DefaultPerPage,
		Filters: make(map[string][]string),
	}

	q := u.Query()
	state.Grid = q.Get("grid")

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		state.Page = page
	}
	if perPage := q.Get("per-page"); perPage != "" {
		if n, err := strconv.Atoi(perPage); err == nil && n >= 0 {
			state.PerPage = n
		}
	}

	// Extract filter parameters (format: filter:attribute=value, repeatable)
	for key, values := range q {
		if !strings.HasPrefix(key, "filter:") {
			continue
		}
		attribute := strings.TrimPrefix(key, "filter:")
		for _, v := range values {
			if v != "" {
				state.Filters[attribute] = append(state.Filters[attribute], v)
			}
		}
	}
	return state
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	clone := &Query{
		Path:       s.Path,
		Grid:       s.Grid,
		Page:       s.Page,
		PerPage:    s.PerPage,
		Filters:    make(map[string][]string, len(s.Filters)),
		filterable: s.filterable,
	}
	for attribute, values := range s.Filters {
		clone.Filters[attribute] = append([]string(nil), values...)
	}
	return clone
}

// Pagination returns the page to display.
func (s *Query) Pagination() data.Pagination {
	return data.Pagination{Page: s.Page - 1, PageSize: s.PerPage}
}

// SetFilterable restricts filtering to the given attributes. Without a call
// every attribute is filterable.
func (s *Query) SetFilterable(attributes ...string) {
	s.filterable = make(map[string]bool, len(attributes))
	for _, a := range attributes {
		s.filterable[a] = true
	}
}

// IsFilterable reports whether a filter input is shown for attribute.
func (s *Query) IsFilterable(attribute string) bool {
	if s.filterable == nil {
		return true
	}
	return s.filterable[attribute]
}

// FilterValues returns the current filter values of attribute.
func (s *Query) FilterValues(attribute string) []string {
	return s.Filters[attribute]
}

// ActiveFilters returns the filtered attributes in sorted order, limited to
// filterable ones.
func (s *Query) ActiveFilters() []string {
	var attrs []string
	for attribute, values := range s.Filters {
		if len(values) > 0 && s.IsFilterable(attribute) {
			attrs = append(attrs, attribute)
		}
	}
	sort.Strings(attrs)
	return attrs
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()
	if s.Grid != "" {
		q.Set("grid", s.Grid)
	}
	if s.Page > 1 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	if s.PerPage != DefaultPerPage {
		q.Set("per-page", strconv.Itoa(s.PerPage))
	}
	for attribute, values := range s.Filters {
		for _, v := range values {
			if v != "" {
				q.Add("filter:"+attribute, v)
			}
		}
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

// WithPage returns a URL showing another page
func (s *Query) WithPage(page int) safehtml.URL {
	newState := s.Clone()
	if page < 1 {
		page = 1
	}
	newState.Page = page
	return newState.ToSafeURL()
}

// WithFilter returns a URL with the filter of attribute replaced by values.
// Changing a filter goes back to the first page.
func (s *Query) WithFilter(attribute string, values ...string) safehtml.URL {
	newState := s.Clone()
	if len(values) == 0 {
		delete(newState.Filters, attribute)
	} else {
		newState.Filters[attribute] = append([]string(nil), values...)
	}
	newState.Page = 1
	return newState.ToSafeURL()
}

// WithoutFilters returns a URL with all filters cleared
func (s *Query) WithoutFilters() safehtml.URL {
	newState := s.Clone()
	newState.Filters = make(map[string][]string)
	newState.Page = 1
	return newState.ToSafeURL()
}
