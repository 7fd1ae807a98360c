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

package server

import (
	"fmt"
	"strings"

	"github.com/google/taxigrid/core/config"
	"github.com/google/taxigrid/core/data"
	"github.com/google/taxigrid/core/filters"
	"github.com/google/taxigrid/core/query"
)

// Match reports whether value satisfies a filter expression.
//
//	"CLOSED"         exact match
//	'CLOSED'         contains
//	CLOSED           contains when loose, exact otherwise
//	!x  x|y  x&y     not, or, and; & binds tighter than |
//
// Contains matches ignore case. Parentheses are not supported.
func Match(filter, value string, loose bool) bool {
	for _, or := range strings.Split(filter, "|") {
		all := true
		for _, term := range strings.Split(or, "&") {
			term = strings.TrimSpace(term)
			not := strings.HasPrefix(term, "!")
			if not {
				term = strings.TrimSpace(term[1:])
			}
			ok := matchTerm(term, value, loose)
			if not {
				ok = !ok
			}
			all = all && ok
		}
		if all {
			return true
		}
	}
	return false
}

func matchTerm(term, value string, loose bool) bool {
	switch {
	case term == "":
		return false
	case len(term) >= 2 && term[0] == '"' && term[len(term)-1] == '"':
		return value == term[1:len(term)-1]
	case len(term) >= 2 && term[0] == '\'' && term[len(term)-1] == '\'':
		return contains(value, term[1:len(term)-1])
	case loose:
		return contains(value, term)
	}
	return value == term
}

func contains(value, sub string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(sub))
}

// filterPredicate returns the row predicate for the active filters of q, or
// nil when nothing is filtered. Text inputs match loosely; choice widgets
// match one of the selected values exactly. A single checkbox posts a hidden
// "0" before its value, so only its last value counts.
func filterPredicate(def *config.GridConfig, q *query.Query) func(model any) bool {
	type filter struct {
		attribute string
		values    []string
		loose     bool
	}
	var active []filter
	for _, attr := range q.ActiveFilters() {
		kind, hasOptions := filterKind(def, attr)
		values := q.FilterValues(attr)
		if kind == filters.KindCheckbox && !hasOptions {
			values = values[len(values)-1:]
		}
		active = append(active, filter{attribute: attr, values: values, loose: kind == filters.KindText})
	}
	if len(active) == 0 {
		return nil
	}
	return func(model any) bool {
		for _, f := range active {
			v, err := data.Attribute(model, f.attribute)
			if err != nil {
				return false
			}
			if !matchAny(f.values, cellString(v), f.loose) {
				return false
			}
		}
		return true
	}
}

func matchAny(exprs []string, value string, loose bool) bool {
	for _, f := range exprs {
		if Match(f, value, loose) {
			return true
		}
	}
	return false
}

func filterKind(def *config.GridConfig, attr string) (filters.Kind, bool) {
	for _, c := range def.Columns {
		if c.Attribute != attr {
			continue
		}
		hasOptions := len(c.FilterOptions) > 0
		if c.FilterType != "" {
			return filters.Kind(strings.ToLower(c.FilterType)), hasOptions
		}
		if hasOptions {
			return filters.KindSelect, true
		}
		break
	}
	return filters.KindText, false
}

// cellString renders v for matching; booleans compare like the "1" and "0"
// a checkbox posts.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if x {
			return "1"
		}
		return "0"
	case string:
		return x
	}
	return fmt.Sprint(v)
}
