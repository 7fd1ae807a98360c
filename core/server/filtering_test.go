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
	"net/url"
	"testing"

	"github.com/google/taxigrid/core/config"
	"github.com/google/taxigrid/core/query"
	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		filter string
		value  string
		loose  bool
		want   bool
	}{
		{`"a"`, "a", false, true},
		{`"a"`, "ab", true, false},
		{`'bug'`, "debug", false, true},
		{`'BUG'`, "debug", false, true},
		{`bug`, "debug", false, false},
		{`bug`, "debug", true, true},
		{`"a"|"b"`, "b", false, true},
		{`"a"|"b"`, "c", false, false},
		{`'a'&'b'`, "ba", false, true},
		{`'a'&'b'`, "a", false, false},
		{`!'a'`, "b", false, true},
		{`'a'&!'b'`, "ab", false, false},
		{`'a'&'b'|'c'`, "c", false, true},
		{``, "", true, false},
	}
	for _, tt := range tests {
		if got := Match(tt.filter, tt.value, tt.loose); got != tt.want {
			t.Errorf("Match(%q, %q, %v) = %v; want %v", tt.filter, tt.value, tt.loose, got, tt.want)
		}
	}
}

func TestFilterPredicate(t *testing.T) {
	def := &config.GridConfig{Columns: []config.ColumnConfig{
		{Attribute: "name"},
		{Attribute: "active", FilterType: "checkbox"},
		{Attribute: "tag", FilterOptions: []config.OptionConfig{{Value: "a"}, {Value: "ab"}}},
	}}
	rows := []any{
		map[string]any{"name": "Alice", "active": true, "tag": "a"},
		map[string]any{"name": "Bob", "active": false, "tag": "ab"},
	}
	matching := func(rawQuery string) []string {
		q := query.NewQuery(&url.URL{RawQuery: rawQuery})
		pred := filterPredicate(def, q)
		var names []string
		for _, r := range rows {
			if pred == nil || pred(r) {
				names = append(names, r.(map[string]any)["name"].(string))
			}
		}
		return names
	}

	assert.Equal(t, []string{"Alice", "Bob"}, matching(""))
	assert.Equal(t, []string{"Bob"}, matching("filter:name=o"))
	assert.Equal(t, []string{"Alice"}, matching("filter:active=0&filter:active=1"))
	assert.Equal(t, []string{"Bob"}, matching("filter:active=0"))
	assert.Equal(t, []string{"Alice"}, matching("filter:tag=a"), "option filters match exactly")
	assert.Equal(t, []string{"Alice", "Bob"}, matching("filter:tag=a&filter:tag=ab"))
}
