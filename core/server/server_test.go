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
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/google/taxigrid/core/config"
	"github.com/google/taxigrid/core/query"
	"github.com/google/taxigrid/datasources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersCSV = `item,price,qty
pen,3,2
ink,5,1
pad,2,4
`

const definitions = `{
  "sources": [{"name": "orders", "type": "csv", "config": {"file_path": "orders.csv"}}],
  "grids": [
    {"name": "orders", "title": "Orders", "source": "orders", "per_page": 2,
     "show_page_summary": true, "show_filters": true,
     "columns": [
       {"type": "serial", "page_summary": true},
       {"attribute": "item", "page_summary": "Total"},
       {"attribute": "price", "halign": "right", "page_summary": true},
       {"attribute": "qty", "filter_type": "select",
        "filter_options": [{"value": "1"}, {"value": "2"}, {"value": "4"}]}
     ]},
    {"name": "auto", "source": "orders", "show_page_summary": true},
    {"name": "broken", "show_page_summary": true,
     "columns": [{"type": "formula", "formula": "col(7)", "page_summary": true}]}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	defs, err := config.Parse([]byte(definitions))
	require.NoError(t, err)

	m := datasources.NewManager()
	m.SetFS(fstest.MapFS{"orders.csv": {Data: []byte(ordersCSV)}})

	s, err := New("Test grids", defs, m)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestLanding(t *testing.T) {
	ts := newTestServer(t)
	status, body := get(t, ts, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<h1>Test grids</h1>")
	assert.Contains(t, body, `<a href="/grid?grid=orders">Orders</a>`)
	assert.Contains(t, body, `<a href="/grid?grid=auto">auto</a>`)

	status, _ = get(t, ts, "/nope")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGridPages(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/grid?grid=orders")
	require.Equal(t, http.StatusOK, status, body)
	assert.Contains(t, body, ">pen<")
	assert.Contains(t, body, ">ink<")
	assert.NotContains(t, body, ">pad<")
	assert.Contains(t, body, `<tr class="kv-page-summary"><td class="kv-align-center kv-align-middle">2</td><td>Total</td><td class="kv-align-right">8</td>`)
	assert.Contains(t, body, "Showing 1-2 of 3.")
	assert.Contains(t, body, `<input type="hidden" name="grid" value="orders">`)
	assert.Contains(t, body, `<input type="hidden" name="per-page" value="2">`)

	status, body = get(t, ts, "/grid?grid=orders&page=2")
	require.Equal(t, http.StatusOK, status, body)
	assert.Contains(t, body, ">pad<")
	assert.NotContains(t, body, ">pen<")
	assert.Contains(t, body, `<td class="kv-align-right">2</td>`)
	assert.Contains(t, body, "Showing 3-3 of 3.")
	assert.Contains(t, body, "<b>2</b>")
}

func TestGridPageOutOfRange(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/grid?grid=orders&page=4611686018427387905&per-page=2")
	require.Equal(t, http.StatusOK, status, body)
	assert.Contains(t, body, "No results found.")
	assert.NotContains(t, body, "Showing")
	assert.Contains(t, body, `per-page=2">«</a>`)
}

func TestGridFilters(t *testing.T) {
	ts := newTestServer(t)

	status, body := get(t, ts, "/grid?grid=orders&filter:item=PE")
	require.Equal(t, http.StatusOK, status, body)
	assert.Contains(t, body, "Showing 1-1 of 1.")
	assert.Contains(t, body, `value="PE"`, "the text input keeps the filter value")

	status, body = get(t, ts, "/grid?grid=orders&filter:qty=1")
	require.Equal(t, http.StatusOK, status, body)
	assert.Contains(t, body, ">ink<")
	assert.Contains(t, body, `<option value="1" selected>1</option>`)
	assert.Contains(t, body, "Showing 1-1 of 1.")

	status, body = get(t, ts, "/grid?grid=orders&filter:item=zzz")
	require.Equal(t, http.StatusOK, status, body)
	assert.Contains(t, body, "No results found.")
}

func TestGridDefaultColumns(t *testing.T) {
	ts := newTestServer(t)
	status, body := get(t, ts, "/grid?grid=auto")
	require.Equal(t, http.StatusOK, status, body)
	assert.Contains(t, body, "Price")
	assert.Contains(t, body, `<td class="kv-align-right">10</td>`)
}

func TestGridErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		path   string
		status int
	}{
		{"/grid", http.StatusBadRequest},
		{"/grid?grid=missing", http.StatusNotFound},
		{"/grid?grid=broken", http.StatusInternalServerError},
		{"/grid.txt?grid=missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, _ := get(t, ts, tt.path)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestGridText(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/grid.txt?grid=orders&per-page=0")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "Orders")
	assert.Contains(t, string(body), "pad")
	assert.Contains(t, string(body), "10")
}

func TestPageLinks(t *testing.T) {
	q := query.NewQuery(&url.URL{Path: "/grid", RawQuery: "grid=g&page=8"})
	assert.Nil(t, pageLinks(q, 1))

	links := pageLinks(q, 20)
	var labels []string
	for _, l := range links {
		labels = append(labels, l.Label)
	}
	assert.Equal(t, []string{"«", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13", "»"}, labels)
	assert.True(t, links[6].Active)
	assert.Equal(t, "/grid?grid=g&page=20", links[len(links)-1].URL.String())
}
