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

// Package server serves configured grids over HTTP.
package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/safehtml"
	"github.com/google/taxigrid/core/config"
	"github.com/google/taxigrid/core/data"
	"github.com/google/taxigrid/core/filters"
	"github.com/google/taxigrid/core/grid"
	"github.com/google/taxigrid/core/markup"
	"github.com/google/taxigrid/core/query"
	"github.com/google/taxigrid/core/rendering"
	"github.com/google/taxigrid/core/views"
	"github.com/google/taxigrid/datasources"
)

// pagerWindow is the number of page links shown on each side of the
// current page.
const pagerWindow = 5

// Server renders the grids of a definition file. Grids are built per
// request; the definitions are never modified after New.
type Server struct {
	title    string
	defs     *config.File
	sources  *datasources.Manager
	renderer *rendering.GridRenderer
	filters  *filters.Registry
}

// New creates a server for the grids in defs, reading their data from
// sources. The sources declared in defs are registered with it.
func New(title string, defs *config.File, sources *datasources.Manager) (*Server, error) {
	renderer, err := rendering.NewGridRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if err := defs.Register(sources); err != nil {
		return nil, err
	}
	return &Server{
		title:    title,
		defs:     defs,
		sources:  sources,
		renderer: renderer,
		filters:  filters.NewRegistry(),
	}, nil
}

// Filters returns the filter widget registry, for registering custom kinds.
func (s *Server) Filters() *filters.Registry {
	return s.filters
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		if err := s.HandleLandingRequest(w, w.Header().Set); err != nil {
			slog.Error("landing page rendering failed", "err", err)
		}
	})
	mux.HandleFunc("GET /grid", func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, r, s.HandleGridRequest(w, r.URL, w.Header().Set))
	})
	mux.HandleFunc("GET /grid.txt", func(w http.ResponseWriter, r *http.Request) {
		writeResult(w, r, s.HandleTextRequest(w, r.URL, w.Header().Set))
	})
	return mux
}

func writeResult(w http.ResponseWriter, r *http.Request, res *GridHandlerResult) {
	if res == nil {
		return
	}
	if res.Error != nil {
		slog.Error("grid request failed", "url", r.URL.String(), "err", res.Error)
		if !res.Written {
			http.Error(w, res.Error.Error(), http.StatusInternalServerError)
		}
		return
	}
	slog.Warn("bad grid request", "url", r.URL.String(), "status", res.StatusCode, "msg", res.Message)
	http.Error(w, res.Message, res.StatusCode)
}

// GridHandlerResult represents the failure of a grid request
type GridHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
	Written    bool // part of the response was already written
}

// TimingCollector collects timing measurements for the steps of a request
type TimingCollector struct {
	attrs []slog.Attr
	start time.Time
}

// NewTimingCollector creates a new timing collector
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{start: time.Now()}
}

// Record records how long operation took
func (tc *TimingCollector) Record(operation string, duration time.Duration) {
	tc.attrs = append(tc.attrs, slog.Duration(operation, duration))
}

// LogValue implements slog.LogValuer.
func (tc *TimingCollector) LogValue() slog.Value {
	attrs := append([]slog.Attr{slog.Duration("total", time.Since(tc.start))}, tc.attrs...)
	return slog.GroupValue(attrs...)
}

type gridRequest struct {
	def      *config.GridConfig
	query    *query.Query
	provider *data.SliceProvider
	grid     *grid.Grid
}

// prepare resolves the grid named in the URL and builds it for the
// requested page and filters.
func (s *Server) prepare(requestURL *url.URL, timing *TimingCollector) (*gridRequest, *GridHandlerResult) {
	q := query.NewQuery(requestURL)
	if q.Grid == "" {
		return nil, &GridHandlerResult{StatusCode: http.StatusBadRequest, Message: "grid parameter is required"}
	}
	def := s.defs.Grid(q.Grid)
	if def == nil {
		return nil, &GridHandlerResult{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("grid %q not found", q.Grid)}
	}
	if def.PerPage > 0 && !requestURL.Query().Has("per-page") {
		q.PerPage = def.PerPage
	}

	var models []any
	var schema *datasources.TableSchema
	if def.Source != "" {
		start := time.Now()
		ds, err := s.sources.LoadData(def.Source)
		if err != nil {
			return nil, &GridHandlerResult{Error: err}
		}
		timing.Record("load", time.Since(start))
		models, schema = ds.Models(), ds.Schema
	}

	attrs := def.FilterAttributes()
	if len(def.Columns) == 0 && schema != nil {
		for _, c := range schema.Columns {
			attrs = append(attrs, c.Name)
		}
	}
	q.SetFilterable(attrs...)

	provider := data.NewSliceProvider(models).Paginate(q.Pagination())
	if def.KeyAttribute != "" {
		provider.WithKeyAttribute(def.KeyAttribute)
	}
	if pred := filterPredicate(def, q); pred != nil {
		provider.Where(pred)
	}

	start := time.Now()
	g, err := def.NewGrid(config.GridOptions{
		Provider:    provider,
		FilterModel: q,
		Schema:      schema,
		Filters:     s.filters,
	})
	if err != nil {
		return nil, &GridHandlerResult{Error: fmt.Errorf("grid %q: %w", def.Name, err)}
	}
	timing.Record("init", time.Since(start))
	return &gridRequest{def: def, query: q, provider: provider, grid: g}, nil
}

// HandleGridRequest renders the grid named in the URL as HTML.
// Returns an error result if the request is invalid, nil on success
func (s *Server) HandleGridRequest(w io.Writer, requestURL *url.URL, setHeader func(key, value string)) *GridHandlerResult {
	timing := NewTimingCollector()
	req, res := s.prepare(requestURL, timing)
	if res != nil {
		return res
	}

	start := time.Now()
	tbl, err := req.grid.Build()
	if err != nil {
		return &GridHandlerResult{Error: fmt.Errorf("grid %q: %w", req.def.Name, err)}
	}
	timing.Record("build", time.Since(start))

	vm := tbl.ViewModel()
	if vm.Title == "" {
		vm.Title = req.def.Name
	}
	vm.Pages = pageLinks(req.query, req.provider.Pagination().PageCount(tbl.TotalRows))
	vm.ClearURL = req.query.WithoutFilters()
	vm.HiddenInputs = hiddenInputs(req.query)

	setHeader("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, vm); err != nil {
		return &GridHandlerResult{
			Error:   fmt.Errorf("grid %q: %w", req.def.Name, err),
			Written: !errors.Is(err, rendering.ErrTemplate),
		}
	}
	slog.Debug("rendered grid", "grid", req.def.Name, "rows", len(tbl.Body), "timing", timing)
	return nil
}

// HandleTextRequest renders the grid named in the URL as a plain text table.
func (s *Server) HandleTextRequest(w io.Writer, requestURL *url.URL, setHeader func(key, value string)) *GridHandlerResult {
	timing := NewTimingCollector()
	req, res := s.prepare(requestURL, timing)
	if res != nil {
		return res
	}
	out, err := req.grid.RenderText()
	if err != nil {
		return &GridHandlerResult{Error: fmt.Errorf("grid %q: %w", req.def.Name, err)}
	}
	setHeader("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return &GridHandlerResult{Error: err, Written: true}
	}
	slog.Debug("rendered text grid", "grid", req.def.Name, "timing", timing)
	return nil
}

// HandleLandingRequest lists the configured grids.
func (s *Server) HandleLandingRequest(w io.Writer, setHeader func(key, value string)) error {
	vm := views.LandingViewModel{Title: s.title}
	for _, g := range s.defs.Grids {
		title := g.Title
		if title == "" {
			title = g.Name
		}
		vm.Grids = append(vm.Grids, views.GridInfo{
			Name:  g.Name,
			Title: title,
			URL:   (&query.Query{Path: "/grid", Grid: g.Name, Page: 1, PerPage: query.DefaultPerPage}).ToSafeURL(),
		})
	}
	setHeader("Content-Type", "text/html; charset=utf-8")
	return s.renderer.RenderLanding(w, vm)
}

// pageLinks returns the pager around the current page, or nil for a single
// page.
func pageLinks(q *query.Query, pages int) []views.PageLink {
	if pages <= 1 {
		return nil
	}
	first := max(1, q.Page-pagerWindow)
	last := pages
	if q.Page < pages-pagerWindow {
		last = q.Page + pagerWindow
	}

	var links []views.PageLink
	if first > 1 {
		links = append(links, views.PageLink{Label: "«", URL: q.WithPage(1)})
	}
	for p := first; p <= last; p++ {
		links = append(links, views.PageLink{
			Label:  strconv.Itoa(p),
			URL:    q.WithPage(p),
			Active: p == q.Page,
		})
	}
	if last < pages {
		links = append(links, views.PageLink{Label: "»", URL: q.WithPage(pages)})
	}
	return links
}

// hiddenInputs carries the grid and page size through the filter form.
func hiddenInputs(q *query.Query) safehtml.HTML {
	inputs := []safehtml.HTML{hidden("grid", q.Grid)}
	if q.PerPage != query.DefaultPerPage {
		inputs = append(inputs, hidden("per-page", strconv.Itoa(q.PerPage)))
	}
	return safehtml.HTMLConcat(inputs...)
}

func hidden(name, value string) safehtml.HTML {
	return markup.VoidTag("input", []markup.Attr{
		markup.A("type", "hidden"),
		markup.A("name", name),
		markup.A("value", value),
	})
}
