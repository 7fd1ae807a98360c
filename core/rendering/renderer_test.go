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

package rendering

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/safehtml"
	"github.com/google/taxigrid/core/views"
)

func TestRender(t *testing.T) {
	r, err := NewGridRenderer()
	if err != nil {
		t.Fatalf("NewGridRenderer: %v", err)
	}

	vm := views.TableViewModel{
		Title: "Orders <2024>",
		Head: []views.RowView{{
			Kind:  views.RowHeader,
			Cells: []safehtml.HTML{safehtml.HTMLEscaped("Price")},
		}},
		Body: []views.RowView{{
			Kind:  views.RowData,
			Cells: []safehtml.HTML{safehtml.HTMLEscaped("3")},
		}},
		Foot: []views.RowView{{
			Kind:  views.RowSummary,
			Cells: []safehtml.HTML{safehtml.HTMLEscaped("10")},
		}},
		FirstRow:  1,
		LastRow:   1,
		TotalRows: 1,
		Pages: []views.PageLink{
			{Label: "1", Active: true},
			{Label: "2", URL: safehtml.URLSanitized("/grid?page=2")},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, vm); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<title>Orders &lt;2024&gt;</title>",
		`<tr class="kv-page-summary">10</tr>`,
		"Showing 1-1 of 1.",
		`<a href="/grid?page=2">2</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRenderLanding(t *testing.T) {
	r, err := NewGridRenderer()
	if err != nil {
		t.Fatalf("NewGridRenderer: %v", err)
	}
	var buf bytes.Buffer
	err = r.RenderLanding(&buf, views.LandingViewModel{
		Title: "Grids",
		Grids: []views.GridInfo{{Name: "orders", Title: "Orders", URL: safehtml.URLSanitized("/grid?grid=orders")}},
	})
	if err != nil {
		t.Fatalf("RenderLanding: %v", err)
	}
	if !strings.Contains(buf.String(), `<a href="/grid?grid=orders">Orders</a>`) {
		t.Errorf("Unexpected landing page:\n%s", buf.String())
	}
}

func TestPagesShareLayout(t *testing.T) {
	r, err := NewGridRenderer()
	if err != nil {
		t.Fatalf("NewGridRenderer: %v", err)
	}
	var grid, landing bytes.Buffer
	if err := r.Render(&grid, views.TableViewModel{Title: "G", Empty: true}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := r.RenderLanding(&landing, views.LandingViewModel{Title: "L"}); err != nil {
		t.Fatalf("RenderLanding: %v", err)
	}
	for name, out := range map[string]string{"grid": grid.String(), "landing": landing.String()} {
		for _, want := range []string{"<!DOCTYPE html>", "table.kv-grid", "</html>"} {
			if !strings.Contains(out, want) {
				t.Errorf("%s page: expected %q in:\n%s", name, want, out)
			}
		}
	}
}

func TestFailedPageWritesNothing(t *testing.T) {
	r, err := NewGridRenderer()
	if err != nil {
		t.Fatalf("NewGridRenderer: %v", err)
	}
	var buf bytes.Buffer
	err = r.execute(&buf, "grid", 42)
	if !errors.Is(err, ErrTemplate) {
		t.Fatalf("Expected ErrTemplate, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}
