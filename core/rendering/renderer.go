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

// Package rendering turns grid and landing view models into HTML pages.
package rendering

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"

	"github.com/google/safehtml/template"
	"github.com/google/taxigrid/core/views"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrTemplate marks a page that failed to execute. Nothing has been written
// to the destination when it is returned.
var ErrTemplate = errors.New("template execution failed")

// GridRenderer renders pages from a single template set. layout.html holds
// the shared "head" and "foot" blocks; each page file defines one named
// page template.
type GridRenderer struct {
	pages *template.Template
}

// NewGridRenderer parses every embedded template into one set.
func NewGridRenderer() (*GridRenderer, error) {
	pages, err := template.New("pages").ParseFS(template.TrustedFSFromEmbed(templateFS), "templates/*.html")
	if err != nil {
		return nil, err
	}
	for _, name := range []string{"grid", "landing"} {
		if pages.Lookup(name) == nil {
			return nil, fmt.Errorf("page template %q not defined", name)
		}
	}
	return &GridRenderer{pages: pages}, nil
}

// Render writes the grid page.
func (r *GridRenderer) Render(w io.Writer, vm views.TableViewModel) error {
	return r.execute(w, "grid", vm)
}

// RenderLanding writes the list of grids.
func (r *GridRenderer) RenderLanding(w io.Writer, vm views.LandingViewModel) error {
	return r.execute(w, "landing", vm)
}

// execute renders into a buffer first so a failing page leaves w untouched.
func (r *GridRenderer) execute(w io.Writer, page string, data any) error {
	var buf bytes.Buffer
	if err := r.pages.ExecuteTemplate(&buf, page, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTemplate, page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
