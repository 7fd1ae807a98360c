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

// Package config reads grid definitions. A definition file is JSON: it is
// parsed into a protobuf Struct and decoded onto the structs below.
package config

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/google/taxigrid/datasources"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// File is a definition file.
type File struct {
	Sources []SourceConfig `mapstructure:"sources"`
	Grids   []*GridConfig  `mapstructure:"grids"`
}

// SourceConfig declares a data source.
type SourceConfig struct {
	Name   string            `mapstructure:"name"`
	Type   string            `mapstructure:"type"`
	Config map[string]string `mapstructure:"config"`
}

// GridConfig defines a grid.
type GridConfig struct {
	Name                string         `mapstructure:"name"`
	Title               string         `mapstructure:"title"`
	Source              string         `mapstructure:"source"`
	KeyAttribute        string         `mapstructure:"key"`
	PerPage             int            `mapstructure:"per_page"`
	ShowPageSummary     bool           `mapstructure:"show_page_summary"`
	ShowFooter          bool           `mapstructure:"show_footer"`
	ShowFilters         bool           `mapstructure:"show_filters"`
	FilterPosition      string         `mapstructure:"filter_position"`
	PageRelativeSerials bool           `mapstructure:"page_relative_serials"`
	Bootstrap           bool           `mapstructure:"bootstrap"`
	EmptyCell           string         `mapstructure:"empty_cell"`
	EmptyText           string         `mapstructure:"empty_text"`
	Locale              string         `mapstructure:"locale"`
	Columns             []ColumnConfig `mapstructure:"columns"`
}

// ColumnConfig defines one column of a grid.
type ColumnConfig struct {
	Type      string `mapstructure:"type"` // data (default), serial or formula
	Attribute string `mapstructure:"attribute"`
	Label     string `mapstructure:"label"`
	HAlign    string `mapstructure:"halign"`
	VAlign    string `mapstructure:"valign"`
	Width     int    `mapstructure:"width"`
	WidthUnit string `mapstructure:"width_unit"`
	Format    string `mapstructure:"format"`
	Hidden    bool   `mapstructure:"hidden"`

	// PageSummary is true for a computed summary or a string shown as is.
	PageSummary     any    `mapstructure:"page_summary"`
	PageSummaryFunc string `mapstructure:"page_summary_func"`
	// PageSummaryExpr is a script computing the summary text from
	// `summary` and `rows`.
	PageSummaryExpr string `mapstructure:"page_summary_expr"`
	HidePageSummary bool   `mapstructure:"hide_page_summary"`
	Footer          string `mapstructure:"footer"`

	MergeHeader   bool           `mapstructure:"merge_header"`
	FilterType    string         `mapstructure:"filter_type"`
	FilterOptions []OptionConfig `mapstructure:"filter_options"`
	FilterPrompt  string         `mapstructure:"filter_prompt"`
	DisableFilter bool           `mapstructure:"disable_filter"`

	// Formula is a script evaluated by formula columns with `col(i)`,
	// `model`, `key`, `index` and `scope` in scope.
	Formula    string `mapstructure:"formula"`
	AutoFooter *bool  `mapstructure:"auto_footer"` // formula columns default to true
}

// OptionConfig is a choice of a filter dropdown, radio or checkbox list.
type OptionConfig struct {
	Value string `mapstructure:"value"`
	Label string `mapstructure:"label"`
}

// Parse parses and validates a definition file.
func Parse(content []byte) (*File, error) {
	st := &structpb.Struct{}
	if err := protojson.Unmarshal(content, st); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	f := &File{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      f,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(st.AsMap()); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads a definition file from disk.
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(content)
}

// LoadFS reads a definition file from fsys.
func LoadFS(fsys fs.FS, name string) (*File, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(content)
}

// Merge appends the sources and grids of other.
func (f *File) Merge(other *File) error {
	merged := &File{
		Sources: append(append([]SourceConfig(nil), f.Sources...), other.Sources...),
		Grids:   append(append([]*GridConfig(nil), f.Grids...), other.Grids...),
	}
	if err := merged.validate(); err != nil {
		return err
	}
	*f = *merged
	return nil
}

// Grid returns the grid with the given name, or nil.
func (f *File) Grid(name string) *GridConfig {
	for _, g := range f.Grids {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (f *File) validate() error {
	sources := map[string]bool{}
	for _, s := range f.Sources {
		if s.Name == "" {
			return fmt.Errorf("source without name")
		}
		if sources[s.Name] {
			return fmt.Errorf("duplicate source %q", s.Name)
		}
		sources[s.Name] = true
	}
	grids := map[string]bool{}
	for _, g := range f.Grids {
		if g.Name == "" {
			return fmt.Errorf("grid without name")
		}
		if grids[g.Name] {
			return fmt.Errorf("duplicate grid %q", g.Name)
		}
		grids[g.Name] = true
		if g.Source != "" && !sources[g.Source] {
			return fmt.Errorf("grid %q: unknown source %q", g.Name, g.Source)
		}
		if g.PerPage < 0 {
			return fmt.Errorf("grid %q: negative per_page", g.Name)
		}
		if _, err := g.BuildColumns(nil); err != nil {
			return fmt.Errorf("grid %q: %w", g.Name, err)
		}
	}
	return nil
}

// Register adds the declared sources to m.
func (f *File) Register(m *datasources.Manager) error {
	for _, s := range f.Sources {
		src := &datasources.Source{Name: s.Name, Type: s.Type, Config: s.Config}
		if err := m.AddSource(src); err != nil {
			return fmt.Errorf("source %q: %w", s.Name, err)
		}
	}
	return nil
}
