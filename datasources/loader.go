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

// Package datasources loads the records shown by grids from CSV and JSON
// files. Sources are declared by name and loaded lazily through a Manager.
package datasources

import (
	"io/fs"
	"os"
)

// ColumnType represents the data type of a column.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt64
	TypeFloat64
	TypeBool
	TypeObject
)

// String returns the string representation of the column type.
func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Numeric reports whether values of the type can be summed.
func (t ColumnType) Numeric() bool {
	return t == TypeInt64 || t == TypeFloat64
}

// ColumnSchema represents a single column's schema discovered from a data source.
type ColumnSchema struct {
	Name string
	Type ColumnType
}

// TableSchema represents the full table schema discovered from a data source.
type TableSchema struct {
	Columns []*ColumnSchema
}

// Column returns the schema of the named column, or nil.
func (s *TableSchema) Column(name string) *ColumnSchema {
	for _, c := range s.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Dataset is a loaded source: its schema and one record per row.
type Dataset struct {
	Schema  *TableSchema
	Records []map[string]any
}

// Models returns the records as grid models.
func (d *Dataset) Models() []any {
	models := make([]any, len(d.Records))
	for i, r := range d.Records {
		models[i] = r
	}
	return models
}

// Loader is the interface that all data source loaders must implement.
// Users can register additional loaders for databases, APIs, or custom formats.
type Loader interface {
	// SourceType returns the type identifier used in config (e.g., "csv", "json").
	SourceType() string

	// Load reads the source. File paths in config are resolved against
	// fsys, or the local file system when fsys is nil.
	Load(fsys fs.FS, config map[string]string) (*Dataset, error)
}

func readFile(fsys fs.FS, name string) ([]byte, error) {
	if fsys == nil {
		return os.ReadFile(name)
	}
	return fs.ReadFile(fsys, name)
}
