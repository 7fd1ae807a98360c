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

package datasources

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/tidwall/gjson"
)

// JSONLoader implements Loader for JSON documents holding an array of
// objects.
//
// Required config keys:
//   - file_path: Path to the JSON file
//
// Optional config keys:
//   - records_path: gjson path selecting the array (default: the document)
type JSONLoader struct{}

// NewJSONLoader creates a new JSON loader.
func NewJSONLoader() *JSONLoader {
	return &JSONLoader{}
}

// SourceType returns "json".
func (l *JSONLoader) SourceType() string {
	return "json"
}

// Load loads a JSON file. The schema lists the keys in order of first
// appearance.
func (l *JSONLoader) Load(fsys fs.FS, config map[string]string) (*Dataset, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}
	content, err := readFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file: %w", err)
	}
	return ParseJSONRecords(content, config["records_path"])
}

// ParseJSONRecords extracts the objects of the array at path.
func ParseJSONRecords(content []byte, path string) (*Dataset, error) {
	if !gjson.ValidBytes(content) {
		return nil, fmt.Errorf("invalid JSON")
	}
	result := gjson.ParseBytes(content)
	if path != "" {
		result = result.Get(path)
	}
	if !result.IsArray() {
		return nil, fmt.Errorf("records_path %q does not select an array", path)
	}

	ds := &Dataset{Schema: &TableSchema{}}
	typed := map[string]bool{}
	var loadErr error
	result.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			loadErr = fmt.Errorf("record %d is not an object", len(ds.Records))
			return false
		}
		record := map[string]any{}
		item.ForEach(func(key, field gjson.Result) bool {
			name := key.String()
			value, typ := jsonValue(field)
			record[name] = value

			col := ds.Schema.Column(name)
			if col == nil {
				col = &ColumnSchema{Name: name, Type: typ}
				ds.Schema.Columns = append(ds.Schema.Columns, col)
			}
			switch {
			case value == nil:
			case !typed[name]:
				col.Type, typed[name] = typ, true
			case col.Type != typ:
				col.Type = widen(col.Type, typ)
			}
			return true
		})
		ds.Records = append(ds.Records, record)
		return true
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return ds, nil
}

func jsonValue(field gjson.Result) (any, ColumnType) {
	switch field.Type {
	case gjson.Null:
		return nil, TypeString
	case gjson.True, gjson.False:
		return field.Bool(), TypeBool
	case gjson.Number:
		if strings.ContainsAny(field.Raw, ".eE") {
			return field.Float(), TypeFloat64
		}
		return field.Int(), TypeInt64
	case gjson.String:
		return field.String(), TypeString
	}
	return field.Value(), TypeObject
}

// widen returns a type able to hold values of both a and b.
func widen(a, b ColumnType) ColumnType {
	if a.Numeric() && b.Numeric() {
		return TypeFloat64
	}
	return TypeString
}
