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
	"bytes"
	"encoding/csv"
	"fmt"
	"io/fs"
	"strconv"
)

// CsvLoader implements Loader for CSV files. Column types are inferred from
// the data unless infer_types is "false", in which case every value is a
// string.
//
// Required config keys:
//   - file_path: Path to the CSV file
//
// Optional config keys:
//   - has_header: "true" or "false" (default: "true")
//   - delimiter: Field delimiter (default: ",")
//   - infer_types: "true" or "false" (default: "true")
type CsvLoader struct{}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

// Load loads a CSV file.
func (l *CsvLoader) Load(fsys fs.FS, config map[string]string) (*Dataset, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}

	hasHeader := config["has_header"] != "false"
	inferTypes := config["infer_types"] != "false"

	delimiter := ','
	if d := config["delimiter"]; d != "" {
		delimiter = rune(d[0])
	}

	content, err := readFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	// Determine column names
	var columnNames []string
	dataStart := 0
	if hasHeader {
		columnNames = records[0]
		dataStart = 1
	} else {
		for i := range records[0] {
			columnNames = append(columnNames, fmt.Sprintf("col_%d", i))
		}
	}
	dataRecords := records[dataStart:]

	schema := &TableSchema{Columns: make([]*ColumnSchema, len(columnNames))}
	for i, name := range columnNames {
		colType := TypeString
		if inferTypes {
			colType = inferColumnType(i, dataRecords)
		}
		schema.Columns[i] = &ColumnSchema{Name: name, Type: colType}
	}

	ds := &Dataset{Schema: schema, Records: make([]map[string]any, 0, len(dataRecords))}
	for _, record := range dataRecords {
		row := make(map[string]any, len(columnNames))
		for i, col := range schema.Columns {
			if i >= len(record) {
				row[col.Name] = nil
				continue
			}
			row[col.Name] = convertValue(record[i], col.Type)
		}
		ds.Records = append(ds.Records, row)
	}
	return ds, nil
}

// convertValue parses a CSV field as typ. Empty fields of typed columns
// become nil.
func convertValue(val string, typ ColumnType) any {
	if typ == TypeString {
		return val
	}
	if val == "" {
		return nil
	}
	switch typ {
	case TypeInt64:
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n
		}
	case TypeFloat64:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	case TypeBool:
		switch val {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return val
}

func inferColumnType(colIdx int, records [][]string) ColumnType {
	// Sample up to 100 rows
	sampleSize := len(records)
	if sampleSize > 100 {
		sampleSize = 100
	}

	isInt := true
	isFloat := true
	isBool := true
	seen := false

	for i := 0; i < sampleSize; i++ {
		if colIdx >= len(records[i]) {
			continue
		}
		val := records[i][colIdx]
		if val == "" {
			continue // Skip empty values
		}
		seen = true

		if isInt {
			if _, err := strconv.ParseInt(val, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(val, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			if val != "true" && val != "false" && val != "yes" && val != "no" {
				isBool = false
			}
		}
	}

	switch {
	case !seen:
		return TypeString
	case isInt:
		return TypeInt64
	case isFloat:
		return TypeFloat64
	case isBool:
		return TypeBool
	}
	return TypeString
}
