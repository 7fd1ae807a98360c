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

package demo

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/google/taxigrid/datasources"
)

// Generated data cardinality
const (
	DefaultTransactions = 10_000
	numUsers            = 800 // high cardinality
	numProducts         = 50  // medium cardinality
	numCategories       = 8   // low cardinality
)

var statuses = []string{"pending", "completed", "cancelled", "processing"}

// TransactionsLoader generates a deterministic transactions table, for
// trying grids on more rows than the embedded files hold.
type TransactionsLoader struct{}

// NewTransactionsLoader creates a loader for the "generated" source type.
func NewTransactionsLoader() *TransactionsLoader {
	return &TransactionsLoader{}
}

// SourceType implements datasources.Loader.
func (l *TransactionsLoader) SourceType() string {
	return "generated"
}

// Load implements datasources.Loader. The "rows" setting sets the number of
// transactions.
func (l *TransactionsLoader) Load(_ fs.FS, config map[string]string) (*datasources.Dataset, error) {
	rows := DefaultTransactions
	if s := config["rows"]; s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid rows %q", s)
		}
		rows = n
	}

	ds := &datasources.Dataset{
		Schema: &datasources.TableSchema{Columns: []*datasources.ColumnSchema{
			{Name: "txn_id", Type: datasources.TypeInt64},
			{Name: "user_id", Type: datasources.TypeInt64},
			{Name: "product_id", Type: datasources.TypeInt64},
			{Name: "category_id", Type: datasources.TypeInt64},
			{Name: "amount", Type: datasources.TypeInt64},
			{Name: "status", Type: datasources.TypeString},
		}},
		Records: make([]map[string]any, 0, rows),
	}
	for i := 0; i < rows; i++ {
		category := i % numCategories
		if i%7 == 0 {
			// make category 0 more common
			category = 0
		}
		ds.Records = append(ds.Records, map[string]any{
			"txn_id":      int64(i),
			"user_id":     int64(i % numUsers),
			"product_id":  int64(i % numProducts),
			"category_id": int64(category),
			"amount":      int64(10 + i%1000),
			"status":      statuses[i%len(statuses)],
		})
	}
	return ds, nil
}
