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

package config

import (
	"fmt"

	"github.com/google/taxigrid/core/columns"
	"github.com/robertkrimen/otto"
)

// compileFormula compiles a formula column script. The script sees:
//
//	col(i)  the value of column i in the current scope
//	model   the row model, null outside of rows
//	key     the row key
//	index   the row position on the page
//	scope   "row", "summary" or "footer"
//
// The value of the last statement is the cell value.
func compileFormula(src string) (columns.FormulaFunc, error) {
	base := otto.New()
	script, err := base.Compile("formula", src)
	if err != nil {
		return nil, fmt.Errorf("invalid formula: %w", err)
	}
	return func(model any, scope columns.Scope, self *columns.FormulaColumn) (any, error) {
		vm := base.Copy()
		var colErr error
		err := vm.Set("col", func(call otto.FunctionCall) otto.Value {
			i, err := call.Argument(0).ToInteger()
			if err != nil {
				colErr = err
				return otto.UndefinedValue()
			}
			v, err := self.Col(int(i), scope)
			if err != nil {
				colErr = err
				return otto.UndefinedValue()
			}
			return toValue(call.Otto, v, &colErr)
		})
		if err != nil {
			return nil, err
		}
		vars := map[string]any{
			"model": model,
			"scope": columns.ScopeName(scope),
			"key":   nil,
			"index": nil,
		}
		if rs, ok := scope.(columns.RowScope); ok {
			vars["key"] = rs.Row.Key
			vars["index"] = rs.Row.Index
		}
		for name, v := range vars {
			if err := vm.Set(name, v); err != nil {
				return nil, err
			}
		}
		result, err := vm.Run(script)
		if colErr != nil {
			return nil, colErr
		}
		if err != nil {
			return nil, fmt.Errorf("formula failed: %w", err)
		}
		return export(result)
	}, nil
}

// compileSummary compiles a page summary override. The script sees the
// computed aggregate as `summary` and the page values as `rows`; its result
// is shown as text.
func compileSummary(src string) (columns.SummaryFunc, error) {
	base := otto.New()
	script, err := base.Compile("page_summary_expr", src)
	if err != nil {
		return nil, fmt.Errorf("invalid page_summary_expr: %w", err)
	}
	return func(summary any, rows []any) (string, error) {
		vm := base.Copy()
		if err := vm.Set("summary", summary); err != nil {
			return "", err
		}
		if rows == nil {
			rows = []any{}
		}
		if err := vm.Set("rows", rows); err != nil {
			return "", err
		}
		result, err := vm.Run(script)
		if err != nil {
			return "", fmt.Errorf("page_summary_expr failed: %w", err)
		}
		if result.IsUndefined() || result.IsNull() {
			return "", nil
		}
		return result.String(), nil
	}, nil
}

func toValue(vm *otto.Otto, v any, errp *error) otto.Value {
	val, err := vm.ToValue(v)
	if err != nil {
		*errp = err
		return otto.UndefinedValue()
	}
	return val
}

func export(v otto.Value) (any, error) {
	if v.IsUndefined() || v.IsNull() {
		return nil, nil
	}
	return v.Export()
}
