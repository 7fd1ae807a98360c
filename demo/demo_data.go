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

// Package demo ships sample data and grid definitions.
package demo

import (
	"embed"
	"fmt"

	"github.com/google/taxigrid/core/config"
	"github.com/google/taxigrid/datasources"
)

//go:embed grids.json data/orders.csv data/regions.json
var files embed.FS

// Definitions returns the demo grid definitions.
func Definitions() (*config.File, error) {
	defs, err := config.LoadFS(files, "grids.json")
	if err != nil {
		return nil, fmt.Errorf("failed to load demo grids: %w", err)
	}
	return defs, nil
}

// Sources returns a datasource manager reading the embedded files, with
// the generated transactions loader registered.
func Sources() *datasources.Manager {
	m := datasources.NewManager()
	m.SetFS(files)
	m.RegisterLoader(NewTransactionsLoader())
	return m
}
