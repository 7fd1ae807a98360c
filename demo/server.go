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
	"github.com/google/taxigrid/core/server"
)

// Title is the heading of the demo landing page.
const Title = "Taxigrid demo grids"

// SetupDemoServer creates a server for the demo grids.
func SetupDemoServer() (*server.Server, error) {
	defs, err := Definitions()
	if err != nil {
		return nil, err
	}
	return server.New(Title, defs, Sources())
}
