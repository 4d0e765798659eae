/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Datascope Authors

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

package server

import (
	_ "embed"

	"github.com/datascope/datascope/core/ingest"
	"github.com/datascope/datascope/core/registry"
)

//go:embed exampledata/penguins.csv
var exampleData []byte

const exampleFileName = "penguins.csv"

// seedExample loads the bundled example dataset into an empty registry
// so a fresh session has something to explore before the first upload.
func seedExample(reg *registry.Registry) error {
	named, err := ingest.Ingest(exampleFileName, exampleData)
	if err != nil {
		return err
	}
	for _, n := range named {
		reg.Put(n.Name, n.Data)
	}
	return nil
}
