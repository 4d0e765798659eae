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

package registry

import (
	"sync"

	"github.com/datascope/datascope/core/dataset"
)

// Registry is the set of named datasets available in a session.
// Names are unique; putting an existing name overwrites the entry while
// keeping its position in the listing order.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]*dataset.Dataset
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]*dataset.Dataset)}
}

// Put inserts or overwrites a dataset under the given name.
func (r *Registry) Put(name string, ds *dataset.Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; !exists {
		r.order = append(r.order, name)
	}
	r.byName[name] = ds
}

// Get returns the dataset for a name, or nil if not present.
func (r *Registry) Get(name string) *dataset.Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[name]
}

// Names returns the dataset names in insertion order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered datasets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// JoinedName synthesizes the registry name for a join result.
func JoinedName(left, right string) string {
	return "[Joined] " + left + " x " + right
}
