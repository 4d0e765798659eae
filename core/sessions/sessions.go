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

// Package sessions keeps one dataset registry per browser session, so
// uploads and join results survive across requests. Nothing is
// persisted beyond process memory.
package sessions

import (
	"sync"

	"github.com/google/uuid"

	"github.com/datascope/datascope/core/registry"
)

// Store is the session-scoped keyed store holding each session's
// registry.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*registry.Registry
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*registry.Registry)}
}

// NewID mints a fresh session identifier.
func (s *Store) NewID() string {
	return uuid.NewString()
}

// Registry returns the registry for a session, creating it on first
// use.
func (s *Store) Registry(id string) *registry.Registry {
	s.mu.RLock()
	r, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.sessions[id]; ok {
		return r
	}
	r = registry.New()
	s.sessions[id] = r
	return r
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
