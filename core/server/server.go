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

// Package server wires the HTTP surface: landing page, uploads, joins,
// the analysis view, chart images and CSV export.
package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/datascope/datascope/config"
	"github.com/datascope/datascope/core/registry"
	"github.com/datascope/datascope/core/rendering"
	"github.com/datascope/datascope/core/sessions"
	"github.com/datascope/datascope/core/views"
)

// sessionCookie carries the per-browser session ID. Every session gets
// its own dataset registry.
const sessionCookie = "datascope_session"

// Server holds the application dependencies.
type Server struct {
	store    *sessions.Store
	renderer *rendering.Renderer
	cfg      config.Config
	logger   *slog.Logger
}

// New creates a server with a fresh session store.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	renderer, err := rendering.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return &Server{
		store:    sessions.NewStore(),
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Routes returns the request multiplexer with every handler attached.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleLanding)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/join", s.handleJoin)
	mux.HandleFunc("/dataset", s.handleDataset)
	mux.HandleFunc("/chart/univariate", s.handleUnivariate)
	mux.HandleFunc("/chart/trend", s.handleTrend)
	mux.HandleFunc("/chart/heatmap", s.handleHeatmap)
	mux.HandleFunc("/export", s.handleExport)
	return mux
}

// session returns the registry of the request's session, creating the
// session cookie on first contact.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *registry.Registry {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return s.store.Registry(c.Value)
	}
	id := s.store.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s.store.Registry(id)
}

// Flash messages ride on the redirect URL: msg for successes, info for
// notices, warn for warnings and err for errors.
var flashKinds = map[string]string{
	"msg":  "success",
	"info": "info",
	"warn": "warning",
	"err":  "error",
}

// flashMessages extracts flash messages from the request query.
func flashMessages(q url.Values) []views.Message {
	var out []views.Message
	for _, param := range []string{"msg", "info", "warn", "err"} {
		for _, text := range q[param] {
			if text == "" {
				continue
			}
			out = append(out, views.Message{Kind: flashKinds[param], Text: text})
		}
	}
	return out
}

// redirectWithFlash sends the client to path carrying flash messages.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, path string, flash url.Values) {
	target := path
	if len(flash) > 0 {
		target += "?" + flash.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
