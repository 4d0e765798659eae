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

// Package rendering renders view models to HTML through contextually
// auto-escaping templates.
package rendering

import (
	"embed"
	"io"

	"github.com/google/safehtml/template"

	"github.com/datascope/datascope/core/views"
)

//go:embed templates/*
var templateFS embed.FS

// Renderer renders the landing and analysis pages.
type Renderer struct {
	landingTemplate  *template.Template
	analysisTemplate *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	landingTemplate, err := template.New("landing.html").ParseFS(trustedFS, "templates/landing.html")
	if err != nil {
		return nil, err
	}

	analysisTemplate, err := template.New("analysis.html").ParseFS(trustedFS, "templates/analysis.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{
		landingTemplate:  landingTemplate,
		analysisTemplate: analysisTemplate,
	}, nil
}

// RenderLanding renders a LandingViewModel to the provided writer.
func (r *Renderer) RenderLanding(w io.Writer, vm *views.LandingViewModel) error {
	return r.landingTemplate.Execute(w, vm)
}

// RenderAnalysis renders an AnalysisViewModel to the provided writer.
func (r *Renderer) RenderAnalysis(w io.Writer, vm *views.AnalysisViewModel) error {
	return r.analysisTemplate.Execute(w, vm)
}
