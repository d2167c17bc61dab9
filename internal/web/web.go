// Package web holds the server-rendered pages for the lineup extraction service.
//
// Templates are embedded so the binary stays self-contained. The index page
// posts the upload form to /extract with fetch and renders the JSON summary
// client-side; existing artists show registry images through the configured
// CDN base URL when one is set.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type indexData struct {
	CDNBaseURL string
}

// Index renders the upload form page.
func (r *Renderer) Index(w io.Writer, cdnBaseURL string) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", indexData{CDNBaseURL: cdnBaseURL})
}
