// Package render turns dashboard snapshots into server-rendered HTML pages
// and Chart.js chart configurations.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/couchcryptid/ocean-data-dashboard/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// AppTitle is shown in every page header.
const AppTitle = "Ocean Data Dashboard"

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("pages").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page is the view model for both the main form and the detail pages.
// An empty Domain renders the main page.
type Page struct {
	Title  string
	Domain domain.Domain
	Form   Form

	// Detail page fields.
	Coordinate *domain.Coordinate
	Source     domain.SourceStatus
	Nav        []NavLink
	Metrics    []domain.Metric
	Hourly     *Table
	Records    *Table
	Charts     template.JS // JSON array of chart configs; empty when charts are off
}

// Form holds the coordinate-entry form state.
type Form struct {
	Lat    string
	Lon    string
	Notice string
}

// NavLink points at another view for the same coordinate.
type NavLink struct {
	Label string
	URL   string
}

// Table is a generic header-plus-rows table.
type Table struct {
	Caption string
	Headers []string
	Rows    [][]string
}

// HasCharts reports whether the page carries chart data.
func (p Page) HasCharts() bool { return p.Charts != "" }

// RenderPage writes the full HTML document for p. Output is buffered so a
// template error never leaves a partial page on w.
func (r *Renderer) RenderPage(w io.Writer, p Page) error {
	name := "main.html"
	if p.Domain != "" {
		name = "detail.html"
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, p); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// ChartsJSON encodes chart configs for embedding in a script block.
func ChartsJSON(charts []ChartConfig) (template.JS, error) {
	if len(charts) == 0 {
		return "", nil
	}
	b, err := json.Marshal(charts)
	if err != nil {
		return "", fmt.Errorf("encode charts: %w", err)
	}
	return template.JS(b), nil
}
