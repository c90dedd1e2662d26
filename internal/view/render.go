package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded static assets, rooted so that
// "search.js" is served as /static/search.js.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(fmt.Sprintf("view: static assets: %v", err))
	}
	return sub
}

// ErrorPage is the view model of the failure page.
type ErrorPage struct {
	Title       string
	Description string
	Status      int
	Message     string
	RequestID   string
}

// Renderer executes the page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
		"isoDate": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderPage writes the category page. The output is buffered so a
// template error never leaves a half-written page behind.
func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	return r.execute(w, "category.html", page)
}

// RenderError writes the failure page.
func (r *Renderer) RenderError(w io.Writer, page ErrorPage) error {
	return r.execute(w, "error.html", page)
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
