package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
)

//go:embed templates/*
var templateFiles embed.FS

// Renderer renders dashboard views as HTML. It is safe for concurrent use.
type Renderer struct {
	tmpl        *template.Template
	explanation template.HTML
}

type pageData struct {
	PageTitle   string
	Title       string
	View        View
	Explanation template.HTML
}

// NewRenderer parses the embedded templates and renders the explanatory
// panel from Markdown.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/page.html", "templates/live.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard templates: %w", err)
	}

	source, err := templateFiles.ReadFile("templates/explanation.md")
	if err != nil {
		return nil, fmt.Errorf("failed to read explanation: %w", err)
	}
	explanation, err := RenderMarkdown(source)
	if err != nil {
		return nil, err
	}

	return &Renderer{tmpl: tmpl, explanation: explanation}, nil
}

// RenderPage writes the full dashboard page.
func (r *Renderer) RenderPage(w io.Writer, v View) error {
	data := pageData{
		PageTitle:   PageTitle,
		Title:       Title,
		View:        v,
		Explanation: r.explanation,
	}
	if err := r.tmpl.ExecuteTemplate(w, "page.html", data); err != nil {
		return fmt.Errorf("failed to render dashboard page: %w", err)
	}
	return nil
}

// RenderLive writes only the live section: tiles, charts and status panel.
func (r *Renderer) RenderLive(w io.Writer, v View) error {
	if err := r.tmpl.ExecuteTemplate(w, "live", v); err != nil {
		return fmt.Errorf("failed to render live section: %w", err)
	}
	return nil
}

// LiveHTML returns the live section as a string.
func (r *Renderer) LiveHTML(v View) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderLive(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Explanation returns the rendered explanatory panel.
func (r *Renderer) Explanation() template.HTML {
	return r.explanation
}

// RenderMarkdown converts Markdown to HTML. Raw HTML in the source is omitted.
func RenderMarkdown(source []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
