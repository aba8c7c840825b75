package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"alfredoptarigan/cv-warehouse/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Placeholder is a message shown in place of list or detail content.
type Placeholder struct {
	Kind string
	Text string
}

var (
	PlaceholderLoading       = Placeholder{Kind: "loading", Text: "Loading CVs..."}
	PlaceholderDetailLoading = Placeholder{Kind: "loading", Text: "Loading CV details..."}
	PlaceholderEmpty         = Placeholder{Kind: "empty", Text: "No CVs found in the warehouse."}
	PlaceholderError         = Placeholder{Kind: "error", Text: "Error loading CVs. Please try again."}
	PlaceholderThinking      = Placeholder{Kind: "thinking", Text: "AI is analyzing candidates..."}
	PlaceholderNoMatches     = Placeholder{Kind: "no-matches", Text: "No candidates matched your query."}
	PlaceholderSmartError    = Placeholder{Kind: "smart-error", Text: "Smart search failed. Please try again."}
)

// Renderer turns view models into HTML fragments.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse view templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustRenderer panics when the embedded templates do not parse.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Profile(p models.Profile) (template.HTML, error) {
	return r.execute("profile", NewProfileView(p))
}

func (r *Renderer) Detail(entry models.WarehouseEntry) (template.HTML, error) {
	return r.execute("detail", struct {
		ID       string
		Name     string
		Filename string
		Profile  ProfileView
	}{
		ID:       entry.ID,
		Name:     orNA(entry.DisplayName()),
		Filename: orNA(entry.Filename),
		Profile:  NewProfileView(entry.Profile),
	})
}

func (r *Renderer) Rejection(reason string) (template.HTML, error) {
	return r.execute("rejection", reason)
}

func (r *Renderer) FilePreview(name string, size int64) (template.HTML, error) {
	return r.execute("preview", struct {
		Name string
		Size string
	}{Name: name, Size: FormatSize(size)})
}

// List renders warehouse entries; an empty slice renders the empty placeholder.
func (r *Renderer) List(entries []models.WarehouseEntry) (template.HTML, error) {
	if len(entries) == 0 {
		return r.Placeholder(PlaceholderEmpty), nil
	}
	return r.execute("list", NewListItems(entries))
}

// Matches renders AI-ranked results; an empty slice renders the no-matches
// placeholder.
func (r *Renderer) Matches(matches []models.MatchResult) (template.HTML, error) {
	if len(matches) == 0 {
		return r.Placeholder(PlaceholderNoMatches), nil
	}
	return r.execute("list", NewMatchItems(matches))
}

func (r *Renderer) Placeholder(p Placeholder) template.HTML {
	out, err := r.execute("placeholder", p)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(p.Text))
	}
	return out
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
