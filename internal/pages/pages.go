package pages

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"portfolio/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Site holds site-wide values shown on every page.
type Site struct {
	Title        string
	Description  string
	Author       string
	Lang         string
	Year         int
	ToggleAssets bool // Load the theme toggle from /static
}

// homeData holds template data for the listing page.
type homeData struct {
	Site  Site
	Posts []catalog.Post
}

// postData holds template data for a post detail page.
type postData struct {
	Site    Site
	Post    catalog.Post
	Content template.HTML
}

// notFoundData holds template data for the not-found page.
type notFoundData struct {
	Site Site
}

// Renderer executes the page templates.
type Renderer struct {
	site     Site
	home     *template.Template
	post     *template.Template
	notFound *template.Template
}

// New parses the embedded templates.
func New(site Site) (*Renderer, error) {
	r := &Renderer{site: site}

	var err error
	if r.home, err = parse("home.html"); err != nil {
		return nil, err
	}
	if r.post, err = parse("post.html"); err != nil {
		return nil, err
	}
	if r.notFound, err = parse("notfound.html"); err != nil {
		return nil, err
	}
	return r, nil
}

func parse(page string) (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", page, err)
	}
	return tmpl, nil
}

// Home renders the project listing.
func (r *Renderer) Home(w io.Writer, posts []catalog.Post) error {
	return r.home.ExecuteTemplate(w, "layout", homeData{Site: r.site, Posts: posts})
}

// Post renders a single post. RenderedBody is trusted HTML from the
// markdown renderer.
func (r *Renderer) Post(w io.Writer, post catalog.Post) error {
	return r.post.ExecuteTemplate(w, "layout", postData{
		Site:    r.site,
		Post:    post,
		Content: template.HTML(post.RenderedBody),
	})
}

// NotFound renders the not-found page.
func (r *Renderer) NotFound(w io.Writer) error {
	return r.notFound.ExecuteTemplate(w, "layout", notFoundData{Site: r.site})
}
