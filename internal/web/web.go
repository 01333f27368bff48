// Package web holds the embedded HTML templates and static assets of the
// public site.
package web

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

// Page names
const (
	PageIndex         = "index"
	PageArticleList   = "article_list"
	PageArticleDetail = "article_detail"
	PageContact       = "contact"
	PageLogin         = "login"
	PageNotFound      = "404"
	PageError         = "500"
)

var pages = []string{
	PageIndex,
	PageArticleList,
	PageArticleDetail,
	PageContact,
	PageLogin,
	PageNotFound,
	PageError,
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	// article bodies are authored by administrators and may embed media
	"trusted": func(s string) template.HTML {
		return template.HTML(s)
	},
}

// Renderer executes page templates. Each page is parsed together with the
// base layout into its own set.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("base.html").Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the named page to w
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "base", data)
}

// RenderBytes renders the named page into memory
func (r *Renderer) RenderBytes(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Static returns the static asset tree rooted at static/
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
