package server

import (
	"embed"
	"html/template"
	"net/url"

	"github.com/gin-contrib/multitemplate"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "templates/layout.html"

// Page names accepted by the renderer.
const (
	pageIndex  = "index"
	pageMovie  = "movie"
	pagePerson = "person"
)

var templateFuncs = template.FuncMap{
	// pathEscape keeps titles and names containing '/' or '?' intact in links.
	"pathEscape": url.PathEscape,
}

// NewRenderer parses every page against the shared layout.
func NewRenderer() (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()
	for _, page := range []string{pageIndex, pageMovie, pagePerson} {
		tmpl, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, layoutTemplate, "templates/"+page+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s template", page)
		}
		r.Add(page, tmpl)
	}
	return r, nil
}
