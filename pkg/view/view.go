// Package view renders a populated page into the landing page HTML
package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("index.html").Funcs(template.FuncMap{
		// markup produced by the markdown renderer is already escaped
		"trusted": func(s string) template.HTML { return template.HTML(s) },
	}).ParseFS(templateFS, "templates/index.html"),
)

// Data is the template input
type Data struct {
	Site model.Site
	Page *model.Page
	// Interactive enables the theme and menu controls that need the server
	Interactive bool
	NavOpen     bool
}

// Render writes the landing page to w
func Render(w io.Writer, data *Data) error {
	if err := pageTemplate.Execute(w, data); err != nil {
		return goerr.Wrap(err, "failed to render page")
	}
	return nil
}

// RenderBytes renders the landing page into memory
func RenderBytes(data *Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
