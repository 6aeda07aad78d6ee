package api

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kdimtricp/videogrid/internal/thumbnail"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"thumb": thumbnail.Resolve,
	"ago":   humanize.Time,
	"join":  strings.Join,
}).ParseFS(templateFS, "templates/*.html"))

// render executes the named page into memory so a failing template never
// leaves half a page on the wire.
func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
