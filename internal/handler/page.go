package handler

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/pkordes/annotator/internal/domain"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// indexData is the view model of the annotator page.
type indexData struct {
	Document       string
	Labels         []domain.Label
	Annotations    []domain.Annotation
	Rendered       template.HTML
	ExportFilename string
}

// GetIndex handles GET / by rendering the annotator page for the current
// workspace. Rendered is trusted markup; everything else is escaped by
// html/template.
func (s *Server) GetIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Document:       s.ws.Document(),
		Labels:         s.ws.Labels(),
		Annotations:    s.ws.Annotations(),
		Rendered:       s.ws.Render(),
		ExportFilename: domain.ExportFilename,
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
