package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/annotator/internal/domain"
)

// LabelColorResponse is the body of GET /api/labels/color.
// Color is "" when no label has the requested value.
type LabelColorResponse struct {
	Value string `json:"value"`
	Color string `json:"color"`
}

// ListLabels handles GET /api/labels.
func (s *Server) ListLabels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ws.Labels())
}

// AddLabel handles POST /api/labels.
// A label with an empty value or color is silently ignored: 204, no body.
func (s *Server) AddLabel(w http.ResponseWriter, r *http.Request) {
	var body domain.Label
	if !decodeJSON(w, r, &body) {
		return
	}

	label, added := s.ws.AddLabel(body.Value, body.Color)
	if !added {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, label)
}

// RemoveLabel handles DELETE /api/labels/{index}.
// An index outside the label list answers 404.
func (s *Server) RemoveLabel(w http.ResponseWriter, r *http.Request) {
	var index int
	err := runtime.BindStyledParameterWithOptions("simple", "index", chi.URLParam(r, "index"), &index,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("index must be an integer"))
		return
	}

	if err := s.ws.RemoveLabel(index); err != nil {
		s.writeError(w, r, err, "label index out of range")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLabelColor handles GET /api/labels/color?value=.
func (s *Server) GetLabelColor(w http.ResponseWriter, r *http.Request) {
	var value string
	if err := runtime.BindQueryParameter("form", true, true, "value", r.URL.Query(), &value); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("query parameter value is required"))
		return
	}
	writeJSON(w, http.StatusOK, LabelColorResponse{Value: value, Color: s.ws.LabelColor(value)})
}
