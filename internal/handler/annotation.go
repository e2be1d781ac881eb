package handler

import "net/http"

// AnnotateRequest is the body of POST /api/annotations: the label to apply and
// the rune offsets of the current selection in the document.
type AnnotateRequest struct {
	Label          string `json:"label"`
	SelectionStart int    `json:"selection_start"`
	SelectionEnd   int    `json:"selection_end"`
}

// RenderResponse is the body of GET /api/render.
type RenderResponse struct {
	HTML string `json:"html"`
}

// ListAnnotations handles GET /api/annotations.
func (s *Server) ListAnnotations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ws.Annotations())
}

// Annotate handles POST /api/annotations.
// The selected text is taken from the current document. An empty or
// whitespace-only selection is silently ignored: 204, no body. Bounds outside
// the document answer 422.
func (s *Server) Annotate(w http.ResponseWriter, r *http.Request) {
	var body AnnotateRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	annotation, added, err := s.ws.AnnotateRange(body.Label, body.SelectionStart, body.SelectionEnd)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	if !added {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusCreated, annotation)
}

// GetRender handles GET /api/render.
func (s *Server) GetRender(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RenderResponse{HTML: string(s.ws.Render())})
}
