package handler

import "net/http"

// DocumentBody is the request and response body of /api/document.
type DocumentBody struct {
	Document string `json:"document"`
}

// GetDocument handles GET /api/document.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DocumentBody{Document: s.ws.Document()})
}

// PutDocument handles PUT /api/document. Existing annotations are kept as
// they are, even if their offsets no longer match the new text.
func (s *Server) PutDocument(w http.ResponseWriter, r *http.Request) {
	var body DocumentBody
	if !decodeJSON(w, r, &body) {
		return
	}
	s.ws.SetDocument(body.Document)
	writeJSON(w, http.StatusOK, body)
}
