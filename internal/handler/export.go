package handler

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/pkordes/annotator/internal/domain"
)

// GetExport handles GET /api/export.
// It answers with the workspace as an annotations.json attachment. The same
// payload is submitted to the collection endpoint in the background; the
// response never depends on that submission.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	payload, err := s.export.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": domain.ExportFilename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
