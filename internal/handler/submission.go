package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/annotator/internal/domain"
)

// SubmissionResponse is the JSON form of a stored submission.
type SubmissionResponse struct {
	ID          openapi_types.UUID  `json:"id"`
	Document    string              `json:"document"`
	Annotations []domain.Annotation `json:"annotations"`
	Digest      string              `json:"digest"`
	CreatedAt   time.Time           `json:"created_at"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// SubmissionList is the body of GET /DocumentAnnotations/.
type SubmissionList struct {
	Data       []SubmissionResponse `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// CreateSubmission handles POST /DocumentAnnotations/.
// The raw body is handed to the service so its digest covers the exact bytes
// received.
func (s *Server) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, requestBody("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, requestBody("could not read request body"))
		return
	}

	sub, err := s.submissions.Create(r.Context(), raw)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, submissionToResponse(sub))
}

// ListSubmissions handles GET /DocumentAnnotations/.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("page must be an integer"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("limit must be an integer"))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	result, err := s.submissions.ListPaged(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	data := make([]SubmissionResponse, len(result.Items))
	for i, sub := range result.Items {
		data[i] = submissionToResponse(sub)
	}
	writeJSON(w, http.StatusOK, SubmissionList{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: result.Total},
	})
}

// GetSubmission handles GET /DocumentAnnotations/{id}.
func (s *Server) GetSubmission(w http.ResponseWriter, r *http.Request) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("id must be a UUID"))
		return
	}

	sub, err := s.submissions.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "submission not found")
		return
	}
	writeJSON(w, http.StatusOK, submissionToResponse(sub))
}

// submissionToResponse converts a domain.Submission to its JSON form.
func submissionToResponse(sub domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:          sub.ID,
		Document:    sub.Payload.Document,
		Annotations: sub.Payload.Annotations,
		Digest:      sub.Digest,
		CreatedAt:   sub.CreatedAt,
	}
}
