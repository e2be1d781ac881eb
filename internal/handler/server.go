// Package handler implements the HTTP surface of the document annotator:
// the HTML page, the workspace JSON API, the export download and the
// /DocumentAnnotations/ collection endpoint.
// All handlers are methods on Server. Methods are split into resource files
// (label.go, annotation.go, export.go, ...) but share the Server struct.
package handler

import (
	"context"
	"html/template"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/annotator/internal/domain"
)

// Workspace is the annotation session the API drives.
// *workspace.Workspace satisfies it.
type Workspace interface {
	Document() string
	SetDocument(doc string)
	AddLabel(value, color string) (domain.Label, bool)
	RemoveLabel(index int) error
	Labels() []domain.Label
	LabelColor(value string) string
	AnnotateRange(label string, start, end int) (domain.Annotation, bool, error)
	Annotations() []domain.Annotation
	Render() template.HTML
}

// ExportServicer produces the export payload and starts its submission.
type ExportServicer interface {
	Export(ctx context.Context) ([]byte, error)
}

// SubmissionServicer stores payloads received by the collection endpoint.
type SubmissionServicer interface {
	Create(ctx context.Context, raw []byte) (domain.Submission, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Submission, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Submission], error)
}

// Server holds the dependencies of every handler.
type Server struct {
	ws          Workspace
	export      ExportServicer
	submissions SubmissionServicer
	log         *slog.Logger
}

// NewServer constructs the Server. submissions may be nil, in which case the
// collection endpoint is not mounted.
func NewServer(ws Workspace, export ExportServicer, submissions SubmissionServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{ws: ws, export: export, submissions: submissions, log: log}
}

// Routes returns a chi router with every endpoint registered. Middleware is
// applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.GetIndex)
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Get("/document", s.GetDocument)
		r.Put("/document", s.PutDocument)

		r.Get("/labels", s.ListLabels)
		r.Post("/labels", s.AddLabel)
		r.Get("/labels/color", s.GetLabelColor)
		r.Delete("/labels/{index}", s.RemoveLabel)

		r.Get("/annotations", s.ListAnnotations)
		r.Post("/annotations", s.Annotate)

		r.Get("/render", s.GetRender)
		r.Get("/export", s.GetExport)
	})

	if s.submissions != nil {
		r.Route("/DocumentAnnotations", func(r chi.Router) {
			r.Post("/", s.CreateSubmission)
			r.Get("/", s.ListSubmissions)
			r.Get("/{id}", s.GetSubmission)
		})
	}

	return r
}
