package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/annotator/internal/domain"
	"github.com/pkordes/annotator/internal/handler"
	"github.com/pkordes/annotator/internal/workspace"
)

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	export func(ctx context.Context) ([]byte, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]byte, error) {
	return m.export(ctx)
}

// mockSubmissionServicer is a test double for handler.SubmissionServicer.
// Set only the method fields your test needs.
type mockSubmissionServicer struct {
	create    func(ctx context.Context, raw []byte) (domain.Submission, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Submission, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Submission], error)
}

func (m *mockSubmissionServicer) Create(ctx context.Context, raw []byte) (domain.Submission, error) {
	return m.create(ctx, raw)
}
func (m *mockSubmissionServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Submission, error) {
	return m.getByID(ctx, id)
}
func (m *mockSubmissionServicer) ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Submission], error) {
	return m.listPaged(ctx, p)
}

// compile-time checks
var (
	_ handler.ExportServicer     = (*mockExportServicer)(nil)
	_ handler.SubmissionServicer = (*mockSubmissionServicer)(nil)
	_ handler.Workspace          = (*workspace.Workspace)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server around a fresh workspace, the way main.go
// does in production. The workspace is returned so tests can seed it.
func newHTTPHandler(export handler.ExportServicer, subs handler.SubmissionServicer) (http.Handler, *workspace.Workspace) {
	ws := workspace.New(nil)
	if export == nil {
		export = &mockExportServicer{}
	}
	srv := handler.NewServer(ws, export, subs, nil)
	return srv.Routes(), ws
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}
