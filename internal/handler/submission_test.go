package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/annotator/internal/domain"
	"github.com/pkordes/annotator/internal/handler"
)

func submissionFixture() domain.Submission {
	return domain.Submission{
		ID: uuid.New(),
		Payload: domain.ExportPayload{
			Document:    "hello\nworld",
			Annotations: []domain.Annotation{{Start: 0, End: 5, Label: "X", Text: "hello"}},
		},
		Digest:    "abc123",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCollectionRoutes_AbsentWithoutStore(t *testing.T) {
	h, _ := newHTTPHandler(nil, nil)

	rec := do(h, http.MethodPost, "/DocumentAnnotations/", bytes.NewBufferString(`{}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSubmission_Created(t *testing.T) {
	want := submissionFixture()
	const raw = `{"document":"hello\nworld","annotations":[{"start":0,"end":5,"label":"X","text":"hello"}]}`
	var got []byte
	h, _ := newHTTPHandler(nil, &mockSubmissionServicer{
		create: func(_ context.Context, b []byte) (domain.Submission, error) {
			got = b
			return want, nil
		},
	})

	rec := do(h, http.MethodPost, "/DocumentAnnotations/", bytes.NewBufferString(raw))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, raw, string(got), "service receives the body byte for byte")
	resp := decode[handler.SubmissionResponse](t, rec)
	assert.Equal(t, want.ID, resp.ID)
	assert.Equal(t, want.Payload.Annotations, resp.Annotations)
	assert.Equal(t, "abc123", resp.Digest)
}

func TestCreateSubmission_ValidationError(t *testing.T) {
	h, _ := newHTTPHandler(nil, &mockSubmissionServicer{
		create: func(context.Context, []byte) (domain.Submission, error) {
			return domain.Submission{}, fmt.Errorf("service.SubmissionService.Create: %w: annotations[0]: label is required", domain.ErrValidation)
		},
	})

	rec := do(h, http.MethodPost, "/DocumentAnnotations/", bytes.NewBufferString(`{}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode[handler.ErrorResponse](t, rec)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Equal(t, "annotations[0]: label is required", body.Error.Message)
}

func TestGetSubmission(t *testing.T) {
	want := submissionFixture()

	t.Run("found", func(t *testing.T) {
		h, _ := newHTTPHandler(nil, &mockSubmissionServicer{
			getByID: func(_ context.Context, id uuid.UUID) (domain.Submission, error) {
				require.Equal(t, want.ID, id)
				return want, nil
			},
		})

		rec := do(h, http.MethodGet, "/DocumentAnnotations/"+want.ID.String(), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want.Payload.Document, decode[handler.SubmissionResponse](t, rec).Document)
	})

	t.Run("not found", func(t *testing.T) {
		h, _ := newHTTPHandler(nil, &mockSubmissionServicer{
			getByID: func(context.Context, uuid.UUID) (domain.Submission, error) {
				return domain.Submission{}, fmt.Errorf("repo.SubmissionRepo.GetByID: %w", domain.ErrNotFound)
			},
		})

		rec := do(h, http.MethodGet, "/DocumentAnnotations/"+uuid.NewString(), nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "submission not found", decode[handler.ErrorResponse](t, rec).Error.Message)
	})

	t.Run("bad id", func(t *testing.T) {
		h, _ := newHTTPHandler(nil, &mockSubmissionServicer{})

		rec := do(h, http.MethodGet, "/DocumentAnnotations/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListSubmissions(t *testing.T) {
	items := []domain.Submission{submissionFixture(), submissionFixture()}
	var gotParams domain.PaginationParams
	h, _ := newHTTPHandler(nil, &mockSubmissionServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) (domain.Page[domain.Submission], error) {
			gotParams = p
			return domain.Page[domain.Submission]{Items: items, Total: 7}, nil
		},
	})

	rec := do(h, http.MethodGet, "/DocumentAnnotations/?page=2&limit=2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 2}, gotParams)
	list := decode[handler.SubmissionList](t, rec)
	assert.Len(t, list.Data, 2)
	assert.Equal(t, handler.Pagination{Page: 2, Limit: 2, Total: 7}, list.Pagination)
}

func TestListSubmissions_Defaults(t *testing.T) {
	var gotParams domain.PaginationParams
	h, _ := newHTTPHandler(nil, &mockSubmissionServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) (domain.Page[domain.Submission], error) {
			gotParams = p
			return domain.Page[domain.Submission]{}, nil
		},
	})

	rec := do(h, http.MethodGet, "/DocumentAnnotations/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: domain.DefaultPageLimit}, gotParams)
	assert.JSONEq(t, `{"data":[],"pagination":{"page":1,"limit":20,"total":0}}`, rec.Body.String())
}

func TestListSubmissions_BadPage(t *testing.T) {
	h, _ := newHTTPHandler(nil, &mockSubmissionServicer{})

	rec := do(h, http.MethodGet, "/DocumentAnnotations/?page=abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
