package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/pkordes/annotator/internal/domain"
	"github.com/pkordes/annotator/internal/repo"
)

// SubmissionService accepts export payloads POSTed to the collection endpoint
// and stores them.
type SubmissionService struct {
	repo repo.SubmissionRepo
}

// NewSubmissionService constructs a SubmissionService backed by r.
func NewSubmissionService(r repo.SubmissionRepo) *SubmissionService {
	return &SubmissionService{repo: r}
}

// Create decodes raw as an ExportPayload, validates it and persists it along
// with the BLAKE3 digest of raw. Identical bodies are stored as separate rows.
// Returns domain.ErrValidation for malformed or inconsistent payloads.
func (s *SubmissionService) Create(ctx context.Context, raw []byte) (domain.Submission, error) {
	var payload domain.ExportPayload
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&payload); err != nil {
		return domain.Submission{}, fmt.Errorf("service.SubmissionService.Create: %w: malformed JSON body", domain.ErrValidation)
	}
	if err := validatePayload(payload); err != nil {
		return domain.Submission{}, fmt.Errorf("service.SubmissionService.Create: %w", err)
	}
	if payload.Annotations == nil {
		payload.Annotations = []domain.Annotation{}
	}

	sum := blake3.Sum256(raw)
	sub := domain.Submission{
		Payload: payload,
		Digest:  hex.EncodeToString(sum[:]),
	}

	result, err := s.repo.Create(ctx, sub)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("service.SubmissionService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a stored submission.
// Returns domain.ErrNotFound if no submission has that ID.
func (s *SubmissionService) GetByID(ctx context.Context, id uuid.UUID) (domain.Submission, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("service.SubmissionService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of submissions, newest first.
// Items is never nil so callers can safely range over it.
func (s *SubmissionService) ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Submission], error) {
	items, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return domain.Page[domain.Submission]{}, fmt.Errorf("service.SubmissionService.ListPaged: %w", err)
	}
	if items == nil {
		items = []domain.Submission{}
	}
	return domain.Page[domain.Submission]{Items: items, Total: total}, nil
}

// validatePayload enforces what any export produced by a text surface holds:
//   - every annotation has a non-blank label;
//   - 0 <= start <= end <= length of the document in runes.
func validatePayload(p domain.ExportPayload) error {
	n := utf8.RuneCountInString(p.Document)
	for i, a := range p.Annotations {
		if strings.TrimSpace(a.Label) == "" {
			return fmt.Errorf("%w: annotations[%d]: label is required", domain.ErrValidation, i)
		}
		if a.Start < 0 || a.End < a.Start || a.End > n {
			return fmt.Errorf("%w: annotations[%d]: span [%d, %d) outside document of length %d", domain.ErrValidation, i, a.Start, a.End, n)
		}
	}
	return nil
}
