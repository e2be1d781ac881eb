package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/annotator/internal/domain"
)

// SubmissionRepo defines the persistence operations for received exports.
type SubmissionRepo interface {
	// Create inserts a submission and returns it with the DB-generated id and
	// created_at populated.
	Create(ctx context.Context, sub domain.Submission) (domain.Submission, error)

	// GetByID retrieves a single submission.
	// Returns domain.ErrNotFound if no submission with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Submission, error)

	// ListPaged returns one page of submissions, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Submission, int64, error)
}

// pgSubmissionRepo is the Postgres implementation of SubmissionRepo.
type pgSubmissionRepo struct {
	db db
}

// NewSubmissionRepo constructs a SubmissionRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSubmissionRepo(db db) SubmissionRepo {
	return &pgSubmissionRepo{db: db}
}

// Create inserts a submission. The annotation list is stored as jsonb; pgx
// marshals the slice with encoding/json.
func (r *pgSubmissionRepo) Create(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	const q = `
		INSERT INTO submissions (document, annotations, digest)
		VALUES (@document, @annotations, @digest)
		RETURNING id, document, annotations, digest, created_at`

	args := pgx.NamedArgs{
		"document":    sub.Payload.Document,
		"annotations": sub.Payload.Annotations,
		"digest":      sub.Digest,
	}

	result, err := scanSubmission(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Submission{}, fmt.Errorf("repo.SubmissionRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a submission by primary key.
func (r *pgSubmissionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Submission, error) {
	const q = `
		SELECT id, document, annotations, digest, created_at
		FROM submissions
		WHERE id = @id`

	result, err := scanSubmission(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Submission{}, fmt.Errorf("repo.SubmissionRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of submissions ordered by created_at descending.
// The total counts every stored submission, also for a page past the end.
func (r *pgSubmissionRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Submission, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM submissions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.SubmissionRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT id, document, annotations, digest, created_at
		FROM submissions
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.SubmissionRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	subs := []domain.Submission{}
	for rows.Next() {
		var (
			s  domain.Submission
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &s.Payload.Document, &s.Payload.Annotations, &s.Digest, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("repo.SubmissionRepo.ListPaged: scan: %w", err)
		}
		s.ID = uuid.UUID(id.Bytes)
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.SubmissionRepo.ListPaged: rows: %w", err)
	}
	return subs, total, nil
}

// scanSubmission maps a single database row into a domain.Submission.
func scanSubmission(s scanner) (domain.Submission, error) {
	var (
		sub domain.Submission
		id  pgtype.UUID
	)
	err := s.Scan(&id, &sub.Payload.Document, &sub.Payload.Annotations, &sub.Digest, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Submission{}, domain.ErrNotFound
		}
		return domain.Submission{}, err
	}
	sub.ID = uuid.UUID(id.Bytes)
	if sub.Payload.Annotations == nil {
		sub.Payload.Annotations = []domain.Annotation{}
	}
	return sub, nil
}
